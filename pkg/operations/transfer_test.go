package operations

import (
	"testing"

	"github.com/pojntfx/stchgr/pkg/hardware"
)

func TestTransferSuccess(t *testing.T) {
	ops, runner, _ := newTestOperations(testConfig(), []fakeResponse{
		statusResponse(),
		{"mtx -f /dev/sg0 transfer", hardware.Result{}},
	})

	code := ops.Dispatch(Request{Command: CommandTransfer, ChangerDevice: "/dev/sg0", Slot: 1, DestinationSlot: 2})
	if code != 0 {
		t.Fatalf("Dispatch() = %v, want 0", code)
	}

	if got, want := runner.countCalls("mtx -f /dev/sg0 transfer 1 2"), 1; got != want {
		t.Errorf("transfer calls = %v, want %v", got, want)
	}
}

var transferPreconditionTests = []struct {
	name        string
	slot        int
	destination int
}{
	{"Empty source", 2, 4},
	{"Full destination", 1, 3},
	{"Empty source and full destination", 2, 3},
}

func TestTransferPreconditions(t *testing.T) {
	for _, tt := range transferPreconditionTests {
		t.Run(tt.name, func(t *testing.T) {
			ops, runner, stdout := newTestOperations(testConfig(), []fakeResponse{statusResponse()})

			code := ops.Dispatch(Request{Command: CommandTransfer, ChangerDevice: "/dev/sg0", Slot: tt.slot, DestinationSlot: tt.destination})
			if code != 1 {
				t.Fatalf("Dispatch() = %v, want 1", code)
			}

			if got := runner.countCalls("mtx -f /dev/sg0 transfer"); got != 0 {
				t.Errorf("transfer calls = %v, want none", got)
			}

			if got, want := stdout.String(), "Err: The source slot is empty, or the destination slot is full, will not even attempt the transfer\n"; got != want {
				t.Errorf("stdout = %q, want %q", got, want)
			}
		})
	}
}

func TestTransferToolFailureReportsPlainFailure(t *testing.T) {
	// Transfer exits 0 or 1 only; the tool's own status code is logged
	// but never becomes the process exit.
	ops, _, stdout := newTestOperations(testConfig(), []fakeResponse{
		statusResponse(),
		{"mtx -f /dev/sg0 transfer", hardware.Result{ExitCode: 2, Stderr: "mtx: Destination Element Address 2 is Already Full"}},
	})

	code := ops.Dispatch(Request{Command: CommandTransfer, ChangerDevice: "/dev/sg0", Slot: 1, DestinationSlot: 2})
	if code != 1 {
		t.Fatalf("Dispatch() = %v, want 1", code)
	}

	if got := stdout.String(); got == "" {
		t.Error("stdout empty, want failure text for the daemon's job log")
	}
}
