package operations

import (
	"testing"

	"github.com/pojntfx/stchgr/pkg/hardware"
)

func TestLoadRefusesOccupiedDrive(t *testing.T) {
	ops, runner, _ := newTestOperations(testConfig(), []fakeResponse{statusResponse()})

	code := ops.Dispatch(Request{Command: CommandLoad, ChangerDevice: "/dev/sg0", Slot: 1, DriveDevice: "/dev/nst1", DriveIndex: 1})
	if code != 1 {
		t.Fatalf("Dispatch() = %v, want 1", code)
	}

	if got := runner.countCalls("mtx -f /dev/sg0 load"); got != 0 {
		t.Errorf("load calls = %v, want none", got)
	}
}

func TestLoadRefusesEmptySlot(t *testing.T) {
	ops, runner, _ := newTestOperations(testConfig(), []fakeResponse{statusResponse()})

	code := ops.Dispatch(Request{Command: CommandLoad, ChangerDevice: "/dev/sg0", Slot: 41, DriveDevice: "/dev/nst0", DriveIndex: 0})
	if code != 1 {
		t.Fatalf("Dispatch() = %v, want 1", code)
	}

	if got := runner.countCalls("mtx -f /dev/sg0 load"); got != 0 {
		t.Errorf("load calls = %v, want none", got)
	}
}

func TestLoadRefusesSlotAlreadyInDrive(t *testing.T) {
	// Slot 2's volume sits in drive 1; asking drive 0 to load slot 2 has
	// to fail explicitly instead of silently loading nothing.
	ops, runner, stdout := newTestOperations(testConfig(), []fakeResponse{statusResponse()})

	code := ops.Dispatch(Request{Command: CommandLoad, ChangerDevice: "/dev/sg0", Slot: 2, DriveDevice: "/dev/nst0", DriveIndex: 0})
	if code != 1 {
		t.Fatalf("Dispatch() = %v, want 1", code)
	}

	if got := runner.countCalls("mtx -f /dev/sg0 load"); got != 0 {
		t.Errorf("load calls = %v, want none", got)
	}

	if got, want := stdout.String(), "volume (VOL002) from slot 2 is already loaded in drive 1\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestLoadSuccess(t *testing.T) {
	ops, runner, _ := newTestOperations(testConfig(), []fakeResponse{
		statusResponse(),
		{"mtx -f /dev/sg0 load", hardware.Result{}},
		{"mt -f /dev/nst0 status", hardware.Result{Stdout: "drive type = Generic SCSI-2 tape\nONLINE IM_REP_EN\n"}},
	})

	code := ops.Dispatch(Request{Command: CommandLoad, ChangerDevice: "/dev/sg0", Slot: 1, DriveDevice: "/dev/nst0", DriveIndex: 0})
	if code != 0 {
		t.Fatalf("Dispatch() = %v, want 0", code)
	}

	if got, want := runner.countCalls("mtx -f /dev/sg0 load 1 0"), 1; got != want {
		t.Errorf("load calls = %v, want %v", got, want)
	}
}

func TestLoadToolFailurePassesCodeThrough(t *testing.T) {
	ops, _, stdout := newTestOperations(testConfig(), []fakeResponse{
		statusResponse(),
		{"mtx -f /dev/sg0 load", hardware.Result{ExitCode: 3, Stderr: "mtx: Source Element Address 1 is Empty"}},
	})

	code := ops.Dispatch(Request{Command: CommandLoad, ChangerDevice: "/dev/sg0", Slot: 1, DriveDevice: "/dev/nst0", DriveIndex: 0})
	if code != 3 {
		t.Fatalf("Dispatch() = %v, want 3", code)
	}

	if got := stdout.String(); got == "" {
		t.Error("stdout empty, want failure text for the daemon's job log")
	}
}

func TestLoadReadyTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.LoadWait = 2

	ops, runner, _ := newTestOperations(cfg, []fakeResponse{
		statusResponse(),
		{"mtx -f /dev/sg0 load", hardware.Result{}},
		{"mt -f /dev/nst0 status", hardware.Result{Stdout: "drive type = Generic SCSI-2 tape\nDR_OPEN IM_REP_EN\n"}},
	})

	code := ops.Dispatch(Request{Command: CommandLoad, ChangerDevice: "/dev/sg0", Slot: 1, DriveDevice: "/dev/nst0", DriveIndex: 0})
	if code != 1 {
		t.Fatalf("Dispatch() = %v, want 1", code)
	}

	if got, want := runner.countCalls("mt -f /dev/nst0 status"), cfg.LoadWait+1; got != want {
		t.Errorf("status polls = %v, want %v", got, want)
	}
}
