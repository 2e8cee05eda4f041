package operations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pojntfx/stchgr/pkg/config"
)

// Transfer moves a volume between two slots. Both endpoints are checked
// against one snapshot before any invocation: the source has to be
// occupied and the destination empty, with no retry.
func (o *Operations) Transfer(req Request) int {
	inv, err := o.snapshot(req.ChangerDevice, false)
	if err != nil {
		return o.fail(err)
	}

	source := inv.SlotVolume(req.Slot)
	destination := inv.SlotVolume(req.DestinationSlot)

	o.log.Info("Transferring volume", "volume", orEmpty(source), "from", req.Slot, "to", req.DestinationSlot, "destinationvolume", orEmpty(destination))

	if source == "" || destination != "" {
		failText := "The source slot is empty, or the destination slot is full, will not even attempt the transfer"

		o.log.Error(failText, "from", req.Slot, "to", req.DestinationSlot)
		fmt.Fprintln(o.stdout, "Err: "+failText)

		return config.ExitFailure
	}

	result := o.exec.Run(o.config.MtxBin, "-f", req.ChangerDevice, "transfer", strconv.Itoa(req.Slot), strconv.Itoa(req.DestinationSlot))
	if !result.OK() {
		failText := fmt.Sprintf("Unsuccessfully transferred volume (%v) from slot %v to slot %v", source, req.Slot, req.DestinationSlot)

		o.log.Error(failText, "returncode", result.ExitCode, "stderr", strings.TrimRight(result.Stderr, "\n"))
		fmt.Fprintln(o.stdout, failText+" Err: "+strings.TrimRight(result.Stderr, "\n"))

		// Unlike load and unload, transfer reports plain failure instead
		// of the tool's own status code; the daemon only distinguishes 0
		// from nonzero here.
		return config.ExitFailure
	}

	o.log.Info("Successfully transferred volume", "volume", source, "from", req.Slot, "to", req.DestinationSlot)

	return config.ExitSuccess
}

func orEmpty(volume string) string {
	if volume == "" {
		return "EMPTY"
	}

	return volume
}
