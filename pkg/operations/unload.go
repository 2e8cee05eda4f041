package operations

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/hardware"
)

// Unload moves the volume in a drive back to a storage slot and, if
// enabled, runs the drive cleaning check afterwards. An empty drive is a
// success (nothing to do); an occupied destination slot a precondition
// failure. A failing unload tool is reported as a failure code rather
// than a crash, since the hardware may already have changed state.
func (o *Operations) Unload(req Request) int {
	inv, err := o.snapshot(req.ChangerDevice, false)
	if err != nil {
		return o.fail(err)
	}

	if inv.LoadedSlot(req.DriveIndex) == 0 {
		o.log.Info("Drive device is empty, nothing to unload", "device", req.DriveDevice, "drive", req.DriveIndex)

		return config.ExitSuccess
	}

	volume := inv.DriveVolume(req.DriveIndex)

	if destination := inv.SlotVolume(req.Slot); destination != "" {
		o.log.Info("Destination slot is full, refusing to unload", "slot", req.Slot, "volume", destination)

		return config.ExitFailure
	}

	if o.config.Offline {
		o.log.Info("Sending drive device offline command before unloading it", "device", req.DriveDevice)

		result := o.exec.Run(o.config.MtBin, "-f", req.DriveDevice, "offline")
		if !result.OK() {
			return o.fail(&hardware.ToolError{Result: result})
		}

		if o.config.OfflineSleep != 0 {
			o.log.Info("Sleeping to let the drive settle before unloading it", "seconds", o.config.OfflineSleep)
			o.sleep(time.Duration(o.config.OfflineSleep) * time.Second)
		}
	}

	o.log.Info("Unloading volume", "volume", volume, "device", req.DriveDevice, "drive", req.DriveIndex, "slot", req.Slot)

	result := o.exec.Run(o.config.MtxBin, "-f", req.ChangerDevice, "unload", strconv.Itoa(req.Slot), strconv.Itoa(req.DriveIndex))
	if !result.OK() {
		failText := fmt.Sprintf("Failed to unload drive device %v (drive index: %v) with volume (%v) to slot %v", req.DriveDevice, req.DriveIndex, volume, req.Slot)

		o.log.Error(failText, "returncode", result.ExitCode, "stderr", strings.TrimRight(result.Stderr, "\n"))
		fmt.Fprintln(o.stdout, failText+" Err: "+strings.TrimRight(result.Stderr, "\n"))

		return result.ExitCode
	}

	o.log.Info("Successfully unloaded volume", "volume", volume, "device", req.DriveDevice, "drive", req.DriveIndex, "slot", req.Slot)

	// The cleaning check has to happen here, before the unload returns,
	// or the daemon moves on and loads the next tape into a drive that
	// wanted cleaning. Unloading a cleaning tape never re-enters the
	// check.
	if strings.HasPrefix(volume, o.config.CleaningPrefix) && o.config.CleaningPrefix != "" {
		o.log.Info("A cleaning tape was just unloaded, skipping tapeinfo tests", "volume", volume)
	} else if o.config.CheckDrive {
		o.checkDrive(inv, req)
	} else {
		o.log.Info("The chk_drive variable is false, skipping tapeinfo tests")
	}

	return config.ExitSuccess
}

// unloadCleaning puts a cleaning cartridge back without re-entering the
// cleaning check, so a drive that still reports "needs cleaning" right
// after being cleaned cannot start an infinite cleaning loop.
func (o *Operations) unloadCleaning(req Request, slot int, volume string) error {
	o.log.Info("Unloading cleaning tape", "volume", volume, "device", req.DriveDevice, "drive", req.DriveIndex, "slot", slot)

	result := o.exec.Run(o.config.MtxBin, "-f", req.ChangerDevice, "unload", strconv.Itoa(slot), strconv.Itoa(req.DriveIndex))
	if !result.OK() {
		return &hardware.ToolError{Result: result}
	}

	return nil
}
