package operations

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/hardware"
)

// Load moves a volume from a storage slot into a drive and waits for the
// drive to report ready. Preconditions are checked against one snapshot
// before the hardware is touched: the drive has to be empty and the
// source slot occupied.
func (o *Operations) Load(req Request) int {
	inv, err := o.snapshot(req.ChangerDevice, false)
	if err != nil {
		return o.fail(err)
	}

	if loaded := inv.LoadedSlot(req.DriveIndex); loaded != 0 {
		o.log.Info("Drive device is loaded, refusing to load", "device", req.DriveDevice, "drive", req.DriveIndex, "slot", loaded)

		return config.ExitFailure
	}

	volume := inv.SlotVolume(req.Slot)
	if volume == "" {
		if drive, driveVolume, ok := inv.DriveHoldingSlot(req.Slot); ok {
			o.log.Info("Volume from slot is already loaded in a drive, refusing to load", "slot", req.Slot, "volume", driveVolume, "drive", drive)
			fmt.Fprintf(o.stdout, "volume (%v) from slot %v is already loaded in drive %v\n", driveVolume, req.Slot, drive)

			return config.ExitFailure
		}

		o.log.Info("Slot is empty, refusing to load", "slot", req.Slot)

		return config.ExitFailure
	}

	o.log.Info("Loading volume", "volume", volume, "slot", req.Slot, "device", req.DriveDevice, "drive", req.DriveIndex)

	result := o.exec.Run(o.config.MtxBin, "-f", req.ChangerDevice, "load", strconv.Itoa(req.Slot), strconv.Itoa(req.DriveIndex))
	if !result.OK() {
		failText := fmt.Sprintf("Failed to load drive device %v (drive index: %v) with volume (%v) from slot %v", req.DriveDevice, req.DriveIndex, volume, req.Slot)

		o.log.Error(failText, "returncode", result.ExitCode, "stderr", strings.TrimRight(result.Stderr, "\n"))
		fmt.Fprintln(o.stdout, failText+" Err: "+strings.TrimRight(result.Stderr, "\n"))

		return result.ExitCode
	}

	if o.config.LoadSleep != 0 {
		o.log.Info("Sleeping to let the drive settle", "seconds", o.config.LoadSleep)
		o.sleep(time.Duration(o.config.LoadSleep) * time.Second)
	}

	if err := o.waiter.WaitForDrive(o.config.MtBin, req.DriveDevice, o.readyMarker, o.config.LoadWait); err != nil {
		if errors.Is(err, config.ErrDriveReadyTimeout) {
			o.log.Error("Timeout waiting for drive device to signal that it is loaded", "device", req.DriveDevice, "drive", req.DriveIndex, "maxwait", o.config.LoadWait)
			o.log.Error("Perhaps the Device's \"DriveIndex\" is incorrect", "drive", req.DriveIndex)
			fmt.Fprintln(o.stdout, err)

			return config.ExitFailure
		}

		return o.fail(err)
	}

	o.log.Info("Successfully loaded volume", "volume", volume, "slot", req.Slot, "device", req.DriveDevice, "drive", req.DriveIndex)

	return config.ExitSuccess
}

// loadCleaning loads a cleaning cartridge without the readiness wait; the
// post-load dwell stands in for it. Failures are returned, not printed:
// cleaning is best-effort and never affects the caller's outcome.
func (o *Operations) loadCleaning(req Request, slot int, volume string) error {
	o.log.Info("Loading cleaning tape", "volume", volume, "slot", slot, "device", req.DriveDevice, "drive", req.DriveIndex)

	result := o.exec.Run(o.config.MtxBin, "-f", req.ChangerDevice, "load", strconv.Itoa(slot), strconv.Itoa(req.DriveIndex))
	if !result.OK() {
		return &hardware.ToolError{Result: result}
	}

	o.log.Info("A cleaning tape was just loaded, waiting before unloading it", "seconds", o.config.CleanWait)
	o.sleep(time.Duration(o.config.CleanWait) * time.Second)

	return o.unloadCleaning(req, slot, volume)
}
