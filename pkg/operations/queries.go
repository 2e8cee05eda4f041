package operations

import (
	"fmt"
)

// List prints one "<index>:<volume>" line per occupied element.
func (o *Operations) List(req Request) int {
	inv, err := o.snapshot(req.ChangerDevice, true)
	if err != nil {
		return o.fail(err)
	}

	fmt.Fprintln(o.stdout, inv.FormatList())

	return 0
}

// ListAll prints one line per element, occupied or not.
func (o *Operations) ListAll(req Request) int {
	inv, err := o.snapshot(req.ChangerDevice, true)
	if err != nil {
		return o.fail(err)
	}

	fmt.Fprintln(o.stdout, inv.FormatListAll())

	return 0
}

// Slots prints the number of storage slots from the status banner.
func (o *Operations) Slots(req Request) int {
	o.log.Info("Determining the number of slots in the library", "changer", req.ChangerDevice)

	inv, err := o.snapshot(req.ChangerDevice, false)
	if err != nil {
		return o.fail(err)
	}

	fmt.Fprintln(o.stdout, inv.SlotCount)

	return 0
}

// Loaded prints the slot whose volume is loaded in the drive, or 0 for
// an empty drive.
func (o *Operations) Loaded(req Request) int {
	o.log.Info("Checking if drive device is loaded", "device", req.DriveDevice, "drive", req.DriveIndex)

	inv, err := o.snapshot(req.ChangerDevice, false)
	if err != nil {
		return o.fail(err)
	}

	slot := inv.LoadedSlot(req.DriveIndex)
	if slot == 0 {
		o.log.Info("Drive device is empty", "device", req.DriveDevice, "drive", req.DriveIndex)
	} else {
		o.log.Info("Drive device is loaded", "device", req.DriveDevice, "drive", req.DriveIndex, "volume", inv.DriveVolume(req.DriveIndex), "slot", slot)
	}

	fmt.Fprintln(o.stdout, slot)

	return 0
}
