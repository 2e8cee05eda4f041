package inventory

// VolumeAt returns the volume label occupying the element with the given
// kind and index, or "" if the element is empty or unknown. Lookups never
// fail; an unoccupied element is a normal answer, not an error.
func (i *Inventory) VolumeAt(kind ElementKind, index int) string {
	var group []Element
	switch kind {
	case KindDrive:
		group = i.Drives
	case KindSlot:
		group = i.Slots
	case KindImportExport:
		group = i.ImportExports
	}

	for _, e := range group {
		if e.Index == index && e.Occupied {
			return e.Volume
		}
	}

	return ""
}

// SlotVolume resolves a one-based slot number against storage slots
// first, then import/export slots; the two classes share one slot number
// space on the wire.
func (i *Inventory) SlotVolume(slot int) string {
	if vol := i.VolumeAt(KindSlot, slot); vol != "" {
		return vol
	}

	return i.VolumeAt(KindImportExport, slot)
}

// DriveVolume returns the label loaded in the given drive, or "" for an
// empty drive.
func (i *Inventory) DriveVolume(driveIndex int) string {
	return i.VolumeAt(KindDrive, driveIndex)
}

// LoadedSlot returns the storage slot whose volume currently sits in the
// given drive, or 0 if the drive is empty.
func (i *Inventory) LoadedSlot(driveIndex int) int {
	for _, e := range i.Drives {
		if e.Index == driveIndex && e.Occupied {
			return e.SourceSlot
		}
	}

	return 0
}

// DriveHoldingSlot reports which drive, if any, currently holds the
// volume that came from the given slot. This is the "nominal source slot
// is already loaded" edge case, which callers surface as an explicit
// failure instead of loading nothing.
func (i *Inventory) DriveHoldingSlot(slot int) (driveIndex int, volume string, ok bool) {
	for _, e := range i.Drives {
		if e.Occupied && e.SourceSlot == slot {
			return e.Index, e.Volume, true
		}
	}

	return 0, "", false
}

// CleaningTape is one candidate cleaning cartridge, identified by the
// label prefix convention.
type CleaningTape struct {
	Slot   int
	Volume string
}

// CleaningTapes returns the cleaning cartridges currently sitting in
// storage or import/export slots. Tapes in drives are skipped: a
// cleaning tape already in a drive is at an unknowable point of its
// cycle.
func (i *Inventory) CleaningTapes(prefix string) []CleaningTape {
	if prefix == "" {
		return nil
	}

	tapes := []CleaningTape{}
	for _, group := range [][]Element{i.Slots, i.ImportExports} {
		for _, e := range group {
			if e.Occupied && len(e.Volume) >= len(prefix) && e.Volume[:len(prefix)] == prefix {
				tapes = append(tapes, CleaningTape{Slot: e.Index, Volume: e.Volume})
			}
		}
	}

	return tapes
}
