package inventory

// ElementKind is the physical class of a slot-like position in the
// changer.
type ElementKind int

const (
	KindDrive ElementKind = iota
	KindSlot
	KindImportExport
)

func (k ElementKind) String() string {
	switch k {
	case KindDrive:
		return "D"
	case KindSlot:
		return "S"
	case KindImportExport:
		return "I"
	default:
		return "?"
	}
}

// Element is one position in the changer, either empty or occupied by a
// named volume. Drive indexes are zero-based, slot and import/export
// indexes one-based. For an occupied drive, SourceSlot is the storage
// slot the loaded volume came from.
type Element struct {
	Kind       ElementKind
	Index      int
	Occupied   bool
	Volume     string
	SourceSlot int
}

// Inventory is an immutable snapshot of every element's occupancy at one
// point in time. Mutating operations act on the hardware; a fresh
// Inventory has to be parsed afterwards to observe their effect.
type Inventory struct {
	Drives        []Element
	Slots         []Element
	ImportExports []Element

	DriveCount        int
	SlotCount         int
	ImportExportCount int
}

// Elements returns all elements grouped drives, then slots, then
// import/export, the order the full listing uses.
func (i *Inventory) Elements() []Element {
	out := make([]Element, 0, len(i.Drives)+len(i.Slots)+len(i.ImportExports))
	out = append(out, i.Drives...)
	out = append(out, i.Slots...)
	out = append(out, i.ImportExports...)

	return out
}
