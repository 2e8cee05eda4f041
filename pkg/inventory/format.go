package inventory

import (
	"fmt"
	"strings"
)

// FormatList renders the occupied-only listing the storage daemon
// expects: one "<index>:<volume>" line per occupied element. Storage and
// import/export slots come first and drives last; the daemon's own
// occupancy report walks the list in order and a drives-first listing
// made it misreport the first storage slot as empty.
func (i *Inventory) FormatList() string {
	lines := []string{}

	for _, group := range [][]Element{i.Slots, i.ImportExports} {
		for _, e := range group {
			if e.Occupied {
				lines = append(lines, fmt.Sprintf("%v:%v", e.Index, e.Volume))
			}
		}
	}

	// A drive's content is reported under the slot it was loaded from.
	for _, e := range i.Drives {
		if e.Occupied {
			lines = append(lines, fmt.Sprintf("%v:%v", e.SourceSlot, e.Volume))
		}
	}

	return strings.Join(lines, "\n")
}

// FormatListAll renders the full listing, one line per element, drives
// then slots then import/export:
//
//	D:<idx>:F:<slot>:<vol> or D:<idx>:E
//	S:<slot>:F:<vol>       or S:<slot>:E
//	I:<slot>:F:<vol>       or I:<slot>:E
func (i *Inventory) FormatListAll() string {
	lines := []string{}

	for _, e := range i.Drives {
		if e.Occupied {
			lines = append(lines, fmt.Sprintf("D:%v:F:%v:%v", e.Index, e.SourceSlot, e.Volume))
		} else {
			lines = append(lines, fmt.Sprintf("D:%v:E", e.Index))
		}
	}

	for _, group := range [][]Element{i.Slots, i.ImportExports} {
		for _, e := range group {
			if e.Occupied {
				lines = append(lines, fmt.Sprintf("%v:%v:F:%v", e.Kind, e.Index, e.Volume))
			} else {
				lines = append(lines, fmt.Sprintf("%v:%v:E", e.Kind, e.Index))
			}
		}
	}

	return strings.Join(lines, "\n")
}
