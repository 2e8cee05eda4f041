package inventory

import (
	"strings"
	"testing"
)

func TestFormatListAll(t *testing.T) {
	status := `  Storage Changer /dev/sg0:1 Drives, 44 Slots ( 4 Import/Export )
Data Transfer Element 0:Empty
      Storage Element 1:Full :VolumeTag=VOL001
      Storage Element 2:Full :VolumeTag=VOL002
      Storage Element 3:Full :VolumeTag=VOL003
`

	inv, err := Parse(status, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := inv.FormatListAll()
	want := strings.Join([]string{
		"D:0:E",
		"S:1:F:VOL001",
		"S:2:F:VOL002",
		"S:3:F:VOL003",
	}, "\n")
	if got != want {
		t.Errorf("Inventory.FormatListAll() = %q, want %q", got, want)
	}
}

func TestFormatListAllOrdering(t *testing.T) {
	inv, err := Parse(sampleStatus, Options{IncludeImportExport: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := inv.FormatListAll()
	want := strings.Join([]string{
		"D:0:E",
		"D:1:F:2:VOL002",
		"S:1:F:VOL001",
		"S:2:E",
		"S:3:F:CLN001",
		"S:4:F:*unknown*",
		"I:41:F:VOL041",
		"I:42:E",
	}, "\n")
	if got != want {
		t.Errorf("Inventory.FormatListAll() = %q, want %q", got, want)
	}
}

func TestFormatList(t *testing.T) {
	inv, err := Parse(sampleStatus, Options{IncludeImportExport: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Occupied elements only, slots and import/export before drives; a
	// drive's volume is reported under its source slot.
	got := inv.FormatList()
	want := strings.Join([]string{
		"1:VOL001",
		"3:CLN001",
		"4:*unknown*",
		"41:VOL041",
		"2:VOL002",
	}, "\n")
	if got != want {
		t.Errorf("Inventory.FormatList() = %q, want %q", got, want)
	}
}
