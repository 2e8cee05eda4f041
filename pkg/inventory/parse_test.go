package inventory

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pojntfx/stchgr/pkg/config"
)

const sampleStatus = `  Storage Changer /dev/sg0:2 Drives, 44 Slots ( 4 Import/Export )
Data Transfer Element 0:Empty
Data Transfer Element 1:Full (Storage Element 2 Loaded):VolumeTag = VOL002
      Storage Element 1:Full :VolumeTag=VOL001
      Storage Element 2:Empty
      Storage Element 3:Full :VolumeTag=CLN001
      Storage Element 4:Full
      Storage Element 41 IMPORT/EXPORT:Full :VolumeTag=VOL041
      Storage Element 42 IMPORT/EXPORT:Empty
`

func TestParse(t *testing.T) {
	inv, err := Parse(sampleStatus, Options{IncludeImportExport: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got, want := inv.DriveCount, 2; got != want {
		t.Errorf("Inventory.DriveCount = %v, want %v", got, want)
	}

	if got, want := inv.SlotCount, 44; got != want {
		t.Errorf("Inventory.SlotCount = %v, want %v", got, want)
	}

	if got, want := inv.ImportExportCount, 4; got != want {
		t.Errorf("Inventory.ImportExportCount = %v, want %v", got, want)
	}

	if got, want := len(inv.Drives), 2; got != want {
		t.Fatalf("len(Inventory.Drives) = %v, want %v", got, want)
	}

	if got, want := inv.Drives[1], (Element{Kind: KindDrive, Index: 1, Occupied: true, Volume: "VOL002", SourceSlot: 2}); got != want {
		t.Errorf("Inventory.Drives[1] = %v, want %v", got, want)
	}

	if got, want := len(inv.Slots), 4; got != want {
		t.Fatalf("len(Inventory.Slots) = %v, want %v", got, want)
	}

	if got, want := inv.Slots[0], (Element{Kind: KindSlot, Index: 1, Occupied: true, Volume: "VOL001"}); got != want {
		t.Errorf("Inventory.Slots[0] = %v, want %v", got, want)
	}

	if got, want := inv.Slots[1], (Element{Kind: KindSlot, Index: 2}); got != want {
		t.Errorf("Inventory.Slots[1] = %v, want %v", got, want)
	}

	if got, want := len(inv.ImportExports), 2; got != want {
		t.Fatalf("len(Inventory.ImportExports) = %v, want %v", got, want)
	}

	if got, want := inv.ImportExports[0], (Element{Kind: KindImportExport, Index: 41, Occupied: true, Volume: "VOL041"}); got != want {
		t.Errorf("Inventory.ImportExports[0] = %v, want %v", got, want)
	}
}

func TestParseBarcodelessVolume(t *testing.T) {
	inv, err := Parse(sampleStatus, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got, want := inv.VolumeAt(KindSlot, 4), config.NoBarcodeLabel; got != want {
		t.Errorf("Inventory.VolumeAt(KindSlot, 4) = %v, want %v", got, want)
	}
}

func TestParseExcludesImportExportByDefault(t *testing.T) {
	inv, err := Parse(sampleStatus, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got, want := len(inv.ImportExports), 0; got != want {
		t.Errorf("len(Inventory.ImportExports) = %v, want %v", got, want)
	}
}

func TestParseIdempotent(t *testing.T) {
	first, err := Parse(sampleStatus, Options{IncludeImportExport: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	second, err := Parse(sampleStatus, Options{IncludeImportExport: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse() not idempotent: %v != %v", first, second)
	}
}

func TestParseMissingBanner(t *testing.T) {
	_, err := Parse(`Data Transfer Element 0:Empty
      Storage Element 1:Full :VolumeTag=VOL001
`, Options{})
	if !errors.Is(err, config.ErrStatusUnrecognized) {
		t.Errorf("Parse() error = %v, want %v", err, config.ErrStatusUnrecognized)
	}
}

func TestParseDuplicateElement(t *testing.T) {
	_, err := Parse(`  Storage Changer /dev/sg0:1 Drives, 2 Slots ( 0 Import/Export )
      Storage Element 1:Empty
      Storage Element 1:Full :VolumeTag=VOL001
`, Options{})
	if !errors.Is(err, config.ErrStatusUnrecognized) {
		t.Errorf("Parse() error = %v, want %v", err, config.ErrStatusUnrecognized)
	}
}

func TestParseVolumesUnique(t *testing.T) {
	inv, err := Parse(sampleStatus, Options{IncludeImportExport: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	seen := map[string]bool{}
	for _, e := range inv.Elements() {
		if !e.Occupied || e.Volume == config.NoBarcodeLabel {
			continue
		}

		if seen[e.Volume] {
			t.Errorf("volume %v occupies two elements", e.Volume)
		}
		seen[e.Volume] = true
	}
}

func TestParseTolerantOfTrailingWhitespace(t *testing.T) {
	inv, err := Parse("  Storage Changer /dev/sg0:1 Drives, 1 Slots ( 0 Import/Export )\r\nData Transfer Element 0:Empty \r\n      Storage Element 1:Full :VolumeTag=VOL001\t\r\n", Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got, want := inv.VolumeAt(KindSlot, 1), "VOL001"; got != want {
		t.Errorf("Inventory.VolumeAt(KindSlot, 1) = %v, want %v", got, want)
	}
}
