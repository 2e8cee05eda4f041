package inventory

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/pojntfx/stchgr/pkg/config"
)

// Options control which element classes the parser admits into the
// snapshot.
type Options struct {
	IncludeImportExport bool
}

// mtx status output, the shapes the parser recognizes:
//
//	  Storage Changer /dev/sg1:4 Drives, 44 Slots ( 4 Import/Export )
//	Data Transfer Element 0:Empty
//	Data Transfer Element 1:Full (Storage Element 5 Loaded):VolumeTag = G03005TA
//	      Storage Element 1:Full :VolumeTag=G03001TA
//	      Storage Element 2:Empty
//	      Storage Element 41 IMPORT/EXPORT:Full :VolumeTag=G03029TA
//	      Storage Element 42 IMPORT/EXPORT:Empty
var (
	bannerRegexp = regexp.MustCompile(`Storage Changer\s+.*:(?P<drives>\d+) Drives, (?P<slots>\d+) Slots(?: ?\( ?(?P<importexports>\d+) Import/Export ?\))?`)

	driveFullRegexp  = regexp.MustCompile(`^Data Transfer Element (?P<drive>\d+):Full \(Storage Element (?P<slot>\d+) Loaded\)(?::VolumeTag ?= ?(?P<volume>.+))?$`)
	driveEmptyRegexp = regexp.MustCompile(`^Data Transfer Element (?P<drive>\d+):Empty`)

	importExportRegexp = regexp.MustCompile(`^\s*Storage Element (?P<slot>\d+) IMPORT.EXPORT:(?P<state>Empty|Full)(?: ?:VolumeTag ?= ?(?P<volume>.+))?$`)
	slotRegexp         = regexp.MustCompile(`^\s*Storage Element (?P<slot>\d+):(?P<state>Empty|Full)(?: ?:VolumeTag ?= ?(?P<volume>.+))?$`)
)

func namedGroup(r *regexp.Regexp, match []string, name string) string {
	for i, n := range r.SubexpNames() {
		if n == name && i < len(match) {
			return match[i]
		}
	}

	return ""
}

func volumeOrPlaceholder(raw string) string {
	vol := strings.TrimSpace(raw)
	if vol == "" {
		return config.NoBarcodeLabel
	}

	return vol
}

// Parse turns raw changer status text into an Inventory. The banner line
// with the overall element counts has to be present; its absence means
// the status tool's output is not in a recognized format and parsing
// fails fatally.
func Parse(status string, options Options) (*Inventory, error) {
	inv := &Inventory{}

	seen := map[string]bool{}
	record := func(e Element) error {
		key := e.Kind.String() + ":" + strconv.Itoa(e.Index)
		if seen[key] {
			return errors.Wrapf(config.ErrStatusUnrecognized, "duplicate element %v", key)
		}
		seen[key] = true

		switch e.Kind {
		case KindDrive:
			inv.Drives = append(inv.Drives, e)
		case KindSlot:
			inv.Slots = append(inv.Slots, e)
		case KindImportExport:
			inv.ImportExports = append(inv.ImportExports, e)
		}

		return nil
	}

	bannerFound := false

	scanner := bufio.NewScanner(strings.NewReader(status))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}

		if match := bannerRegexp.FindStringSubmatch(line); match != nil {
			bannerFound = true
			inv.DriveCount, _ = strconv.Atoi(namedGroup(bannerRegexp, match, "drives"))
			inv.SlotCount, _ = strconv.Atoi(namedGroup(bannerRegexp, match, "slots"))
			inv.ImportExportCount, _ = strconv.Atoi(namedGroup(bannerRegexp, match, "importexports"))

			continue
		}

		if match := driveFullRegexp.FindStringSubmatch(line); match != nil {
			drive, _ := strconv.Atoi(namedGroup(driveFullRegexp, match, "drive"))
			slot, _ := strconv.Atoi(namedGroup(driveFullRegexp, match, "slot"))

			if err := record(Element{
				Kind:       KindDrive,
				Index:      drive,
				Occupied:   true,
				Volume:     volumeOrPlaceholder(namedGroup(driveFullRegexp, match, "volume")),
				SourceSlot: slot,
			}); err != nil {
				return nil, err
			}

			continue
		}

		if match := driveEmptyRegexp.FindStringSubmatch(line); match != nil {
			drive, _ := strconv.Atoi(namedGroup(driveEmptyRegexp, match, "drive"))

			if err := record(Element{
				Kind:  KindDrive,
				Index: drive,
			}); err != nil {
				return nil, err
			}

			continue
		}

		// The import/export shape embeds the plain slot shape, so it has
		// to be tried first.
		if match := importExportRegexp.FindStringSubmatch(line); match != nil {
			if !options.IncludeImportExport {
				continue
			}

			slot, _ := strconv.Atoi(namedGroup(importExportRegexp, match, "slot"))

			e := Element{
				Kind:  KindImportExport,
				Index: slot,
			}
			if namedGroup(importExportRegexp, match, "state") == "Full" {
				e.Occupied = true
				e.Volume = volumeOrPlaceholder(namedGroup(importExportRegexp, match, "volume"))
			}

			if err := record(e); err != nil {
				return nil, err
			}

			continue
		}

		if match := slotRegexp.FindStringSubmatch(line); match != nil {
			slot, _ := strconv.Atoi(namedGroup(slotRegexp, match, "slot"))

			e := Element{
				Kind:  KindSlot,
				Index: slot,
			}
			if namedGroup(slotRegexp, match, "state") == "Full" {
				e.Occupied = true
				e.Volume = volumeOrPlaceholder(namedGroup(slotRegexp, match, "volume"))
			}

			if err := record(e); err != nil {
				return nil, err
			}

			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not scan status output")
	}

	if !bannerFound {
		return nil, errors.Wrap(config.ErrStatusUnrecognized, "missing storage changer banner line")
	}

	return inv, nil
}
