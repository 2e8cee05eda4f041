package platform

import (
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/hardware"
	"github.com/spf13/afero"
)

// Ready markers: the exact substring each platform's mt implementation
// prints once a drive has finished mounting media.
const (
	readyMarkerLinuxMtSt  = "ONLINE"
	readyMarkerLinuxCpio  = "drive status"
	readyMarkerSolaris    = "No Additional Sense"
	readyMarkerFreeBSD    = "Current Driver State: at rest."
	readyMarkerOpenBSD    = "ds=3<Mounted>"
	debianVersionMarkFile = "/etc/debian_version"
)

// DetectUname asks the system for its OS family, once at startup.
func DetectUname(exec *hardware.Executor, unameBin string) (string, error) {
	result := exec.Run(unameBin)
	if !result.OK() {
		return "", &hardware.ToolError{Result: result}
	}

	return strings.TrimRight(result.Stdout, "\n"), nil
}

// ReadyMarker selects the drive-ready marker for the detected OS family.
// Linux needs an extra probe: Debian-family systems ship mt-st while
// others ship the GNU cpio mt, and the two print different status text.
func ReadyMarker(exec *hardware.Executor, fs afero.Fs, uname string, mtBin string) (string, error) {
	switch uname {
	case "Linux":
		version := exec.Run(mtBin, "--version")

		if debian, err := afero.Exists(fs, debianVersionMarkFile); err == nil && debian {
			if !strings.Contains(version.Stdout, "mt-st") {
				return readyMarkerLinuxCpio, nil
			}
		} else if strings.Contains(version.Stdout, "GNU cpio") {
			return readyMarkerLinuxCpio, nil
		}

		return readyMarkerLinuxMtSt, nil
	case "SunOS":
		return readyMarkerSolaris, nil
	case "FreeBSD":
		return readyMarkerFreeBSD, nil
	case "OpenBSD":
		return readyMarkerOpenBSD, nil
	default:
		return "", errors.Wrap(config.ErrPlatformUnsupported, uname)
	}
}
