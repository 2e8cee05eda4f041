package hardware

import (
	"regexp"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/logging"
)

var (
	stDeviceRegexp      = regexp.MustCompile(`n?(st\d+)`)
	symlinkTargetRegexp = regexp.MustCompile(`-> .*?/n?(st\d+)`)
	sgNodeRegexp        = regexp.MustCompile(`(/dev/sg\d+)`)
)

// ResolveSGNode correlates a tape drive device node with the scsi
// generic (sg/pass) node the diagnostic tool needs. On Linux the
// correlation goes through `lsscsi -g`; on FreeBSD through
// `camcontrol devlist`. Resolution is best-effort: callers treat a
// failure as "skip the diagnostic", never as an operation failure.
func ResolveSGNode(exec *Executor, log logging.StructuredLogger, cfg config.Config, uname string, driveDevice string) (string, error) {
	switch uname {
	case "Linux":
		return resolveSGNodeLinux(exec, log, cfg, driveDevice)
	case "FreeBSD":
		return resolveSGNodeFreeBSD(exec, log, cfg, driveDevice)
	default:
		return "", errors.Wrap(config.ErrSGNodeUnresolvable, uname)
	}
}

func resolveSGNodeLinux(exec *Executor, log logging.StructuredLogger, cfg config.Config, driveDevice string) (string, error) {
	// Drive devices may be given as /dev/nst#, /dev/tape/by-id/*-nst or
	// /dev/tape/by-path/*; the latter two are symlinks whose target names
	// the underlying st device.
	st := ""
	if strings.Contains(driveDevice, "/dev/st") || strings.Contains(driveDevice, "/dev/nst") {
		match := stDeviceRegexp.FindStringSubmatch(driveDevice)
		if match == nil {
			return "", errors.Wrap(config.ErrSGNodeUnresolvable, driveDevice)
		}
		st = "/dev/" + match[1]
	} else if strings.Contains(driveDevice, "/by-id") || strings.Contains(driveDevice, "/by-path") {
		result := exec.Run(cfg.LsBin, "-l", driveDevice)
		if !result.OK() {
			return "", &ToolError{Result: result}
		}

		match := symlinkTargetRegexp.FindStringSubmatch(strings.TrimRight(result.Stdout, "\n"))
		if match == nil {
			return "", errors.Wrap(config.ErrSGNodeUnresolvable, driveDevice)
		}
		st = "/dev/" + match[1]
	} else {
		return "", errors.Wrap(config.ErrSGNodeUnresolvable, driveDevice)
	}

	result := exec.Run(cfg.LsscsiBin, "-g")
	if !result.OK() {
		return "", &ToolError{Result: result}
	}

	for _, line := range strings.Split(result.Stdout, "\n") {
		if !strings.Contains(line, st+" ") && !strings.HasSuffix(strings.TrimRight(line, " "), st) {
			continue
		}

		if match := sgNodeRegexp.FindStringSubmatch(line); match != nil {
			log.Debug("Resolved sg node for drive device", "device", driveDevice, "sg", match[1])

			return match[1], nil
		}
	}

	return "", errors.Wrap(config.ErrSGNodeUnresolvable, driveDevice)
}

func resolveSGNodeFreeBSD(exec *Executor, log logging.StructuredLogger, cfg config.Config, driveDevice string) (string, error) {
	// FreeBSD tape drives are /dev/sa# and their scsi generic nodes are
	// /dev/pass#; `camcontrol devlist` prints both per device:
	//
	//	<STK T10000B 0107>    at scbus3 target 0 lun 0 (pass3,sa0)
	sa := strings.TrimPrefix(driveDevice, "/dev/")

	result := exec.Run(cfg.CamcontrolBin, "devlist")
	if !result.OK() {
		return "", &ToolError{Result: result}
	}

	passRegexp := regexp.MustCompile(`\((pass\d+),` + regexp.QuoteMeta(sa) + `\)`)
	if match := passRegexp.FindStringSubmatch(result.Stdout); match != nil {
		log.Debug("Resolved sg node for drive device", "device", driveDevice, "sg", "/dev/"+match[1])

		return "/dev/" + match[1], nil
	}

	return "", errors.Wrap(config.ErrSGNodeUnresolvable, driveDevice)
}
