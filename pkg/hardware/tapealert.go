package hardware

import (
	"regexp"
	"strconv"

	"github.com/pojntfx/stchgr/pkg/config"
)

// TapeAlert is one alert entry from the drive's diagnostic log, e.g.
//
//	TapeAlert[20]:     Clean Now: The tape drive needs cleaning NOW.
//	TapeAlert[21]: Clean Periodic:The tape drive needs to be cleaned at next opportunity.
type TapeAlert struct {
	Code    int
	Message string
}

var tapeAlertRegexp = regexp.MustCompile(`TapeAlert\[(\d+)\]: +(.*)`)

// ReadTapeAlerts queries the drive's alert log through the tapeinfo
// utility. Note that tapeinfo destructively clears the drive's alert
// register on read; callers exploit this to flush stale alerts.
func ReadTapeAlerts(exec *Executor, tapeinfoBin string, sgNode string) ([]TapeAlert, error) {
	result := exec.Run(tapeinfoBin, "-f", sgNode)
	if !result.OK() {
		return nil, &ToolError{Result: result}
	}

	alerts := []TapeAlert{}
	for _, match := range tapeAlertRegexp.FindAllStringSubmatch(result.Stdout, -1) {
		code, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		alerts = append(alerts, TapeAlert{Code: code, Message: match[2]})
	}

	return alerts, nil
}

// CleaningRequired reports whether any alert carries one of the
// "drive needs cleaning" codes.
func CleaningRequired(alerts []TapeAlert) bool {
	for _, alert := range alerts {
		for _, code := range config.CleaningRequiredAlertCodes {
			if alert.Code == code {
				return true
			}
		}
	}

	return false
}
