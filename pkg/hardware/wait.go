package hardware

import (
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/logging"
)

// Waiter polls a drive's status after a load until the drive reports
// ready or the configured ceiling elapses. This is the one place in the
// system with an inherent real-time wait; it ends only by becoming ready
// or exhausting the timeout.
type Waiter struct {
	exec *Executor
	log  logging.StructuredLogger

	Interval time.Duration
	Sleep    func(time.Duration)
}

func NewWaiter(exec *Executor, log logging.StructuredLogger) *Waiter {
	return &Waiter{
		exec: exec,
		log:  log,

		Interval: time.Second,
		Sleep:    time.Sleep,
	}
}

// WaitForDrive polls `mt -f <device> status` once per interval, checking
// the output for the platform's ready marker, for at most maxWait
// seconds (maxWait+1 polls). A missing marker after the last poll is the
// distinct config.ErrDriveReadyTimeout; a failing status query surfaces
// as a ToolError.
func (w *Waiter) WaitForDrive(mtBin string, device string, marker string, maxWait int) error {
	w.log.Info("Waiting for drive to become ready", "device", device, "marker", marker, "maxwait", maxWait)

	for s := 0; s <= maxWait; s++ {
		result := w.exec.RunStatus(mtBin, "-f", device, "status")
		if !result.OK() {
			return &ToolError{Result: result}
		}

		if strings.Contains(result.Stdout, marker) {
			w.log.Info("Drive reports ready", "device", device)

			return nil
		}

		w.log.Info("Drive not ready, sleeping for one second and retrying", "device", device)

		w.Sleep(w.Interval)
	}

	return errors.Wrap(config.ErrDriveReadyTimeout, device)
}
