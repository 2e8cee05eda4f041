package operations

import (
	"github.com/pojntfx/stchgr/pkg/hardware"
	"github.com/pojntfx/stchgr/pkg/inventory"
)

// checkDrive is the cleaning coordinator. It runs after a successful
// unload of a non-cleaning volume and decides whether to run a cleaning
// cycle. Every outcome here is advisory: the unload has already
// succeeded, and nothing the coordinator does may revoke that.
func (o *Operations) checkDrive(inv *inventory.Inventory, req Request) {
	var tapes []inventory.CleaningTape
	if o.config.AutoClean {
		tapes = inv.CleaningTapes(o.config.CleaningPrefix)
		if len(tapes) == 0 {
			o.log.Info("No cleaning tapes found in library, skipping automatic cleaning")

			return
		}

		o.log.Info("Found cleaning tapes", "count", len(tapes))
	}

	sg, err := hardware.ResolveSGNode(o.exec, o.log, o.config, o.uname, req.DriveDevice)
	if err != nil {
		o.log.Warn("Could not resolve an sg node for drive device, skipping tapeinfo tests", "device", req.DriveDevice, "error", err)

		return
	}

	o.log.Info("Checking drive with tapeinfo utility", "sg", sg)

	alerts, err := hardware.ReadTapeAlerts(o.exec, o.config.TapeinfoBin, sg)
	if err != nil {
		o.log.Warn("Could not read tape alerts, skipping tapeinfo tests", "sg", sg, "error", err)

		return
	}

	if len(alerts) == 0 {
		o.log.Info("No tape alerts detected", "sg", sg)

		return
	}

	o.log.Info("Found tape alerts for drive device", "device", req.DriveDevice, "sg", sg, "count", len(alerts))
	for _, alert := range alerts {
		o.log.Info("Tape alert", "code", alert.Code, "message", alert.Message)
	}

	if !hardware.CleaningRequired(alerts) {
		o.log.Info("No \"drive needs cleaning\" tape alerts detected", "sg", sg)

		return
	}

	if !o.config.AutoClean {
		o.log.Warn("Drive requires cleaning but the auto_clean variable is false, skipping cleaning", "device", req.DriveDevice)

		return
	}

	// Uniform random pick among the candidates.
	tape := tapes[o.pick(len(tapes))]

	o.log.Info("Selected a cleaning tape", "volume", tape.Volume, "slot", tape.Slot, "device", req.DriveDevice, "drive", req.DriveIndex)

	if err := o.loadCleaning(req, tape.Slot, tape.Volume); err != nil {
		o.log.Warn("Cleaning cycle failed", "volume", tape.Volume, "slot", tape.Slot, "error", err)

		return
	}

	// tapeinfo clears the drive's alert register on read; one extra read
	// flushes the stale "Cleaning Media" alert the cartridge left behind.
	o.log.Info("Reading tape alerts once more to clear the cleaning media alert", "sg", sg)
	if _, err := hardware.ReadTapeAlerts(o.exec, o.config.TapeinfoBin, sg); err != nil {
		o.log.Warn("Could not clear tape alerts", "sg", sg, "error", err)
	}
}
