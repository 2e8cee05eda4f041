package config

const (
	ExitSuccess = 0
	ExitFailure = 1

	// Some mtx builds surface the SCSI UNIT ATTENTION sense key as their
	// exit status right after a hardware event; status queries are retried
	// once when they see it.
	ExitUnitAttention = 6

	CommandListKey     = "list"
	CommandListAllKey  = "listall"
	CommandSlotsKey    = "slots"
	CommandLoadedKey   = "loaded"
	CommandLoadKey     = "load"
	CommandUnloadKey   = "unload"
	CommandTransferKey = "transfer"

	// Label given to an occupied element whose VolumeTag is absent
	// (barcode-less media).
	NoBarcodeLabel = "*unknown*"
)

var (
	KnownCommands = []string{CommandListKey, CommandListAllKey, CommandSlotsKey, CommandLoadedKey, CommandLoadKey, CommandUnloadKey, CommandTransferKey}

	// TapeAlert codes that mean the drive wants a cleaning cycle.
	CleaningRequiredAlertCodes = []int{20, 21}

	// TapeAlert code left behind by the cleaning cartridge itself; cleared
	// with one extra tapeinfo read after cleaning.
	CleaningMediaAlertCode = 11
)
