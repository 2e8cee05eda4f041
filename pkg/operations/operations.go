package operations

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/hardware"
	"github.com/pojntfx/stchgr/pkg/inventory"
	"github.com/pojntfx/stchgr/pkg/logging"
)

type Command string

const (
	CommandList     Command = config.CommandListKey
	CommandListAll  Command = config.CommandListAllKey
	CommandSlots    Command = config.CommandSlotsKey
	CommandLoaded   Command = config.CommandLoadedKey
	CommandLoad     Command = config.CommandLoadKey
	CommandUnload   Command = config.CommandUnloadKey
	CommandTransfer Command = config.CommandTransferKey
)

func ParseCommand(raw string) (Command, error) {
	for _, known := range config.KnownCommands {
		if raw == known {
			return Command(raw), nil
		}
	}

	return "", errors.Wrap(config.ErrUnknownCommand, raw)
}

// Request is the normalized form of one invocation by the storage
// daemon. It is created once per process and never modified.
type Request struct {
	Command       Command
	ChangerDevice string
	Slot          int
	DriveDevice   string
	DriveIndex    int

	// For transfer, the daemon sends the destination slot in the drive
	// device position.
	DestinationSlot int

	Job string
}

// Operations sequences the changer verbs over one external tool executor
// and one inventory snapshot per invocation.
type Operations struct {
	config config.Config
	exec   *hardware.Executor
	waiter *hardware.Waiter
	log    logging.StructuredLogger
	stdout io.Writer

	uname       string
	readyMarker string

	sleep func(time.Duration)
	pick  func(n int) int
}

func NewOperations(
	cfg config.Config,
	exec *hardware.Executor,
	waiter *hardware.Waiter,

	uname string,
	readyMarker string,

	stdout io.Writer,
	log logging.StructuredLogger,
) *Operations {
	return &Operations{
		config: cfg,
		exec:   exec,
		waiter: waiter,
		log:    log,
		stdout: stdout,

		uname:       uname,
		readyMarker: readyMarker,

		sleep: time.Sleep,
		pick:  rand.Intn,
	}
}

// Dispatch maps the request to its operation and yields the process exit
// status.
func (o *Operations) Dispatch(req Request) int {
	switch req.Command {
	case CommandList:
		return o.List(req)
	case CommandListAll:
		return o.ListAll(req)
	case CommandSlots:
		return o.Slots(req)
	case CommandLoaded:
		return o.Loaded(req)
	case CommandLoad:
		return o.Load(req)
	case CommandUnload:
		return o.Unload(req)
	case CommandTransfer:
		return o.Transfer(req)
	default:
		o.log.Error("Unknown command", "command", req.Command)
		fmt.Fprintln(o.stdout, "unknown command: "+string(req.Command))

		return config.ExitFailure
	}
}

// snapshot takes one fresh parse of the changer's status. Each command
// invocation takes at most one snapshot and re-derives all of its
// lookups from it.
func (o *Operations) snapshot(changerDevice string, refresh bool) (*inventory.Inventory, error) {
	if refresh && o.config.Inventory {
		// Some libraries need an explicit inventory pass before their
		// status output is trustworthy.
		result := o.exec.Run(o.config.MtxBin, "-f", changerDevice, "inventory")
		if !result.OK() {
			return nil, &hardware.ToolError{Result: result}
		}
	}

	result := o.exec.RunStatus(o.config.MtxBin, "-f", changerDevice, "status")
	if !result.OK() {
		return nil, &hardware.ToolError{Result: result}
	}

	return inventory.Parse(result.Stdout, inventory.Options{
		IncludeImportExport: o.config.IncludeImportExport,
	})
}

// fail logs the error and echoes it to stdout, where the storage daemon
// captures it into the job log (the daemon does not read the changer
// log). Tool failures pass the tool's own status code through.
func (o *Operations) fail(err error) int {
	var toolErr *hardware.ToolError
	if errors.As(err, &toolErr) {
		o.log.Error("External tool failed", "command", toolErr.Result.Command, "returncode", toolErr.Result.ExitCode, "stderr", strings.TrimRight(toolErr.Result.Stderr, "\n"))
		fmt.Fprintln(o.stdout, strings.TrimRight(toolErr.Result.Stderr, "\n"))

		return toolErr.Result.ExitCode
	}

	o.log.Error("Operation failed", "error", err)
	fmt.Fprintln(o.stdout, err)

	return config.ExitFailure
}
