package hardware

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pojntfx/stchgr/pkg/config"
	"github.com/pojntfx/stchgr/pkg/logging"
)

// ToolError reports a non-zero exit from an external tool, keeping the
// full invocation result so callers can pass the tool's own status code
// through as the process exit code.
type ToolError struct {
	Result Result
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("command %v failed with return code %v: %v", e.Result.Command, e.Result.ExitCode, strings.TrimRight(e.Result.Stderr, "\n"))
}

// Executor wraps a Runner with invocation logging and result
// classification. Every call logs the literal command line, the return
// code and both output streams.
type Executor struct {
	runner Runner
	log    logging.StructuredLogger
}

func NewExecutor(runner Runner, log logging.StructuredLogger) *Executor {
	return &Executor{
		runner: runner,
		log:    log,
	}
}

func logStream(stream string) string {
	stream = strings.TrimRight(stream, "\n")
	if stream == "" {
		return "N/A"
	}

	return stream
}

// Run executes one external command and returns the classified result.
func (e *Executor) Run(name string, args ...string) Result {
	command := shellquote.Join(append([]string{name}, args...)...)

	e.log.Debug("Running command", "command", command)

	result := e.runner.Run(name, args...)
	result.Command = command

	e.log.Debug("Command finished", "command", command, "returncode", result.ExitCode, "stdout", logStream(result.Stdout), "stderr", logStream(result.Stderr))

	return result
}

// RunStatus executes a state-querying command, retrying exactly once if
// the tool reports a unit attention (the transient condition some status
// tools return on first invocation after a hardware event). The second
// result wins either way.
func (e *Executor) RunStatus(name string, args ...string) Result {
	result := e.Run(name, args...)
	if result.ExitCode == config.ExitUnitAttention {
		e.log.Info("Status query reported unit attention, retrying once", "command", result.Command)

		result = e.Run(name, args...)
	}

	return result
}
