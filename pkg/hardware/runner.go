package hardware

import (
	"bytes"
	"os/exec"
)

// Result is the classified outcome of one external tool invocation.
type Result struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Runner executes one external command to completion and captures both
// output streams. Tests substitute a fake so no hardware tool ever runs.
type Runner interface {
	Run(name string, args ...string) Result
}

// ExecRunner is the os/exec backed Runner used against real hardware.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) Result {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			// The tool could not be started at all (missing binary,
			// permissions); report it the way a failing tool would.
			exitCode = 1
			stderr.WriteString(err.Error())
		}
	}

	return Result{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}
