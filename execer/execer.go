package execer

// Execer runs one Unix command. It is at the level of os/exec, not
// exec-as-a-service: callers hand it a fully formed argv and collect the
// process exit status. The analysis code never shells out directly so tests
// can substitute a fake.

import "io"

type Command struct {
	Argv []string
	// Dir is the working directory for the command, empty for the caller's.
	Dir string
	// Stdout and Stderr receive the process output when non-nil.
	Stdout io.Writer
	Stderr io.Writer
}

type ProcessState int

const (
	UNKNOWN ProcessState = iota
	RUNNING
	COMPLETE
	FAILED
)

func (s ProcessState) IsDone() bool {
	return s == COMPLETE || s == FAILED
}

type Execer interface {
	Exec(command Command) (Process, error)
}

type Process interface {
	Wait() ProcessStatus
}

type ProcessStatus struct {
	State    ProcessState
	ExitCode int
	Error    string
}
