package execer

import (
	"fmt"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

type osExecer struct{}

// NewOsExecer returns an Execer backed by os/exec.
func NewOsExecer() Execer {
	return &osExecer{}
}

func (e *osExecer) Exec(command Command) (Process, error) {
	if len(command.Argv) == 0 {
		return nil, fmt.Errorf("no command specified")
	}

	cmd := exec.Command(command.Argv[0], command.Argv[1:]...)
	cmd.Dir = command.Dir
	cmd.Env = os.Environ()
	cmd.Stdout = command.Stdout
	cmd.Stderr = command.Stderr

	log.WithFields(log.Fields{"argv": command.Argv, "dir": command.Dir}).Debug("Starting command")
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &process{cmd: cmd}, nil
}

type process struct {
	cmd *exec.Cmd
}

func (p *process) Wait() ProcessStatus {
	err := p.cmd.Wait()
	if err == nil {
		return ProcessStatus{State: COMPLETE, ExitCode: 0}
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ProcessStatus{State: COMPLETE, ExitCode: ee.ExitCode(), Error: ee.Error()}
	}
	return ProcessStatus{State: FAILED, Error: err.Error()}
}
