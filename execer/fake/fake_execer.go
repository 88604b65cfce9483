package fake

import (
	"github.com/structbio/alascan/execer"
)

// ExecFunc inspects a command, writes whatever output the fake should
// produce to the command's writers, and returns the final status.
type ExecFunc func(cmd execer.Command) execer.ProcessStatus

// Execer scripts process execution for tests. Every Exec records the
// command and runs the configured ExecFunc at Wait time.
type Execer struct {
	Run  ExecFunc
	Cmds []execer.Command
}

func NewExecer(run ExecFunc) *Execer {
	return &Execer{Run: run}
}

func (e *Execer) Exec(command execer.Command) (execer.Process, error) {
	e.Cmds = append(e.Cmds, command)
	return &fakeProcess{cmd: command, run: e.Run}, nil
}

type fakeProcess struct {
	cmd execer.Command
	run ExecFunc
}

func (p *fakeProcess) Wait() execer.ProcessStatus {
	if p.run == nil {
		return execer.ProcessStatus{State: execer.COMPLETE}
	}
	return p.run(p.cmd)
}
