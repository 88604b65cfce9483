// Package workflow runs an ordered list of analysis steps, each in its own
// numbered working directory.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// StepFunc executes one step inside its working directory.
type StepFunc func(workdir string) error

// Step is a named stage of a workflow.
type Step struct {
	Name string
	Run  StepFunc
}

// Workflow is a fixed sequence of steps. Steps run in order; the first
// failure stops the workflow.
type Workflow struct {
	steps []Step
}

func New(steps ...Step) *Workflow {
	return &Workflow{steps: steps}
}

// Run executes every step under root. Step n runs in <root>/<NN_name> with
// the step number zero-filled to the width of the step count, so directory
// listings sort in execution order.
func (w *Workflow) Run(root string) error {
	digits := len(fmt.Sprintf("%d", len(w.steps)))
	for i, step := range w.steps {
		workdir := filepath.Join(root, fmt.Sprintf("%0*d_%s", digits, i, step.Name))
		if err := os.MkdirAll(workdir, 0777); err != nil {
			return errors.Wrapf(err, "creating step directory %s", workdir)
		}
		log.WithFields(log.Fields{"step": step.Name, "workdir": workdir}).Info("Running step")
		start := time.Now()
		if err := step.Run(workdir); err != nil {
			return errors.Wrapf(err, "step %s", step.Name)
		}
		log.WithFields(log.Fields{"step": step.Name, "took": time.Since(start).Round(time.Millisecond)}).
			Info("Step complete")
	}
	return nil
}
