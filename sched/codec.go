package sched

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"github.com/structbio/alascan/work"
)

// The job-list artifact is gob-encoded. Concrete job types register
// themselves with encoding/gob in their package init, so the driver can
// decode the []work.Job interface slice back into the right types.

// WriteJobs encodes the full job list to path.
func WriteJobs(path string, jobs []work.Job) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating job artifact %s", path)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(jobs); err != nil {
		return errors.Wrapf(err, "encoding %d jobs to %s", len(jobs), path)
	}
	return nil
}

// ReadJobs decodes a job list written by WriteJobs.
func ReadJobs(path string) ([]work.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening job artifact %s", path)
	}
	defer f.Close()
	var jobs []work.Job
	if err := gob.NewDecoder(f).Decode(&jobs); err != nil {
		return nil, errors.Wrapf(err, "decoding job artifact %s", path)
	}
	return jobs, nil
}
