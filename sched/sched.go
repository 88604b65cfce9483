// Package sched distributes jobs over local cores or MPI ranks. The two
// backends share one Schedule contract; callers pick a backend per batch and
// never mix them within one.
package sched

import "github.com/structbio/alascan/work"

// Result pairs a harvested job with its failure, if any. The local backend
// records per-job failures; the MPI backend is all-or-nothing and only ever
// reports nil per-job errors.
type Result struct {
	Job work.Job
	Err error
}

// Scheduler runs a batch of jobs to completion. Results preserve submission
// order regardless of completion order, and no job is silently dropped.
type Scheduler interface {
	Schedule(jobs []work.Job) ([]Result, error)
}
