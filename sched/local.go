package sched

import (
	"github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/structbio/alascan/async"
	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/work"
)

// LocalScheduler runs jobs on up to ncores concurrent workers. Each worker
// owns its job exclusively for the worker's lifetime; harvested jobs come
// back through the async result channel, never through shared mutable state.
type LocalScheduler struct {
	ncores int
	stat   stats.StatsReceiver
}

func NewLocalScheduler(ncores int, stat stats.StatsReceiver) *LocalScheduler {
	if ncores < 1 {
		ncores = 1
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &LocalScheduler{ncores: ncores, stat: stat}
}

// Schedule runs the batch and blocks until every job has finished or failed.
// A job that returns an error or panics is recorded as a per-job failure
// without aborting its siblings.
func (s *LocalScheduler) Schedule(jobs []work.Job) ([]Result, error) {
	defer s.stat.Latency(stats.SchedulerBatchLatency_ms).Time().Stop()
	batchTag := ""
	if u, err := uuid.NewV4(); err == nil {
		batchTag = u.String()
	}
	log.WithFields(log.Fields{"batch": batchTag, "jobs": len(jobs), "ncores": s.ncores}).
		Info("Scheduling local batch")

	results := make([]Result, len(jobs))
	sem := make(chan struct{}, s.ncores)
	runner := async.NewRunner()
	for i, job := range jobs {
		i, job := i, job
		results[i].Job = job
		runner.RunAsync(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()
			return runJob(job)
		}, func(err error) {
			// Callback runs on this goroutine, so indexing is race-free.
			results[i].Err = err
			s.stat.Counter(stats.SchedulerJobsCompleted).Inc(1)
			if err != nil {
				s.stat.Counter(stats.SchedulerJobFailures).Inc(1)
				log.WithFields(log.Fields{"batch": batchTag, "job": i, "error": err}).
					Error("Job failed")
			}
		})
	}
	runner.Wait()
	log.WithFields(log.Fields{"batch": batchTag, "jobs": len(jobs)}).Info("Local batch complete")
	return results, nil
}

// runJob runs one job's lifecycle, converting a panic into a per-job error
// so a crashing worker cannot take down the batch.
func runJob(job work.Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("job panicked: %v", p)
		}
	}()
	if err := job.Run(); err != nil {
		return err
	}
	return job.Output()
}
