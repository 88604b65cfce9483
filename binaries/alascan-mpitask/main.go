package main

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/structbio/alascan/sched"
	"github.com/structbio/alascan/work"

	// Concrete job types register themselves with gob in their package
	// inits; the driver must link them in or the artifact will not decode.
	_ "github.com/structbio/alascan/accscore"
	_ "github.com/structbio/alascan/scan"
)

// MPI rank driver. Every rank decodes the job artifact written by the MPI
// scheduler and runs its share of the jobs. The parent treats any stderr
// output as fatal for the whole batch, so logging goes to stdout and stderr
// carries only genuine failures.

// Environment variables the supported MPI stacks use to advertise rank and
// world size, probed in order.
var rankEnvs = []string{"OMPI_COMM_WORLD_RANK", "PMI_RANK", "SLURM_PROCID"}
var sizeEnvs = []string{"OMPI_COMM_WORLD_SIZE", "PMI_SIZE", "SLURM_NTASKS"}

func main() {
	log.SetOutput(os.Stdout)

	if len(os.Args) != 2 {
		fatalf("usage: alascan-mpitask <job artifact>")
	}
	rank := envFirst(rankEnvs, 0)
	size := envFirst(sizeEnvs, 1)
	if size < 1 {
		size = 1
	}
	if rank < 0 || rank >= size {
		fatalf("rank %d out of range for world size %d", rank, size)
	}

	jobs, err := sched.ReadJobs(os.Args[1])
	if err != nil {
		fatalf("reading job artifact: %v", err)
	}
	log.WithFields(log.Fields{"rank": rank, "size": size, "jobs": len(jobs)}).Info("Rank starting")

	for i := rank; i < len(jobs); i += size {
		job := jobs[i]
		if b, ok := job.(work.Binder); ok {
			if err := b.BindDefaults(); err != nil {
				fatalf("binding job %d: %v", i, err)
			}
		}
		if err := job.Run(); err != nil {
			fatalf("running job %d: %v", i, err)
		}
		if err := job.Output(); err != nil {
			fatalf("writing output of job %d: %v", i, err)
		}
	}
	log.WithFields(log.Fields{"rank": rank}).Info("Rank done")
}

func envFirst(keys []string, def int) int {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return def
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
