package sched

import (
	"os"
	"strconv"
)

// Per-node core count variables set by the two supported resource managers.
const (
	slurmCoresEnv = "SLURM_CPUS_ON_NODE"
	pbsCoresEnv   = "PBS_CPUS_ON_NODE"
)

// EnvCores reads the per-node core counts advertised by the resource
// manager and returns the larger, defaulting to 1 when neither is set.
func EnvCores() int {
	slurm := envInt(slurmCoresEnv, 1)
	pbs := envInt(pbsCoresEnv, 1)
	if slurm > pbs {
		return slurm
	}
	return pbs
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
