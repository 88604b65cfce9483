package sched

import "testing"

func TestEnvCores(t *testing.T) {
	tests := []struct {
		name  string
		slurm string
		pbs   string
		want  int
	}{
		{"neither set", "", "", 1},
		{"slurm only", "16", "", 16},
		{"pbs only", "", "8", 8},
		{"larger wins", "4", "12", 12},
		{"garbage ignored", "sixteen", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(slurmCoresEnv, tt.slurm)
			t.Setenv(pbsCoresEnv, tt.pbs)
			if got := EnvCores(); got != tt.want {
				t.Fatalf("EnvCores() = %d, want %d", got, tt.want)
			}
		})
	}
}
