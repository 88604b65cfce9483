package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/config"
	"github.com/structbio/alascan/scan"
	"github.com/structbio/alascan/sched"
	"github.com/structbio/alascan/work"
)

func newScanCmd() *cobra.Command {
	var paramsFile, mode string
	var ncores int
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan interface residues of every structure and write per-structure results",
		RunE: func(*cobra.Command, []string) error {
			p, err := config.Load(paramsFile)
			if err != nil {
				return err
			}
			applyOverrides(p, mode, ncores)
			return runScan(p)
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", "params.yaml", "YAML parameter file")
	cmd.Flags().StringVar(&mode, "mode", "", "override the configured execution mode (local|mpi)")
	cmd.Flags().IntVar(&ncores, "ncores", 0, "override the configured core count")
	return cmd
}

// applyOverrides lets command-line flags win over the params file.
func applyOverrides(p *config.Params, mode string, ncores int) {
	if mode != "" {
		p.Mode = mode
	}
	if ncores > 0 {
		p.NCores = ncores
	}
}

func runScan(p *config.Params) error {
	structures := p.ModelStructures()
	if len(structures) == 0 {
		return errors.New("no structures configured")
	}
	stat := stats.DefaultStatsReceiver().Scope("alascan")

	params := scan.Params{
		ScanResidue:       p.ScanResidue,
		ScorerBin:         p.ScorerBin,
		Path:              p.OutputDir,
		InterfaceResidues: p.InterfaceResidues,
	}
	var jobs []work.Job
	for _, rng := range work.Partition(len(structures), p.NCores) {
		job := scan.NewJob(structures[rng.Start:rng.End], rng.Core, params, scan.Deps{})
		if err := job.BindDefaults(); err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	scheduler, err := newScheduler(p, stat)
	if err != nil {
		return err
	}
	results, err := scheduler.Schedule(jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	log.WithFields(log.Fields{"jobs": len(results), "failed": failed}).Info("Scan finished")
	log.Debugf("Stats: %s", stat.Render())
	if failed > 0 {
		return errors.Errorf("%d of %d scan jobs failed", failed, len(results))
	}
	return nil
}

func newScheduler(p *config.Params, stat stats.StatsReceiver) (sched.Scheduler, error) {
	switch p.Mode {
	case config.ModeMPI:
		// The resource manager supplies the per-node core count in MPI mode.
		return sched.NewMPIScheduler(sched.EnvCores(), nil), nil
	case config.ModeLocal:
		return sched.NewLocalScheduler(p.NCores, stat), nil
	}
	return nil, errors.Errorf("unknown mode %q", p.Mode)
}
