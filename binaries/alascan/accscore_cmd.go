package main

import (
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/structbio/alascan/accscore"
	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/config"
	"github.com/structbio/alascan/sched"
	"github.com/structbio/alascan/work"
)

func newAccScoreCmd() *cobra.Command {
	var paramsFile string
	cmd := &cobra.Command{
		Use:   "accscore",
		Short: "Score structures against buried/accessible residue expectations",
		RunE: func(*cobra.Command, []string) error {
			p, err := config.Load(paramsFile)
			if err != nil {
				return err
			}
			return runAccScore(p)
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", "params.yaml", "YAML parameter file")
	return cmd
}

func runAccScore(p *config.Params) error {
	structures := p.ModelStructures()
	if len(structures) == 0 {
		return errors.New("no structures configured")
	}
	if len(p.BuriedResidues) == 0 && len(p.AccessibleResidues) == 0 {
		return errors.New("no resdic_buried or resdic_accessible residues configured")
	}
	access := accscore.FileAccess(p.AccessibilityDir)

	params := accscore.Params{
		Buried:      p.BuriedResidues,
		Accessible:  p.AccessibleResidues,
		Cutoff:      p.Cutoff,
		ProbeRadius: p.ProbeRadius,
		Path:        p.OutputDir,
	}
	var jobs []work.Job
	for _, rng := range work.Partition(len(structures), p.NCores) {
		jobs = append(jobs, accscore.NewJob(structures[rng.Start:rng.End], rng.Core, params, access))
	}

	stat := stats.DefaultStatsReceiver().Scope("accscore")
	results, err := sched.NewLocalScheduler(p.NCores, stat).Schedule(jobs)
	if err != nil {
		return err
	}

	var done []*accscore.Job
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		done = append(done, res.Job.(*accscore.Job))
	}
	scoresFname := filepath.Join(p.OutputDir, "sasascore.tsv")
	violFname := filepath.Join(p.OutputDir, "violations.tsv")
	if err := accscore.WriteScores(done, scoresFname, violFname); err != nil {
		return err
	}
	log.WithFields(log.Fields{"jobs": len(results), "failed": failed}).Info("Accessibility scoring finished")
	if failed > 0 {
		return errors.Errorf("%d of %d accscore jobs failed", failed, len(results))
	}
	return nil
}
