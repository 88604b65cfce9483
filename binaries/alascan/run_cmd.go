package main

import (
	"github.com/spf13/cobra"

	"github.com/structbio/alascan/aggregate"
	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/config"
	"github.com/structbio/alascan/workflow"
)

func newRunCmd() *cobra.Command {
	var paramsFile, mode string
	var ncores int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full workflow: scan, aggregate, and accessibility scoring when configured",
		RunE: func(*cobra.Command, []string) error {
			p, err := config.Load(paramsFile)
			if err != nil {
				return err
			}
			applyOverrides(p, mode, ncores)
			return runWorkflow(p)
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", "params.yaml", "YAML parameter file")
	cmd.Flags().StringVar(&mode, "mode", "", "override the configured execution mode (local|mpi)")
	cmd.Flags().IntVar(&ncores, "ncores", 0, "override the configured core count")
	return cmd
}

// runWorkflow chains the stages in numbered step directories under the
// configured output directory. Each stage writes into its own directory; the
// aggregation stage reads the scan stage's results.
func runWorkflow(p *config.Params) error {
	scanDir := ""
	steps := []workflow.Step{
		{Name: "alascan", Run: func(workdir string) error {
			scanDir = workdir
			sp := *p
			sp.OutputDir = workdir
			return runScan(&sp)
		}},
		{Name: "aggregate", Run: func(workdir string) error {
			stat := stats.DefaultStatsReceiver().Scope("alascan")
			clusters, err := aggregate.Clusters(p.ModelStructures(), scanDir, stat)
			if err != nil {
				return err
			}
			_, err = aggregate.WriteSummaries(clusters, workdir)
			return err
		}},
	}
	if len(p.BuriedResidues) > 0 || len(p.AccessibleResidues) > 0 {
		steps = append(steps, workflow.Step{Name: "sasascore", Run: func(workdir string) error {
			sp := *p
			sp.OutputDir = workdir
			return runAccScore(&sp)
		}})
	}
	return workflow.New(steps...).Run(p.OutputDir)
}
