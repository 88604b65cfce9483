package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/structbio/alascan/aggregate"
	"github.com/structbio/alascan/common/stats"
	"github.com/structbio/alascan/config"
)

func newAggregateCmd() *cobra.Command {
	var paramsFile string
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Merge per-structure scan results into per-cluster summaries",
		RunE: func(*cobra.Command, []string) error {
			p, err := config.Load(paramsFile)
			if err != nil {
				return err
			}
			stat := stats.DefaultStatsReceiver().Scope("alascan")
			clusters, err := aggregate.Clusters(p.ModelStructures(), p.OutputDir, stat)
			if err != nil {
				return err
			}
			written, err := aggregate.WriteSummaries(clusters, p.OutputDir)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"clusters": len(clusters), "files": len(written)}).
				Info("Aggregation finished")
			return nil
		},
	}
	cmd.Flags().StringVar(&paramsFile, "params", "params.yaml", "YAML parameter file")
	return cmd
}
