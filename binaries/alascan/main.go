package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cerrors "github.com/structbio/alascan/common/errors"
	"github.com/structbio/alascan/common/log/hooks"
)

// CLI binary driving the analysis stages.
//	Supported commands: (see "-h" for all options)
//		run --params [params.yaml]
//		scan --params [params.yaml]
//		aggregate --params [params.yaml]
//		accscore --params [params.yaml]
//		score [structure.pdb]
//	Global flags:
//		--log_level [<error|info|debug> level and above should be logged]

func main() {
	log.AddHook(hooks.NewContextHook())

	logLevel := ""
	rootCmd := &cobra.Command{
		Use:   "alascan",
		Short: "alascan runs parallel per-structure scoring analyses and aggregates the results",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if logLevel == "" {
				return nil
			}
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log_level", "", "log everything at this level and above (error|info|debug)")

	rootCmd.AddCommand(newRunCmd(), newScanCmd(), newAggregateCmd(), newAccScoreCmd(), newScoreCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(int(cerrors.CodeOf(err)))
	}
}
