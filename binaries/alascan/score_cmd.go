package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/structbio/alascan/scorer"
)

func newScoreCmd() *cobra.Command {
	var runDir, bin string
	cmd := &cobra.Command{
		Use:   "score [structure.pdb]",
		Short: "Score a single structure with the external scoring binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s := scorer.New(bin, nil, nil)
			en, err := s.Calc(args[0], runDir)
			if err != nil {
				return errors.Wrapf(err, "scoring %s", args[0])
			}
			fmt.Printf("score=%.3f vdw=%.3f elec=%.3f desolv=%.3f bsa=%.3f\n",
				en.Score, en.Vdw, en.Elec, en.Desolv, en.Bsa)
			return nil
		},
	}
	cmd.Flags().StringVar(&runDir, "run_dir", "scorer-run", "scratch directory for the scoring binary")
	cmd.Flags().StringVar(&bin, "scorer_bin", scorer.DefaultBin, "scoring executable")
	return cmd
}
