package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	discoverCount    int
	discoverResearch bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Suggest potential customers for the offerings catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if discoverCount <= 0 {
			return eris.New("--count must be positive")
		}

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		names := e.Finder.FindPotentialCustomers(ctx, discoverCount)
		if !discoverResearch {
			return printJSON(names)
		}

		zap.L().Info("researching discovered companies", zap.Int("count", len(names)))
		outcomes := e.Pipeline.RunBatch(ctx, names)
		succeeded, failed := summarize(outcomes)
		zap.L().Info("discovery research complete",
			zap.Int("succeeded", succeeded),
			zap.Int("failed", failed),
		)

		return printJSON(outcomes)
	},
}

func init() {
	discoverCmd.Flags().IntVar(&discoverCount, "count", 10, "how many companies to suggest")
	discoverCmd.Flags().BoolVar(&discoverResearch, "research", false, "research the suggested companies immediately")
	rootCmd.AddCommand(discoverCmd)
}
