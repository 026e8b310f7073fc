package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run <company name>",
	Short: "Research a single company and persist the results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		outcome := e.Pipeline.Run(ctx, args[0])
		if outcome.Failed() {
			zap.L().Error("research failed",
				zap.String("company", outcome.Name),
				zap.String("error", outcome.Error),
			)
			return eris.Errorf("research failed for %s: %s", outcome.Name, outcome.Error)
		}

		return printJSON(outcome)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode output")
	}
	return nil
}

// summarize reduces batch outcomes to a log-friendly tally.
func summarize(outcomes []model.Outcome) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}

func init() {
	rootCmd.AddCommand(runCmd)
}
