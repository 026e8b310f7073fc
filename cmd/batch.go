package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch [company name ...]",
	Short: "Research multiple companies concurrently",
	Long:  "Researches every named company with bounded concurrency. Names come from arguments, or one per line from --file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		names := args
		if batchFile != "" {
			fromFile, err := readNames(batchFile)
			if err != nil {
				return err
			}
			names = append(names, fromFile...)
		}
		if len(names) == 0 {
			return eris.New("no company names given")
		}

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		outcomes := e.Pipeline.RunBatch(ctx, names)
		succeeded, failed := summarize(outcomes)
		zap.L().Info("batch complete",
			zap.Int("succeeded", succeeded),
			zap.Int("failed", failed),
		)

		return printJSON(outcomes)
	},
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return names, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with one company name per line")
	rootCmd.AddCommand(batchCmd)
}
