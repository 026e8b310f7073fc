package main

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/prospect"
)

var reportCmd = &cobra.Command{
	Use:   "report <company id or name>",
	Short: "Generate an account analysis report for a researched company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		company, err := lookupCompany(ctx, e.Store, args[0])
		if err != nil {
			return err
		}

		r, err := e.Reports.AccountReport(ctx, company.ID)
		if err != nil {
			return err
		}
		return printJSON(r)
	},
}

// lookupCompany accepts either a numeric store ID or a company name.
func lookupCompany(ctx context.Context, store prospect.Store, ref string) (*prospect.Company, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return store.GetCompany(ctx, id)
	}

	company, err := store.GetCompanyByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, eris.Errorf("company not found: %s", ref)
	}
	return company, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
