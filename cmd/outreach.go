package main

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/prospect"
)

var outreachEmail string

var outreachCmd = &cobra.Command{
	Use:   "outreach <company id or name>",
	Short: "Draft personalized outreach emails for a company's contacts",
	Long:  "Drafts an email for the contact given by --email, or for every stored contact at the company when the flag is omitted.",
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

		var targets []prospect.Contact
		if outreachEmail != "" {
			contact, err := e.Store.GetContactByEmail(ctx, company.ID, outreachEmail)
			if err != nil {
				return eris.Wrap(err, "load contact")
			}
			if contact == nil {
				return eris.Errorf("contact not found: %s", outreachEmail)
			}
			targets = []prospect.Contact{*contact}
		} else {
			targets, err = e.Store.ListContacts(ctx, company.ID)
			if err != nil {
				return eris.Wrap(err, "list contacts")
			}
			if len(targets) == 0 {
				return eris.Errorf("no contacts stored for %s", company.Name)
			}
			// Primary contacts first.
			sort.SliceStable(targets, func(i, j int) bool {
				return prospect.ContactPriorityRank(targets[i].Priority) < prospect.ContactPriorityRank(targets[j].Priority)
			})
		}

		drafts := make([]any, 0, len(targets))
		var failures []string
		for i := range targets {
			draft, err := e.Drafter.DraftEmail(ctx, company, &targets[i])
			if err != nil {
				failures = append(failures, targets[i].DisplayName())
				continue
			}
			drafts = append(drafts, draft)
		}

		if err := printJSON(drafts); err != nil {
			return err
		}
		if len(failures) > 0 {
			return eris.Errorf("failed to draft for: %s", strings.Join(failures, ", "))
		}
		return nil
	},
}

func init() {
	outreachCmd.Flags().StringVar(&outreachEmail, "email", "", "draft only for the contact with this email")
	rootCmd.AddCommand(outreachCmd)
}
