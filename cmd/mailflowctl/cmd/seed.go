package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mukheshvadlamudi/MailFlow/internal/seed"
	"github.com/mukheshvadlamudi/MailFlow/pkg/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all emails with the demo inbox",
	Long: `Delete every stored email (with its action items and drafts) and insert
the demo inbox. The default prompt templates are added only when no template
exists yet, so edited templates survive a reseed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := db.NewConnection(cfg.DB, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		res, err := seed.NewSeeder(pool, log).Run(cmd.Context(), seed.SampleEmails, seed.DefaultPrompts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d sample emails\n", res.Emails)
		if res.Prompts > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d prompts\n", res.Prompts)
		}
		return nil
	},
}
