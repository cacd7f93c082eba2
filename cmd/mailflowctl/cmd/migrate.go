package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mukheshvadlamudi/MailFlow/pkg/db"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := migrationsDir
		if dir == "" {
			found, err := db.FindMigrationsDir()
			if err != nil {
				return err
			}
			dir = found
		}

		pool, err := db.NewConnection(cfg.DB, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := db.Migrate(cmd.Context(), pool, dir)
		if err != nil {
			return err
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "", "migrations directory (searched for when empty)")
}
