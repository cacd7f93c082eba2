package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/app"
	"github.com/mukheshvadlamudi/MailFlow/pkg/config"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
)

var (
	cfgPath string
	cfg     *config.Config
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mailflowctl",
	Short: "Operate the MailFlow email assistant",
	Long: `mailflowctl runs maintenance tasks against the MailFlow database:
schema migration, demo data seeding and inbox processing.

Configuration is read from config.yaml (or --config) and environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		log = logger.NewLogger(cfg.Log.Level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default config.yaml or $CONFIG_PATH)")
	rootCmd.AddCommand(migrateCmd, seedCmd, processCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// openApp builds the application from the loaded configuration.
func openApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), cfg, log)
}
