package main

import (
	"github.com/spf13/cobra"

	"BlogAuditor/internal/app"
	"BlogAuditor/internal/config"
	"BlogAuditor/internal/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "blogaudit",
		Short:         "Audit published blog articles and drive their remediation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newAuditCommand(&configFlag))
	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newQueueCommand(&configFlag))
	rootCmd.AddCommand(newFixCommand(&configFlag))

	return rootCmd
}

// newApplication loads configuration (honoring the --config flag) and wires
// the application graph for one command invocation.
func newApplication(configFlag *string) (*app.Application, error) {
	var cfg config.Config
	if configFlag != nil && *configFlag != "" {
		cfg = config.LoadFrom(*configFlag)
	} else {
		cfg = config.Load()
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	return app.New(cfg, logger)
}
