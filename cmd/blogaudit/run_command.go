package main

import (
	"github.com/spf13/cobra"
)

func newRunCommand(configFlag *string) *cobra.Command {
	var daemon bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Audit every exported article, then run one remediation pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(configFlag)
			if err != nil {
				return err
			}
			defer application.Close()

			if daemon {
				// The daemon scheduler fires its first remediation pass
				// immediately, so only the audit pass runs up front here.
				if _, err := application.Pipeline().Run(cmd.Context()); err != nil {
					return err
				}
				return application.RunDaemon(cmd.Context())
			}
			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&daemon, "daemon", false, "Keep running remediation passes on the configured interval")

	return cmd
}
