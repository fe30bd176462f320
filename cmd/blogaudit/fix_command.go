package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFixCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fix",
		Short: "Run a single remediation pass over the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(configFlag)
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.Processor().Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Pass %d: processed %d, fixed %d, retried %d, manual review %d\n",
				summary.RunCounter, summary.Processed, summary.Fixed, summary.Retried, summary.ManualReview)
			return nil
		},
	}
}
