package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"BlogAuditor/internal/domain"
)

// statusOrder fixes table ordering so repeated invocations render the same.
var statusOrder = []domain.QueueStatus{
	domain.StatusPending,
	domain.StatusRetrying,
	domain.StatusDone,
	domain.StatusFailed,
	domain.StatusManualReview,
}

func newQueueCommand(configFlag *string) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the remediation queue",
	}

	queueCmd.AddCommand(newQueueStatusCommand(configFlag))
	queueCmd.AddCommand(newQueueListCommand(configFlag))

	return queueCmd
}

func newQueueStatusCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show item counts per queue status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(configFlag)
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.Queue().Summary()
			if err != nil {
				return err
			}

			total := 0
			rows := make([][]string, 0, len(summary))
			for _, status := range statusOrder {
				count := summary[status]
				if count == 0 {
					continue
				}
				total += count
				rows = append(rows, []string{string(status), strconv.Itoa(count)})
			}
			if total == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
				return nil
			}
			rows = append(rows, []string{"total", strconv.Itoa(total)})

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Status", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newQueueListCommand(configFlag *string) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(configFlag)
			if err != nil {
				return err
			}
			defer application.Close()

			items, err := application.Queue().Items()
			if err != nil {
				return err
			}

			if statusFilter != "" {
				wanted := domain.QueueStatus(statusFilter)
				if !domain.ValidQueueStatus(wanted) {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				filtered := items[:0]
				for _, item := range items {
					if item.Status == wanted {
						filtered = append(filtered, item)
					}
				}
				items = filtered
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
				return nil
			}

			sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					item.ID,
					item.Title,
					string(item.Status),
					strconv.Itoa(item.Attempts),
					strings.Join(item.Missing, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Status", "Attempts", "Missing"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show items with this status")

	return cmd
}
