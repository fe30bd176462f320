package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"BlogAuditor/internal/domain"
)

func newAuditCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "audit <article-id> [article-id...]",
		Short: "Audit specific articles and print their reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(configFlag)
			if err != nil {
				return err
			}
			defer application.Close()

			failed := 0
			for _, id := range args {
				article, report, err := application.Pipeline().AuditOne(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("audit %s: %w", id, err)
				}
				printReport(cmd, id, article, report)
				if !report.OverallPass {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d article(s) failed the quality gate", failed)
			}
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, id string, article domain.Article, report domain.AuditReport) {
	title := article.Title
	if title == "" {
		title = "(unknown)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s — %s\n", id, title)

	rows := make([][]string, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		verdict := "pass"
		if !outcome.Pass {
			verdict = "FAIL"
		}
		kind := "blocking"
		if !outcome.Blocking {
			kind = "advisory"
		}
		rows = append(rows, []string{string(outcome.Rule), kind, verdict, outcome.Message})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Rule", "Kind", "Verdict", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))

	status := "PASS"
	if !report.OverallPass {
		status = "FAIL"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Score %.1f/10 — %s\n", report.Score, status)
	if len(report.Issues) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Issues: %s\n", strings.Join(report.Issues, ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
