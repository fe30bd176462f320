package audit

import (
	"BlogAuditor/internal/domain"
)

// BuildReport aggregates rule outcomes into an immutable report. Overall pass
// is the AND of blocking rules; advisory failures still surface as issues.
func BuildReport(outcomes []domain.RuleOutcome) domain.AuditReport {
	report := domain.AuditReport{
		OverallPass: true,
		Score:       Score(outcomes),
		Outcomes:    outcomes,
		Details:     make(map[domain.Rule]domain.RuleOutcome, len(outcomes)),
	}

	for _, o := range outcomes {
		report.Details[o.Rule] = o
		if o.Pass {
			continue
		}
		report.Issues = append(report.Issues, string(o.Rule))
		if o.Blocking {
			report.OverallPass = false
		}
	}

	return report
}

// Audit composes the analyzer, evaluator, and report builder for one article.
// Missing or malformed content never produces an error: an empty body yields
// a failing report whose issue list collapses to the single no_content code.
func Audit(cfg Config, article domain.Article) domain.AuditReport {
	res := Analyze(cfg, article.BodyHTML, article.Title)
	report := BuildReport(Evaluate(cfg, res, article.Summary))
	if res.Empty() {
		report.Issues = []string{domain.IssueNoContent}
	}
	return report
}
