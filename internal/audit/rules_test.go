package audit

import (
	"fmt"
	"strings"
	"testing"

	"BlogAuditor/internal/domain"
)

func fillerParagraphs(words int) string {
	var sb strings.Builder
	for words > 0 {
		n := words
		if n > 120 {
			n = 120
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.TrimSpace(strings.Repeat("berries simmer gently ", (n+2)/3)))
		sb.WriteString("</p>")
		words -= n
	}
	return sb.String()
}

// shortArticle mirrors the failing concrete scenario: roughly 1,500 words,
// two trusted images, no sources section, on-topic opening and closing.
func shortArticle() domain.Article {
	body := `<p>Elderberry harvesting begins with ripe clusters picked on a dry morning.</p>` +
		`<img src="https://i.pinimg.com/736x/one.jpg"><img src="https://i.pinimg.com/736x/two.jpg">` +
		fillerParagraphs(1460) +
		`<p>Store your finished elderberry syrup in the refrigerator.</p>`

	return domain.Article{
		ID:       "691791954238",
		Title:    "Homemade Elderberry Syrup",
		BodyHTML: body,
		Summary:  "How to make elderberry syrup at home.",
	}
}

// passingArticle extends the same body past every blocking threshold.
func passingArticle() domain.Article {
	art := shortArticle()
	art.BodyHTML = `<p>Elderberry harvesting begins with ripe clusters picked on a dry morning.</p>` +
		`<img src="https://i.pinimg.com/736x/one.jpg"><img src="https://example.org/two.jpg">` +
		`<img src="https://example.org/three.jpg"><img src="https://example.org/four.jpg">` +
		fillerParagraphs(1780) +
		`<h2>Sources &amp; Further Reading</h2>` +
		`<p>Elderberry research: <a href="https://extension.example.edu/elderberry">extension notes</a>, ` +
		`<a href="https://journal.example.org/syrup">syrup study</a>.</p>`
	return art
}

func issueSet(report domain.AuditReport) map[string]bool {
	set := make(map[string]bool, len(report.Issues))
	for _, issue := range report.Issues {
		set[issue] = true
	}
	return set
}

func TestAuditFailingScenario(t *testing.T) {
	t.Parallel()

	report := Audit(DefaultConfig(), shortArticle())

	if report.OverallPass {
		t.Fatalf("expected overall fail")
	}

	issues := issueSet(report)
	for _, want := range []domain.Rule{domain.RuleWordCountFloor, domain.RuleImageCountFloor, domain.RuleHasSourcesSection} {
		if !issues[string(want)] {
			t.Fatalf("expected issue %s, got %v", want, report.Issues)
		}
	}
	for _, pass := range []domain.Rule{domain.RuleNoGenericPhrases, domain.RuleTopicInOpening, domain.RuleTopicInClosing, domain.RuleHasValuedImage, domain.RuleNoBannedYears} {
		if !report.Details[pass].Pass {
			t.Fatalf("expected rule %s to pass: %+v", pass, report.Details[pass])
		}
	}

	// Exactly the three failing blocking codes; advisory rules all pass here.
	if len(report.Issues) != 3 {
		t.Fatalf("expected exactly 3 issues, got %v", report.Issues)
	}
}

func TestAuditPassingScenario(t *testing.T) {
	t.Parallel()

	report := Audit(DefaultConfig(), passingArticle())

	if !report.OverallPass {
		t.Fatalf("expected overall pass, issues: %v", report.Issues)
	}
	if report.Score != 10 {
		t.Fatalf("expected score 10, got %v", report.Score)
	}
}

func TestAuditEmptyContent(t *testing.T) {
	t.Parallel()

	report := Audit(DefaultConfig(), domain.Article{Title: "Title"})

	if report.OverallPass {
		t.Fatalf("empty content must fail")
	}
	if len(report.Issues) != 1 || report.Issues[0] != domain.IssueNoContent {
		t.Fatalf("expected collapsed no_content issue, got %v", report.Issues)
	}
	if report.Score != 0 {
		t.Fatalf("expected score 0, got %v", report.Score)
	}
}

func TestScoreMonotonic(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	art := passingArticle()
	outcomes := Evaluate(cfg, Analyze(cfg, art.BodyHTML, art.Title), art.Summary)

	base := Score(outcomes)
	for i, o := range outcomes {
		if !o.Blocking || !o.Pass {
			continue
		}
		flipped := make([]domain.RuleOutcome, len(outcomes))
		copy(flipped, outcomes)
		flipped[i].Pass = false
		if got := Score(flipped); got > base {
			t.Fatalf("flipping %s to fail raised score from %v to %v", o.Rule, base, got)
		}
	}
}

func TestScoreScale(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		passed, total int
		want          float64
	}{
		{7, 7, 10},
		{0, 7, 0},
		{5, 7, 7.1},
	} {
		outcomes := make([]domain.RuleOutcome, 0, tc.total)
		for i := 0; i < tc.total; i++ {
			outcomes = append(outcomes, domain.RuleOutcome{
				Rule:     domain.Rule(fmt.Sprintf("rule_%d", i)),
				Blocking: true,
				Pass:     i < tc.passed,
			})
		}
		if got := Score(outcomes); got != tc.want {
			t.Fatalf("score(%d/%d) = %v, want %v", tc.passed, tc.total, got, tc.want)
		}
	}
}

func TestAdvisoryRulesNeverBlock(t *testing.T) {
	t.Parallel()

	art := passingArticle()
	art.Summary = "" // advisory has_meta_description fails

	report := Audit(DefaultConfig(), art)
	if !report.OverallPass {
		t.Fatalf("advisory failure must not block overall pass: %v", report.Issues)
	}
	if report.Score != 10 {
		t.Fatalf("advisory failure must not reduce score, got %v", report.Score)
	}

	issues := issueSet(report)
	if !issues[string(domain.RuleHasMetaDescription)] {
		t.Fatalf("advisory failure must still appear as an issue: %v", report.Issues)
	}
}
