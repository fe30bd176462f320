package audit

import (
	"fmt"
	"math"
	"strings"

	"BlogAuditor/internal/domain"
)

// Evaluate applies the fixed editorial rule set to one analysis result.
// Outcomes are returned in rule order; no rule depends on another's verdict.
// An empty body fails every rule so the report builder can collapse the run
// into a single no_content issue.
func Evaluate(cfg Config, res domain.AnalysisResult, summary string) []domain.RuleOutcome {
	if res.Empty() {
		return emptyContentOutcomes()
	}

	outcomes := []domain.RuleOutcome{
		{
			Rule:     domain.RuleWordCountFloor,
			Blocking: true,
			Pass:     res.WordCount >= cfg.MinWords,
			Message:  fmt.Sprintf("%d words (minimum %d)", res.WordCount, cfg.MinWords),
		},
		{
			Rule:     domain.RuleImageCountFloor,
			Blocking: true,
			Pass:     res.ImageCount >= cfg.MinImages,
			Message:  fmt.Sprintf("%d images (minimum %d)", res.ImageCount, cfg.MinImages),
		},
		{
			Rule:     domain.RuleHasValuedImage,
			Blocking: true,
			Pass:     res.ValuedImageCount >= 1,
			Message:  fmt.Sprintf("%d images from trusted hosts", res.ValuedImageCount),
		},
		{
			Rule:     domain.RuleNoGenericPhrases,
			Blocking: true,
			Pass:     len(res.GenericFound) == 0,
			Message:  genericMessage(res.GenericFound),
		},
		{
			Rule:     domain.RuleTopicInOpening,
			Blocking: false,
			Pass:     onTopic(res.FirstParagraph, res.TopicKeywords),
			Message:  topicMessage("opening", res.FirstParagraph, res.TopicKeywords),
		},
		{
			Rule:     domain.RuleTopicInClosing,
			Blocking: true,
			Pass:     onTopic(res.LastParagraph, res.TopicKeywords),
			Message:  topicMessage("closing", res.LastParagraph, res.TopicKeywords),
		},
		{
			Rule:     domain.RuleHasMetaDescription,
			Blocking: false,
			Pass:     strings.TrimSpace(summary) != "",
			Message:  "meta description presence",
		},
		{
			Rule:     domain.RuleHasSourcesSection,
			Blocking: true,
			Pass:     hasSourcesSection(cfg, res),
			Message:  fmt.Sprintf("%d outbound links, %d headings scanned for citations", len(res.OutboundLinks), len(res.Headings)),
		},
		{
			Rule:     domain.RuleNoBannedYears,
			Blocking: true,
			Pass:     len(res.YearTokens) == 0,
			Message:  yearMessage(res.YearTokens),
		},
	}

	return outcomes
}

// Score maps blocking outcomes onto the 0-10 scale. Each blocking rule
// contributes equally; advisory rules never move the score.
func Score(outcomes []domain.RuleOutcome) float64 {
	var total, passed int
	for _, o := range outcomes {
		if !o.Blocking {
			continue
		}
		total++
		if o.Pass {
			passed++
		}
	}
	if total == 0 {
		return 0
	}
	return math.Round(10*float64(passed)/float64(total)*10) / 10
}

func emptyContentOutcomes() []domain.RuleOutcome {
	rules := []struct {
		rule     domain.Rule
		blocking bool
	}{
		{domain.RuleWordCountFloor, true},
		{domain.RuleImageCountFloor, true},
		{domain.RuleHasValuedImage, true},
		{domain.RuleNoGenericPhrases, true},
		{domain.RuleTopicInOpening, false},
		{domain.RuleTopicInClosing, true},
		{domain.RuleHasMetaDescription, false},
		{domain.RuleHasSourcesSection, true},
		{domain.RuleNoBannedYears, true},
	}

	outcomes := make([]domain.RuleOutcome, 0, len(rules))
	for _, r := range rules {
		outcomes = append(outcomes, domain.RuleOutcome{
			Rule:     r.rule,
			Blocking: r.blocking,
			Pass:     false,
			Message:  "article body is empty",
		})
	}
	return outcomes
}

func onTopic(paragraph string, keywords []string) bool {
	lower := strings.ToLower(paragraph)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func hasSourcesSection(cfg Config, res domain.AnalysisResult) bool {
	for _, heading := range res.Headings {
		lower := strings.ToLower(heading)
		for _, kw := range cfg.SourcesKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return len(res.OutboundLinks) > 0
}

func genericMessage(found []string) string {
	if len(found) == 0 {
		return "no generic phrases"
	}
	return fmt.Sprintf("generic phrases: %s", strings.Join(found, ", "))
}

func topicMessage(position, paragraph string, keywords []string) string {
	if paragraph == "" {
		return fmt.Sprintf("no %s paragraph", position)
	}
	return fmt.Sprintf("%s paragraph checked against keywords %s", position, strings.Join(keywords, ", "))
}

func yearMessage(years []string) string {
	if len(years) == 0 {
		return "no year tokens"
	}
	return fmt.Sprintf("year tokens found: %s", strings.Join(years, ", "))
}
