package remedy

import (
	"context"
	"fmt"
	"strings"

	"BlogAuditor/internal/audit"
	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

const summaryMaxLen = 160

// RewriteFixer repairs one text category by asking the rewrite service for a
// revised body. One instance is registered per issue code it handles.
type RewriteFixer struct {
	code         string
	instructions string
	rewriter     ports.Rewriter
}

var _ Fixer = (*RewriteFixer)(nil)

// NewRewriteFixer binds an issue code and its rewrite instructions.
func NewRewriteFixer(code, instructions string, rewriter ports.Rewriter) *RewriteFixer {
	return &RewriteFixer{code: code, instructions: instructions, rewriter: rewriter}
}

// Name identifies the issue code this fixer handles.
func (f *RewriteFixer) Name() string {
	return f.code
}

// Fix requests a revised body and returns it as a partial update.
func (f *RewriteFixer) Fix(ctx context.Context, article domain.Article) (domain.ArticleUpdate, error) {
	if f.rewriter == nil {
		return domain.ArticleUpdate{}, fmt.Errorf("fixer %s: no rewriter configured", f.code)
	}

	body, err := f.rewriter.Rewrite(ctx, article, f.instructions)
	if err != nil {
		return domain.ArticleUpdate{}, fmt.Errorf("fixer %s: %w", f.code, err)
	}
	return domain.ArticleUpdate{BodyHTML: &body}, nil
}

// SummaryFixer derives a meta description from the opening paragraph. It is
// fully deterministic and needs no external service.
type SummaryFixer struct {
	cfg audit.Config
}

var _ Fixer = (*SummaryFixer)(nil)

// NewSummaryFixer wires the analyzer configuration.
func NewSummaryFixer(cfg audit.Config) *SummaryFixer {
	return &SummaryFixer{cfg: cfg}
}

// Name identifies the issue code this fixer handles.
func (f *SummaryFixer) Name() string {
	return string(domain.RuleHasMetaDescription)
}

// Fix builds a summary from the first paragraph, truncated on a word boundary.
func (f *SummaryFixer) Fix(ctx context.Context, article domain.Article) (domain.ArticleUpdate, error) {
	res := audit.Analyze(f.cfg, article.BodyHTML, article.Title)
	paragraph := strings.TrimSpace(res.FirstParagraph)
	if paragraph == "" {
		return domain.ArticleUpdate{}, fmt.Errorf("fixer %s: article has no opening paragraph", f.Name())
	}

	summary := truncateWords(paragraph, summaryMaxLen)
	return domain.ArticleUpdate{Summary: &summary}, nil
}

func truncateWords(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

// DefaultRegistry wires the standard fixer set: rewrite-backed fixers for the
// text categories and the deterministic summary fixer. Image categories stay
// unregistered here; they require the image pipeline and fall through to
// manual review.
func DefaultRegistry(cfg audit.Config, rewriter ports.Rewriter) *Registry {
	reg := NewRegistry()

	rewriteInstructions := map[domain.Rule]string{
		domain.RuleWordCountFloor:    fmt.Sprintf("Expand the article with substantive detail until it exceeds %d words. Do not pad with filler.", cfg.MinWords),
		domain.RuleNoGenericPhrases:  "Remove boilerplate phrases (e.g. comprehensive guide, in conclusion, let's dive) and replace them with specific statements.",
		domain.RuleTopicInOpening:    "Rewrite the opening paragraph so it names the article's topic directly.",
		domain.RuleTopicInClosing:    "Rewrite the closing paragraph so it returns to the article's topic.",
		domain.RuleHasSourcesSection: "Append a Sources section with outbound links to reputable references already implied by the text.",
		domain.RuleNoBannedYears:     "Remove year numbers from the text; make every statement evergreen.",
	}
	for rule, instructions := range rewriteInstructions {
		reg.Register(NewRewriteFixer(string(rule), instructions, rewriter))
	}

	reg.Register(NewSummaryFixer(cfg))
	return reg
}
