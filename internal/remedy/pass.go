package remedy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"BlogAuditor/internal/audit"
	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

// ProcessorDeps wires the collaborators of a remediation pass.
type ProcessorDeps struct {
	Store       ports.QueueStore
	Source      ports.ArticleSource
	Updater     ports.ArticleUpdater
	Registry    *Registry
	AuditConfig audit.Config
	MaxAttempts int
	Logger      *slog.Logger
}

// Processor drains the remediation queue: for each eligible item it applies
// the registered fixers, pushes updates, re-audits, and records the outcome.
// The processor itself never retries; backoff is the queue's attempt
// bookkeeping plus the next scheduled pass.
type Processor struct {
	store       ports.QueueStore
	source      ports.ArticleSource
	updater     ports.ArticleUpdater
	registry    *Registry
	auditCfg    audit.Config
	maxAttempts int
	logger      *slog.Logger
}

// PassSummary aggregates one full queue-processing pass.
type PassSummary struct {
	RunCounter   int
	Processed    int
	Fixed        int
	Retried      int
	ManualReview int
}

// NewProcessor constructs the queue processor.
func NewProcessor(deps ProcessorDeps) *Processor {
	maxAttempts := deps.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Processor{
		store:       deps.Store,
		source:      deps.Source,
		updater:     deps.Updater,
		registry:    deps.Registry,
		auditCfg:    deps.AuditConfig,
		maxAttempts: maxAttempts,
		logger:      deps.Logger,
	}
}

// Run executes one pass over every eligible queue item. Persistence failures
// abort the pass and propagate; per-article fix failures only mark the item.
func (p *Processor) Run(ctx context.Context) (PassSummary, error) {
	var summary PassSummary

	items, err := p.store.Items()
	if err != nil {
		return summary, fmt.Errorf("load queue: %w", err)
	}

	for _, item := range items {
		if item.Status.Terminal() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Processed++
		outcome, err := p.processItem(ctx, item)
		if err != nil {
			return summary, err
		}
		switch outcome {
		case domain.StatusDone:
			summary.Fixed++
		case domain.StatusManualReview:
			summary.ManualReview++
		default:
			summary.Retried++
		}
	}

	counter, err := p.store.IncrementRun()
	if err != nil {
		return summary, fmt.Errorf("record run: %w", err)
	}
	summary.RunCounter = counter

	p.debug("remediation pass complete",
		"run", summary.RunCounter,
		"processed", summary.Processed,
		"fixed", summary.Fixed,
		"retried", summary.Retried,
		"manual_review", summary.ManualReview)
	return summary, nil
}

func (p *Processor) processItem(ctx context.Context, item domain.QueueItem) (domain.QueueStatus, error) {
	// The cap check runs before any work: the store only records what we
	// tell it, so exceeding items are parked here.
	if item.Attempts >= p.maxAttempts {
		return domain.StatusManualReview, p.store.MarkAttempt(item.ID, domain.StatusManualReview,
			fmt.Sprintf("attempt cap %d reached", p.maxAttempts))
	}

	article, err := p.source.Fetch(ctx, item.ID)
	if errors.Is(err, ports.ErrArticleNotFound) {
		return domain.StatusManualReview, p.store.MarkAttempt(item.ID, domain.StatusManualReview, err.Error())
	}
	if err != nil {
		return domain.StatusRetrying, p.store.MarkAttempt(item.ID, domain.StatusRetrying, err.Error())
	}

	fixable := false
	for _, code := range item.Missing {
		if p.registry.Known(code) {
			fixable = true
			break
		}
	}
	if !fixable {
		return domain.StatusManualReview, p.store.MarkAttempt(item.ID, domain.StatusManualReview,
			fmt.Sprintf("no fixer for categories: %s", strings.Join(item.Missing, ", ")))
	}

	for _, code := range item.Missing {
		fixer, err := p.registry.Resolve(code)
		if err != nil {
			continue
		}

		update, err := fixer.Fix(ctx, article)
		if err != nil {
			p.debug("fix failed", "article", item.ID, "category", code, "error", err)
			return domain.StatusRetrying, p.store.MarkAttempt(item.ID, domain.StatusRetrying, err.Error())
		}

		if err := p.updater.Update(ctx, item.ID, update); err != nil {
			return domain.StatusRetrying, p.store.MarkAttempt(item.ID, domain.StatusRetrying, err.Error())
		}
		applyUpdate(&article, update)
	}

	report := audit.Audit(p.auditCfg, article)
	if report.OverallPass {
		return domain.StatusDone, p.store.MarkDone(item.ID)
	}

	// Still failing after the fixers ran: refresh the missing categories so
	// the next pass works on the current gaps.
	if err := p.store.Upsert(item.ID, article.Title, report); err != nil {
		return domain.StatusRetrying, err
	}
	return domain.StatusRetrying, p.store.MarkAttempt(item.ID, domain.StatusRetrying,
		fmt.Sprintf("still failing: %s", strings.Join(report.Issues, ", ")))
}

func applyUpdate(article *domain.Article, update domain.ArticleUpdate) {
	if update.BodyHTML != nil {
		article.BodyHTML = *update.BodyHTML
	}
	if update.Summary != nil {
		article.Summary = *update.Summary
	}
	if update.FeaturedImage != nil {
		article.FeaturedImage = *update.FeaturedImage
	}
}

func (p *Processor) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
