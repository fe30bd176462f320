package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"BlogAuditor/internal/audit"
	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

// PipelineDeps wires all driven adapters into the audit pipeline.
type PipelineDeps struct {
	Source      ports.ArticleSource
	History     ports.ReportHistory
	Queue       ports.QueueStore
	Notifier    ports.Notifier
	AuditConfig audit.Config
	Logger      *slog.Logger
}

// Pipeline implements the audit workflow: fetch, score, record, enqueue.
type Pipeline struct {
	source   ports.ArticleSource
	history  ports.ReportHistory
	queue    ports.QueueStore
	notifier ports.Notifier
	auditCfg audit.Config
	logger   *slog.Logger
}

// RunSummary aggregates one full audit pass for reporting.
type RunSummary struct {
	Audited  int
	Passed   int
	Failed   int
	Enqueued int
	Skipped  int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:   deps.Source,
		history:  deps.History,
		queue:    deps.Queue,
		notifier: deps.Notifier,
		auditCfg: deps.AuditConfig,
		logger:   deps.Logger,
	}
}

// AuditOne fetches and audits a single article. A fetch failure still yields
// a well-formed failing report so callers always have something to act on.
func (p *Pipeline) AuditOne(ctx context.Context, id string) (domain.Article, domain.AuditReport, error) {
	article, err := p.source.Fetch(ctx, id)
	if errors.Is(err, ports.ErrArticleNotFound) {
		p.warn("article unavailable, reporting no_content", "article", id)
		article = domain.Article{ID: id}
		return article, audit.Audit(p.auditCfg, article), nil
	}
	if err != nil {
		return domain.Article{}, domain.AuditReport{}, fmt.Errorf("fetch article %s: %w", id, err)
	}

	return article, audit.Audit(p.auditCfg, article), nil
}

// Run audits every article the source lists, persists each report, and
// enqueues failures for remediation. Persistence failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	articles, err := p.source.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("list articles: %w", err)
	}

	skip := map[string]bool{}
	if p.history != nil && len(articles) > 0 {
		ids := make([]string, len(articles))
		for i, art := range articles {
			ids[i] = art.ID
		}
		skip, err = p.history.RecentlyPassed(ctx, ids)
		if err != nil {
			return summary, fmt.Errorf("load history: %w", err)
		}
	}

	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if skip[article.ID] {
			summary.Skipped++
			continue
		}

		report := audit.Audit(p.auditCfg, article)
		summary.Audited++

		if p.history != nil {
			if err := p.history.SaveReport(ctx, article, report); err != nil {
				return summary, fmt.Errorf("persist report %s: %w", article.ID, err)
			}
		}

		if report.OverallPass {
			summary.Passed++
			continue
		}
		summary.Failed++

		if p.queue != nil {
			if err := p.queue.Upsert(article.ID, article.Title, report); err != nil {
				return summary, fmt.Errorf("enqueue article %s: %w", article.ID, err)
			}
			summary.Enqueued++
		}

		p.debug("article failed audit",
			"article", article.ID,
			"score", report.Score,
			"issues", report.Issues)
	}

	if p.notifier != nil && summary.Audited > 0 {
		if err := p.notifier.PublishSummary(ctx, formatSummary(summary)); err != nil {
			return summary, fmt.Errorf("publish summary: %w", err)
		}
	}

	return summary, nil
}

func formatSummary(s RunSummary) string {
	return fmt.Sprintf("Audit run: %d audited, %d passed, %d failed, %d enqueued, %d skipped",
		s.Audited, s.Passed, s.Failed, s.Enqueued, s.Skipped)
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
