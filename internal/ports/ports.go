package ports

import (
	"context"
	"errors"

	"BlogAuditor/internal/domain"
)

// ErrArticleNotFound is returned by sources when an identifier is unknown.
var ErrArticleNotFound = errors.New("article not found")

// ArticleSource retrieves published articles for auditing.
type ArticleSource interface {
	Fetch(ctx context.Context, id string) (domain.Article, error)
	List(ctx context.Context) ([]domain.Article, error)
}

// ArticleUpdater applies a partial field set back to the platform. Only the
// remediation side uses it; the audit engine never mutates articles.
type ArticleUpdater interface {
	Update(ctx context.Context, id string, update domain.ArticleUpdate) error
}

// Rewriter produces a revised body for an article that failed the gate. It is
// the only non-deterministic collaborator and therefore lives behind this
// interface so audit tests stay deterministic.
type Rewriter interface {
	Rewrite(ctx context.Context, article domain.Article, instructions string) (string, error)
}

// Notifier publishes run summaries to an external channel.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// QueueStore persists remediation queue items as one durable document.
type QueueStore interface {
	Upsert(id, title string, report domain.AuditReport) error
	MarkAttempt(id string, status domain.QueueStatus, lastErr string) error
	MarkDone(id string) error
	Item(id string) (domain.QueueItem, bool, error)
	Items() ([]domain.QueueItem, error)
	Summary() (map[domain.QueueStatus]int, error)
	IncrementRun() (int, error)
}

// ReportHistory records every audit outcome for trend queries and lets the
// pipeline skip articles that already passed.
type ReportHistory interface {
	SaveReport(ctx context.Context, article domain.Article, report domain.AuditReport) error
	RecentlyPassed(ctx context.Context, ids []string) (map[string]bool, error)
}

// Scheduler controls when remediation passes execute.
type Scheduler interface {
	Start(ctx context.Context, job func()) error
	Stop(ctx context.Context) error
}
