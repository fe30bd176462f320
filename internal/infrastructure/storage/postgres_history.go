package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

// PostgresHistory persists audit reports into Postgres, one row per audit
// call, giving the trend view the one-off scripts never had.
type PostgresHistory struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ReportHistory = (*PostgresHistory)(nil)

// NewPostgresHistory wires a sql.DB implementation.
func NewPostgresHistory(db *sql.DB) *PostgresHistory {
	return &PostgresHistory{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveReport appends the report snapshot for one article.
func (r *PostgresHistory) SaveReport(ctx context.Context, article domain.Article, report domain.AuditReport) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("audit_reports").
		Columns("article_id", "title", "overall_pass", "score", "issues").
		Values(article.ID, article.Title, report.OverallPass, report.Score, pq.StringArray(report.Issues)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// RecentlyPassed returns the subset of ids whose most recent report passed,
// so a batch run can skip articles that are already clean.
func (r *PostgresHistory) RecentlyPassed(ctx context.Context, ids []string) (map[string]bool, error) {
	if r.db == nil || len(ids) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("DISTINCT ON (article_id) article_id", "overall_pass").
		From("audit_reports").
		Where(sq.Expr("article_id = ANY(?)", pq.StringArray(ids))).
		OrderBy("article_id", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		var passed bool
		if err := rows.Scan(&id, &passed); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		if passed {
			result[id] = true
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}
