package domain

import "time"

// QueueStatus enumerates the remediation lifecycle of a failed article.
type QueueStatus string

const (
	StatusPending      QueueStatus = "pending"
	StatusRetrying     QueueStatus = "retrying"
	StatusDone         QueueStatus = "done"
	StatusFailed       QueueStatus = "failed"
	StatusManualReview QueueStatus = "manual_review"
)

var queueStatuses = map[QueueStatus]struct{}{
	StatusPending:      {},
	StatusRetrying:     {},
	StatusDone:         {},
	StatusFailed:       {},
	StatusManualReview: {},
}

// ValidQueueStatus reports whether s is a known lifecycle state.
func ValidQueueStatus(s QueueStatus) bool {
	_, ok := queueStatuses[s]
	return ok
}

// Terminal reports whether the fixer should stop touching the item.
func (s QueueStatus) Terminal() bool {
	return s == StatusDone || s == StatusManualReview
}

// QueueItem is one persisted remediation record. Items are only ever appended
// or updated, giving an audit trail inside a single stored document.
type QueueItem struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Status    QueueStatus `json:"status"`
	Attempts  int         `json:"attempts"`
	LastError string      `json:"last_error,omitempty"`
	Missing   []string    `json:"missing"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
