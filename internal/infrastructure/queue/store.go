package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

// ErrItemNotFound is returned when a transition references an unknown article.
var ErrItemNotFound = errors.New("queue item not found")

const documentVersion = 1

// document is the single durable record set holding every queue item plus the
// run bookkeeping. Items are only appended or updated, never removed.
type document struct {
	Version    int                `json:"version"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	RunCounter int                `json:"run_counter"`
	Items      []domain.QueueItem `json:"items"`
}

// Store persists the remediation queue as one JSON document. Writes go to a
// temp file and rename into place; an advisory flock guards the
// read-modify-write cycle against a second process on the same file.
type Store struct {
	path string
	lock *flock.Flock
	now  func() time.Time
}

var _ ports.QueueStore = (*Store)(nil)

// NewStore wires a store for the given document path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}
}

// Upsert creates a pending item for a failed article or refreshes the missing
// categories of an existing one. Status and attempts belong to the fixer and
// are never touched on refresh.
func (s *Store) Upsert(id, title string, report domain.AuditReport) error {
	return s.update(func(doc *document) error {
		now := s.now().UTC()
		for i := range doc.Items {
			if doc.Items[i].ID != id {
				continue
			}
			doc.Items[i].Missing = append([]string(nil), report.Issues...)
			doc.Items[i].UpdatedAt = now
			if title != "" {
				doc.Items[i].Title = title
			}
			return nil
		}

		doc.Items = append(doc.Items, domain.QueueItem{
			ID:        id,
			Title:     title,
			Status:    domain.StatusPending,
			Attempts:  0,
			Missing:   append([]string(nil), report.Issues...),
			CreatedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
}

// MarkAttempt records one fix attempt: increments the counter and stores the
// status and error the caller reports. The store never transitions on its own.
func (s *Store) MarkAttempt(id string, status domain.QueueStatus, lastErr string) error {
	if !domain.ValidQueueStatus(status) {
		return fmt.Errorf("invalid queue status %q", status)
	}

	return s.update(func(doc *document) error {
		item := findItem(doc, id)
		if item == nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		item.Attempts++
		item.Status = status
		item.LastError = lastErr
		item.UpdatedAt = s.now().UTC()
		return nil
	})
}

// MarkDone transitions an item to done after a passing re-audit.
func (s *Store) MarkDone(id string) error {
	return s.update(func(doc *document) error {
		item := findItem(doc, id)
		if item == nil {
			return fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		item.Status = domain.StatusDone
		item.LastError = ""
		item.UpdatedAt = s.now().UTC()
		return nil
	})
}

// Item returns a single queue item by article identifier.
func (s *Store) Item(id string) (domain.QueueItem, bool, error) {
	doc, err := s.load()
	if err != nil {
		return domain.QueueItem{}, false, err
	}
	for _, item := range doc.Items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return domain.QueueItem{}, false, nil
}

// Items returns every queue item in insertion order.
func (s *Store) Items() ([]domain.QueueItem, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]domain.QueueItem(nil), doc.Items...), nil
}

// Summary returns per-status counts over the whole document.
func (s *Store) Summary() (map[domain.QueueStatus]int, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.QueueStatus]int)
	for _, item := range doc.Items {
		counts[item.Status]++
	}
	return counts, nil
}

// IncrementRun bumps the run counter once per full queue-processing pass and
// returns the new value.
func (s *Store) IncrementRun() (int, error) {
	var counter int
	err := s.update(func(doc *document) error {
		doc.RunCounter++
		counter = doc.RunCounter
		return nil
	})
	return counter, err
}

func findItem(doc *document, id string) *domain.QueueItem {
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			return &doc.Items[i]
		}
	}
	return nil
}

func (s *Store) update(mutate func(*document) error) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire queue lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	doc, err := s.read()
	if err != nil {
		return err
	}

	if err := mutate(doc); err != nil {
		return err
	}

	doc.UpdatedAt = s.now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = doc.UpdatedAt
	}

	return s.write(doc)
}

func (s *Store) load() (*document, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("acquire queue lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	return s.read()
}

func (s *Store) read() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &document{Version: documentVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read queue document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse queue document: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = documentVersion
	}
	return &doc, nil
}

func (s *Store) write(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode queue document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".queue-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp document: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace queue document: %w", err)
	}
	return nil
}
