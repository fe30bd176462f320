package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

// FileUpdater writes remediated fields back into the exported JSON files, so a
// later sync job can push them to the platform.
type FileUpdater struct {
	dir string
}

var _ ports.ArticleUpdater = (*FileUpdater)(nil)

// NewFileUpdater wires the same export directory the FileSource reads from.
func NewFileUpdater(dir string) *FileUpdater {
	return &FileUpdater{dir: dir}
}

// Update rewrites the article file with the changed fields applied. Unset
// pointers leave the stored value untouched.
func (u *FileUpdater) Update(ctx context.Context, id string, update domain.ArticleUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(u.dir, id+".json")
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ports.ErrArticleNotFound, id)
	}
	if err != nil {
		return err
	}

	// Decode into a generic map so fields the auditor does not model survive
	// the round trip.
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse article %s: %w", id, err)
	}

	if update.BodyHTML != nil {
		doc["body_html"] = *update.BodyHTML
	}
	if update.Summary != nil {
		doc["summary_html"] = *update.Summary
	}
	if update.FeaturedImage != nil {
		doc["image"] = map[string]any{"src": *update.FeaturedImage}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode article %s: %w", id, err)
	}

	tmp, err := os.CreateTemp(u.dir, id+"-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
