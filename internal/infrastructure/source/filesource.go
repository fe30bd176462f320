package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"BlogAuditor/internal/domain"
	"BlogAuditor/internal/ports"
)

// FileSource reads article JSON exports from a directory, one file per
// article named <id>.json. The fields mirror the platform export shape, so
// audits run against the same documents the publishing jobs produce.
type FileSource struct {
	dir string
}

var _ ports.ArticleSource = (*FileSource)(nil)

// NewFileSource wires a directory of exported articles.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

type exportedArticle struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	BodyHTML    string      `json:"body_html"`
	SummaryHTML string      `json:"summary_html"`
	Image       *struct {
		Src string `json:"src"`
	} `json:"image"`
	PublishedAt string `json:"published_at"`
}

// Fetch loads one article by identifier.
func (s *FileSource) Fetch(ctx context.Context, id string) (domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return domain.Article{}, err
	}

	article, err := readArticle(filepath.Join(s.dir, id+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return domain.Article{}, fmt.Errorf("%w: %s", ports.ErrArticleNotFound, id)
	}
	if err != nil {
		return domain.Article{}, err
	}
	if article.ID == "" {
		article.ID = id
	}
	return article, nil
}

// List loads every exported article in the directory, ordered by file name.
func (s *FileSource) List(ctx context.Context) ([]domain.Article, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	articles := make([]domain.Article, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		article, err := readArticle(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		if article.ID == "" {
			article.ID = strings.TrimSuffix(name, ".json")
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func readArticle(path string) (domain.Article, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Article{}, err
	}

	var exported exportedArticle
	if err := json.Unmarshal(raw, &exported); err != nil {
		return domain.Article{}, fmt.Errorf("parse article %s: %w", filepath.Base(path), err)
	}

	article := domain.Article{
		ID:       exported.ID.String(),
		Title:    exported.Title,
		BodyHTML: exported.BodyHTML,
		Summary:  exported.SummaryHTML,
	}
	if exported.Image != nil {
		article.FeaturedImage = exported.Image.Src
	}
	if exported.PublishedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, exported.PublishedAt); err == nil {
			article.PublishedAt = parsed
		}
	}
	return article, nil
}
