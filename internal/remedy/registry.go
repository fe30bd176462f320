package remedy

import (
	"context"
	"fmt"

	"BlogAuditor/internal/domain"
)

// Fixer repairs one failing audit category and returns the partial update to
// push back to the platform.
type Fixer interface {
	Name() string
	Fix(ctx context.Context, article domain.Article) (domain.ArticleUpdate, error)
}

// Registry keeps a mapping from issue codes to their fixer implementations.
type Registry struct {
	fixers map[string]Fixer
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fixers: map[string]Fixer{}}
}

// Register adds or replaces a fixer implementation.
func (r *Registry) Register(fixer Fixer) {
	if r.fixers == nil {
		r.fixers = map[string]Fixer{}
	}
	r.fixers[fixer.Name()] = fixer
}

// Resolve returns a fixer by issue code or an error if none is registered.
func (r *Registry) Resolve(code string) (Fixer, error) {
	if fixer, ok := r.fixers[code]; ok {
		return fixer, nil
	}
	return nil, fmt.Errorf("no fixer registered for %s", code)
}

// Known reports whether any fixer handles the given issue code.
func (r *Registry) Known(code string) bool {
	_, ok := r.fixers[code]
	return ok
}
