// Package prompt finds the active template for a purpose and renders the
// prompts sent to the generation provider.
package prompt

import (
	"context"

	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
)

// Store looks up the most recently updated active template of a type.
// It returns nil, nil when none exists.
type Store interface {
	FindActiveByType(ctx context.Context, promptType string) (*model.PromptTemplate, error)
}

// NoGeneration is returned by Cache.Get when the cache cannot be read; Set
// ignores it.
const NoGeneration int64 = -1

// Cache is an optional read-through cache in front of Store. Get reports the
// purpose's current generation even on a miss. Set stores under that
// generation, so an entry read from the store before an Invalidate is never
// served after it.
type Cache interface {
	Get(ctx context.Context, purpose string) (*model.PromptTemplate, int64, bool)
	Set(ctx context.Context, purpose string, gen int64, t *model.PromptTemplate)
	Invalidate(ctx context.Context, purposes ...string)
}

type Resolver struct {
	store  Store
	cache  Cache
	logger *zap.Logger
}

// NewResolver creates a resolver. cache may be nil.
func NewResolver(store Store, cache Cache, log *zap.Logger) *Resolver {
	return &Resolver{store: store, cache: cache, logger: log}
}

// Resolve returns the active template for purpose, or nil when there is none.
func (r *Resolver) Resolve(ctx context.Context, purpose string) (*model.PromptTemplate, error) {
	gen := NoGeneration
	if r.cache != nil {
		t, g, ok := r.cache.Get(ctx, purpose)
		if ok {
			return t, nil
		}
		gen = g
	}

	t, err := r.store.FindActiveByType(ctx, purpose)
	if err != nil {
		return nil, err
	}
	if t != nil && r.cache != nil {
		r.cache.Set(ctx, purpose, gen, t)
	}
	return t, nil
}

// ContentOrDefault returns the active template content and true, or the
// built-in default and false. Store errors are logged and treated as a miss.
func (r *Resolver) ContentOrDefault(ctx context.Context, purpose string) (string, bool) {
	t, err := r.Resolve(ctx, purpose)
	if err != nil {
		logger.WithTrace(ctx, r.logger).Warn("Prompt lookup failed, using built-in default",
			zap.String("purpose", purpose),
			zap.Error(err),
		)
		return Default(purpose), false
	}
	if t == nil {
		return Default(purpose), false
	}
	return t.Content, true
}

// Invalidate drops cached templates for the given purposes.
func (r *Resolver) Invalidate(ctx context.Context, purposes ...string) {
	if r.cache != nil && len(purposes) > 0 {
		r.cache.Invalidate(ctx, purposes...)
	}
}
