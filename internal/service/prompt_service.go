package service

import (
	"context"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type PromptStore interface {
	List(ctx context.Context) ([]model.PromptTemplate, error)
	GetByID(ctx context.Context, id int64) (*model.PromptTemplate, error)
	Create(ctx context.Context, name, promptType, content string, isActive bool) (*model.PromptTemplate, error)
	Update(ctx context.Context, id int64, patch model.PromptPatch) (*model.PromptTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// PromptInvalidator drops cached templates after a write.
type PromptInvalidator interface {
	Invalidate(ctx context.Context, purposes ...string)
}

// PromptService is prompt template CRUD that keeps the resolver cache fresh.
type PromptService struct {
	store PromptStore
	cache PromptInvalidator
}

func NewPromptService(store PromptStore, cache PromptInvalidator) *PromptService {
	return &PromptService{store: store, cache: cache}
}

func (s *PromptService) List(ctx context.Context) ([]model.PromptTemplate, error) {
	return s.store.List(ctx)
}

func (s *PromptService) Get(ctx context.Context, id int64) (*model.PromptTemplate, error) {
	return s.store.GetByID(ctx, id)
}

func (s *PromptService) Create(ctx context.Context, name, promptType, content string, isActive bool) (*model.PromptTemplate, error) {
	p, err := s.store.Create(ctx, name, promptType, content, isActive)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, p.Type)
	return p, nil
}

func (s *PromptService) Update(ctx context.Context, id int64, patch model.PromptPatch) (*model.PromptTemplate, error) {
	before, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	// a type change affects both the old and the new purpose
	s.cache.Invalidate(ctx, before.Type, p.Type)
	return p, nil
}

func (s *PromptService) Delete(ctx context.Context, id int64) error {
	before, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, before.Type)
	return nil
}
