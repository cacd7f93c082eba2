// Package processor categorizes an email and extracts its action items.
package processor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/llm"
	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/internal/parser"
	"github.com/mukheshvadlamudi/MailFlow/internal/prompt"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
	"github.com/mukheshvadlamudi/MailFlow/pkg/metrics"
	"github.com/mukheshvadlamudi/MailFlow/pkg/util"
)

// PromptSource yields template content for a purpose, falling back to a
// built-in default.
type PromptSource interface {
	ContentOrDefault(ctx context.Context, purpose string) (string, bool)
}

// Store loads emails and atomically applies a processing result.
type Store interface {
	GetByID(ctx context.Context, id int64) (*model.Email, error)
	ApplyProcessingResult(ctx context.Context, emailID int64, category string, items []model.ExtractedAction) (*model.Email, error)
}

type Processor struct {
	prompts   PromptSource
	generator llm.Generator
	store     Store
	logger    *zap.Logger
}

func New(prompts PromptSource, generator llm.Generator, store Store, log *zap.Logger) *Processor {
	return &Processor{
		prompts:   prompts,
		generator: generator,
		store:     store,
		logger:    log,
	}
}

// Process categorizes the email, replaces its action items and marks it
// processed. Generation problems degrade to Uncategorized and an empty item
// set; only a missing email or a store failure is returned as an error.
func (p *Processor) Process(ctx context.Context, emailID int64) (*model.Email, error) {
	log := logger.WithTrace(ctx, p.logger).With(zap.Int64("email_id", emailID))
	start := time.Now()

	email, err := p.store.GetByID(ctx, emailID)
	if err != nil {
		metrics.IncrementEmailProcessed("failed")
		return nil, err
	}

	category, categorized := p.categorize(ctx, log, email)
	items, extracted := p.extract(ctx, log, email)

	updated, err := p.store.ApplyProcessingResult(ctx, email.ID, category, items)
	if err != nil {
		metrics.IncrementEmailProcessed("failed")
		log.Error("Failed to persist processing result", zap.Error(err))
		return nil, fmt.Errorf("failed to persist processing result for email %d: %w", email.ID, err)
	}

	status := "success"
	if !categorized || !extracted {
		status = "degraded"
	}
	metrics.IncrementEmailProcessed(status)
	metrics.IncrementEmailCategory(category)
	metrics.AddActionItems(len(items))

	log.Info("Email processed",
		zap.String("category", category),
		zap.Int("action_items", len(items)),
		zap.String("status", status),
		zap.Duration("took", time.Since(start)),
	)
	return updated, nil
}

// categorize returns the category and whether generation succeeded.
func (p *Processor) categorize(ctx context.Context, log *zap.Logger, email *model.Email) (string, bool) {
	template, _ := p.prompts.ContentOrDefault(ctx, model.PromptTypeCategorization)

	raw, ok := p.generate(ctx, log, "categorization", prompt.Categorization(template, email))
	if !ok {
		return model.CategoryUncategorized, false
	}
	return parser.ParseCategory(raw), true
}

// extract returns the parsed action items and whether generation succeeded.
func (p *Processor) extract(ctx context.Context, log *zap.Logger, email *model.Email) ([]model.ExtractedAction, bool) {
	template, _ := p.prompts.ContentOrDefault(ctx, model.PromptTypeActionExtraction)

	raw, ok := p.generate(ctx, log, "action_extraction", prompt.ActionExtraction(template, email))
	if !ok {
		return []model.ExtractedAction{}, false
	}
	return parser.ParseActionItems(raw), true
}

func (p *Processor) generate(ctx context.Context, log *zap.Logger, step, text string) (string, bool) {
	raw, err := p.generator.Generate(ctx, text)
	if err != nil {
		log.Warn("Generation failed, degrading",
			zap.String("step", step),
			zap.String("error_type", util.ClassifyError(err)),
			zap.Error(err),
		)
		return "", false
	}
	if parser.IsErrorOutput(raw) {
		log.Warn("Generation returned an error message, degrading",
			zap.String("step", step),
			zap.String("output", raw),
		)
		return "", false
	}
	return raw, true
}
