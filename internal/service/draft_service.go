package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/llm"
	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/internal/parser"
	"github.com/mukheshvadlamudi/MailFlow/internal/prompt"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
	"github.com/mukheshvadlamudi/MailFlow/pkg/metrics"
	"github.com/mukheshvadlamudi/MailFlow/pkg/util"
)

// DefaultReplyInstruction is used when the caller gives no instruction.
const DefaultReplyInstruction = "Write a professional reply"

type PromptSource interface {
	ContentOrDefault(ctx context.Context, purpose string) (string, bool)
}

type EmailGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Email, error)
}

type DraftSaver interface {
	SaveGeneratedDraft(ctx context.Context, d *model.Draft) (*model.Draft, error)
}

type DraftService struct {
	emails    EmailGetter
	prompts   PromptSource
	generator llm.Generator
	drafts    DraftSaver
	logger    *zap.Logger
}

func NewDraftService(emails EmailGetter, prompts PromptSource, generator llm.Generator, drafts DraftSaver, log *zap.Logger) *DraftService {
	return &DraftService{
		emails:    emails,
		prompts:   prompts,
		generator: generator,
		drafts:    drafts,
		logger:    log,
	}
}

// Generate writes a reply draft for the email addressed to its sender.
// Nothing is stored when generation fails.
func (s *DraftService) Generate(ctx context.Context, emailID int64, instruction string) (*model.Draft, error) {
	if instruction == "" {
		instruction = DefaultReplyInstruction
	}
	log := logger.WithTrace(ctx, s.logger).With(zap.Int64("email_id", emailID))

	email, err := s.emails.GetByID(ctx, emailID)
	if err != nil {
		return nil, err
	}

	template, custom := s.prompts.ContentOrDefault(ctx, model.PromptTypeAutoReply)
	raw, err := s.generator.Generate(ctx, prompt.Reply(template, custom, email, instruction))
	if err == nil && parser.IsErrorOutput(raw) {
		err = fmt.Errorf("provider reported: %s", raw)
	}
	if err != nil {
		metrics.IncrementDraftGenerated("failed")
		log.Warn("Draft generation failed",
			zap.String("error_type", util.ClassifyError(err)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	subject, body := parser.ParseDraft(raw, email.Subject)
	draft, err := s.drafts.SaveGeneratedDraft(ctx, &model.Draft{
		EmailID:   &email.ID,
		Subject:   subject,
		Body:      body,
		Recipient: email.Sender,
		Metadata: map[string]any{
			"generated":   true,
			"instruction": instruction,
		},
	})
	if err != nil {
		return nil, err
	}

	metrics.IncrementDraftGenerated("success")
	log.Info("Draft generated", zap.Int64("draft_id", draft.ID))
	return draft, nil
}
