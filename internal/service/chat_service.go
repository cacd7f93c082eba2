package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/llm"
	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/internal/repository"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
	"github.com/mukheshvadlamudi/MailFlow/pkg/util"
)

const chatInstructions = `INSTRUCTIONS: Be direct and concise. No preambles like "Here's a reply" or "I suggest" or "Here is". 
If drafting an email reply, output ONLY:
To: [email]
Subject: [subject]
Body: [message]

For summaries or questions, answer directly without introductory phrases. Start with the actual content immediately.`

type ChatEmailSource interface {
	GetByID(ctx context.Context, id int64) (*model.Email, error)
	ListRecent(ctx context.Context, limit int) ([]model.Email, error)
	Count(ctx context.Context) (int, error)
}

type ChatService struct {
	emails    ChatEmailSource
	generator llm.Generator
	maxEmails int
	logger    *zap.Logger
}

// NewChatService creates the chat service. maxEmails <= 0 puts every email in context.
func NewChatService(emails ChatEmailSource, generator llm.Generator, maxEmails int, log *zap.Logger) *ChatService {
	return &ChatService{
		emails:    emails,
		generator: generator,
		maxEmails: maxEmails,
		logger:    log,
	}
}

// Chat answers query with the stored emails as context. focusID, when set
// and found, adds that email again as a focused block. The provider text is
// returned verbatim; only a generation error yields ErrGenerationFailed.
func (s *ChatService) Chat(ctx context.Context, query string, focusID *int64) (string, error) {
	log := logger.WithTrace(ctx, s.logger)

	emails, err := s.emails.ListRecent(ctx, s.maxEmails)
	if err != nil {
		return "", err
	}
	if s.maxEmails > 0 && len(emails) == s.maxEmails {
		if total, err := s.emails.Count(ctx); err == nil && total > len(emails) {
			log.Warn("Chat context truncated",
				zap.Int("included", len(emails)),
				zap.Int("total", total),
			)
		}
	}

	var focused *model.Email
	if focusID != nil {
		focused, err = s.emails.GetByID(ctx, *focusID)
		if err != nil && !errors.Is(err, repository.ErrEmailNotFound) {
			return "", err
		}
	}

	raw, err := s.generator.Generate(ctx, BuildChatPrompt(emails, focused, query))
	if err != nil {
		log.Warn("Chat generation failed",
			zap.String("error_type", util.ClassifyError(err)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return raw, nil
}

// BuildChatPrompt serializes emails, the optional focused email and the query.
func BuildChatPrompt(emails []model.Email, focused *model.Email, query string) string {
	var b strings.Builder
	b.WriteString("YOUR EMAILS:\n")
	for i, e := range emails {
		b.WriteString("\n[Email " + strconv.Itoa(i+1) + "]\n")
		b.WriteString("From: " + e.Sender + "\n")
		b.WriteString("Subject: " + e.Subject + "\n")
		b.WriteString("Body: " + e.Body + "\n")
		b.WriteString("Priority: " + e.Priority + "\n")
	}

	if focused != nil {
		b.WriteString("\n[FOCUSED EMAIL]\n")
		b.WriteString("From: " + focused.Sender + "\n")
		b.WriteString("Subject: " + focused.Subject + "\n")
		b.WriteString("Body: " + focused.Body + "\n")
	}

	b.WriteString("\n\nUSER REQUEST: " + query + "\n\n")
	b.WriteString(chatInstructions)
	return b.String()
}
