package prompt

import "github.com/mukheshvadlamudi/MailFlow/internal/model"

// Built-in templates used when no active template exists for a purpose.
const (
	DefaultCategorization   = "Categorize this email into: Important, Newsletter, Spam, or To-Do. Email: {subject} - {body}"
	DefaultActionExtraction = "Extract action items and tasks from this email body: {body}"
	DefaultAutoReply        = "Write a professional reply to this email:"
)

// Default returns the built-in template for purpose, or "" for unknown purposes.
func Default(purpose string) string {
	switch purpose {
	case model.PromptTypeCategorization:
		return DefaultCategorization
	case model.PromptTypeActionExtraction:
		return DefaultActionExtraction
	case model.PromptTypeAutoReply:
		return DefaultAutoReply
	default:
		return ""
	}
}
