package prompt

import (
	"strings"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

// Render substitutes {subject}, {sender}, {recipient} and {body}.
// Other braces are left untouched.
func Render(template string, e *model.Email) string {
	return strings.NewReplacer(
		"{subject}", e.Subject,
		"{sender}", e.Sender,
		"{recipient}", e.Recipient,
		"{body}", e.Body,
	).Replace(template)
}

func emailDetails(e *model.Email) string {
	return "Email Details:\n" +
		"Subject: " + e.Subject + "\n" +
		"From: " + e.Sender + "\n" +
		"Body: " + e.Body + "\n"
}

// Categorization builds the full categorization prompt.
func Categorization(template string, e *model.Email) string {
	return Render(template, e) + "\n\n" +
		emailDetails(e) + "\n" +
		"Return ONLY the category name (Important, Newsletter, Spam, or To-Do)."
}

// ActionExtraction builds the full extraction prompt.
func ActionExtraction(template string, e *model.Email) string {
	return Render(template, e) + "\n\n" +
		emailDetails(e) + "\n" +
		`Return a JSON array of tasks: [{"task": "...", "deadline": "..."}]` + "\n" +
		"If no tasks, return empty array: []"
}

// Reply builds the draft generation prompt. custom reports whether template
// came from a stored auto_reply template rather than the built-in default.
func Reply(template string, custom bool, e *model.Email, instruction string) string {
	original := "From: " + e.Sender + "\n" +
		"Subject: " + e.Subject + "\n" +
		"Body: " + e.Body + "\n\n" +
		"User Instruction: " + instruction + "\n\n"

	if custom {
		return Render(template, e) + "\n\n" +
			"Original Email:\n" + original +
			"Generate a draft reply with Subject and Body. Format:\n" +
			"Subject: [your subject]\n" +
			"Body: [your message]"
	}
	return Render(template, e) + "\n\n" +
		original +
		"Format:\n" +
		"Subject: [your subject]\n" +
		"Body: [your message]"
}
