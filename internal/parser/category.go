// Package parser turns free-form model output into typed values. None of the
// functions here fail: malformed input degrades to a documented default.
package parser

import (
	"strings"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

// labelOrder is significant: the first label found in the response wins.
var labelOrder = []struct {
	needle string
	label  string
}{
	{"important", model.CategoryImportant},
	{"newsletter", model.CategoryNewsletter},
	{"spam", model.CategorySpam},
	{"to-do", model.CategoryToDo},
	{"todo", model.CategoryToDo},
}

// errorPrefixes mark provider failures reported as text instead of an error.
var errorPrefixes = []string{
	"Error:",
	"Error calling",
	"LLM provider not configured",
}

// IsErrorOutput reports whether raw is a failure message rather than model output.
func IsErrorOutput(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, p := range errorPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// ParseCategory maps the first line of raw to a canonical category using a
// case-insensitive substring match. It returns Important when nothing matches.
func ParseCategory(raw string) string {
	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.ToLower(strings.TrimSpace(line))

	for _, l := range labelOrder {
		if strings.Contains(line, l.needle) {
			return l.label
		}
	}
	return model.CategoryImportant
}
