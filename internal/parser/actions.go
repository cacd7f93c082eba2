package parser

import (
	"encoding/json"
	"strings"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

// ParseActionItems extracts the span from the first '[' to the last ']' and
// decodes it as an array of {"task", "deadline"} objects. Any failure,
// including a non-object element, yields an empty slice.
func ParseActionItems(raw string) []model.ExtractedAction {
	start := strings.IndexByte(raw, '[')
	end := strings.LastIndexByte(raw, ']')
	if start < 0 || end < start {
		return []model.ExtractedAction{}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &elems); err != nil {
		return []model.ExtractedAction{}
	}

	items := make([]model.ExtractedAction, 0, len(elems))
	for _, elem := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			return []model.ExtractedAction{}
		}

		item := model.ExtractedAction{}
		if task := fieldText(obj["task"]); task != nil {
			item.Task = *task
		}
		item.Deadline = fieldText(obj["deadline"])
		items = append(items, item)
	}
	return items
}

// fieldText returns nil for absent or null fields, the string for JSON
// strings, and the compact JSON text for anything else.
func fieldText(v json.RawMessage) *string {
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		s = storable(s)
		return &s
	}
	text := string(v)
	return &text
}

// storable drops NUL bytes, which Postgres text columns reject.
func storable(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
