package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

func strPtr(s string) *string { return &s }

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"exact", "Important", model.CategoryImportant},
		{"earliest checked label wins", "Important. Also spam-like.", model.CategoryImportant},
		{"case insensitive", "this looks like NEWSLETTER material", model.CategoryNewsletter},
		{"spam", "  spam\n", model.CategorySpam},
		{"to-do", "Category: To-Do", model.CategoryToDo},
		{"todo variant", "todo", model.CategoryToDo},
		{"spam before todo", "Todo or Spam?", model.CategorySpam},
		{"only first line counts", "Unsure\nNewsletter", model.CategoryImportant},
		{"leading blank lines trimmed", "\n\n  Newsletter\nmore", model.CategoryNewsletter},
		{"no label", "I cannot tell", model.CategoryImportant},
		{"empty", "", model.CategoryImportant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.raw))
		})
	}
}

func TestIsErrorOutput(t *testing.T) {
	assert.True(t, IsErrorOutput("Error: GROQ_API_KEY not found in environment"))
	assert.True(t, IsErrorOutput("  Error calling Groq API: timeout"))
	assert.True(t, IsErrorOutput("LLM provider not configured"))
	assert.False(t, IsErrorOutput("Important"))
	assert.False(t, IsErrorOutput("No Error: here"))
}

func TestParseActionItems(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []model.ExtractedAction
	}{
		{
			name: "array embedded in prose",
			raw:  `Here you go: [{"task":"Reply to John","deadline":"Friday"}] thanks`,
			want: []model.ExtractedAction{{Task: "Reply to John", Deadline: strPtr("Friday")}},
		},
		{
			name: "empty array",
			raw:  "[]",
			want: []model.ExtractedAction{},
		},
		{
			name: "malformed json",
			raw:  "[{task: oops}]",
			want: []model.ExtractedAction{},
		},
		{
			name: "no brackets",
			raw:  "There are no tasks.",
			want: []model.ExtractedAction{},
		},
		{
			name: "closing bracket before opening",
			raw:  "] nothing [",
			want: []model.ExtractedAction{},
		},
		{
			name: "missing fields default",
			raw:  `[{"deadline":"Monday"},{"task":"Book room"},{"task":null,"deadline":null}]`,
			want: []model.ExtractedAction{
				{Task: "", Deadline: strPtr("Monday")},
				{Task: "Book room"},
				{Task: ""},
			},
		},
		{
			name: "order preserved across lines",
			raw:  "```json\n[\n  {\"task\": \"A\", \"deadline\": \"\"},\n  {\"task\": \"B\", \"deadline\": \"EOD\"}\n]\n```",
			want: []model.ExtractedAction{
				{Task: "A", Deadline: strPtr("")},
				{Task: "B", Deadline: strPtr("EOD")},
			},
		},
		{
			name: "non-string values kept as text",
			raw:  `[{"task":"Pay invoice","deadline":15}]`,
			want: []model.ExtractedAction{{Task: "Pay invoice", Deadline: strPtr("15")}},
		},
		{
			name: "long deadlines kept whole",
			raw:  `[{"task":"Plan offsite","deadline":"` + strings.Repeat("x", 250) + `"}]`,
			want: []model.ExtractedAction{{Task: "Plan offsite", Deadline: strPtr(strings.Repeat("x", 250))}},
		},
		{
			name: "NUL bytes dropped",
			raw:  `[{"task":"Sign\u0000 form","deadline":"Mon\u0000day"}]`,
			want: []model.ExtractedAction{{Task: "Sign form", Deadline: strPtr("Monday")}},
		},
		{
			name: "not an array of objects",
			raw:  `["just a string"]`,
			want: []model.ExtractedAction{},
		},
		{
			name: "greedy span over two arrays is invalid",
			raw:  `[{"task":"A"}] and [{"task":"B"}]`,
			want: []model.ExtractedAction{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseActionItems(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "formatted",
			raw:         "Subject: Re: Budget\nBody: Thanks, I'll be there.\n",
			wantSubject: "Re: Budget",
			wantBody:    "Thanks, I'll be there.",
		},
		{
			name:        "no labels",
			raw:         "Sounds good, see you then.",
			wantSubject: "Re: Q4 Budget Meeting",
			wantBody:    "Sounds good, see you then.",
		},
		{
			name:        "subject without body label",
			raw:         "Subject: Hello\nSee you.",
			wantSubject: "Re: Q4 Budget Meeting",
			wantBody:    "Subject: Hello\nSee you.",
		},
		{
			name:        "splits on first body label",
			raw:         "Subject: Notes\nBody: First\nBody: Second",
			wantSubject: "Notes",
			wantBody:    "First\nBody: Second",
		},
		{
			name:        "NUL bytes dropped",
			raw:         "Subject: Hi\x00\nBody: See\x00 you",
			wantSubject: "Hi",
			wantBody:    "See you",
		},
		{
			name:        "body label without subject label",
			raw:         "Body: hi",
			wantSubject: "Re: Q4 Budget Meeting",
			wantBody:    "Body: hi",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := ParseDraft(tt.raw, "Q4 Budget Meeting")
			assert.Equal(t, tt.wantSubject, subject)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
