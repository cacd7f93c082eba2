package model

import "time"

// Prompt purposes the processor and draft generator look up.
const (
	PromptTypeCategorization   = "categorization"
	PromptTypeActionExtraction = "action_extraction"
	PromptTypeAutoReply        = "auto_reply"
)

type PromptTemplate struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PromptPatch holds the fields of an update; nil means unchanged.
type PromptPatch struct {
	Name     *string
	Type     *string
	Content  *string
	IsActive *bool
}
