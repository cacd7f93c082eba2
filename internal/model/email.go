package model

import "time"

// Canonical categories assigned by the processor.
const (
	CategoryImportant     = "Important"
	CategoryNewsletter    = "Newsletter"
	CategorySpam          = "Spam"
	CategoryToDo          = "To-Do"
	CategoryUncategorized = "Uncategorized"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Email struct {
	ID         int64     `json:"id"`
	Sender     string    `json:"sender"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"timestamp"`
	Category   *string   `json:"category"`
	Priority   string    `json:"priority"`
	Processed  bool      `json:"processed"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewEmail is the input for storing an email.
type NewEmail struct {
	Sender     string
	Recipient  string
	Subject    string
	Body       string
	Priority   string
	ReceivedAt *time.Time
}
