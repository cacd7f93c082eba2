package model

import "time"

const ActionStatusPending = "pending"

type ActionItem struct {
	ID        int64     `json:"id"`
	EmailID   int64     `json:"email_id"`
	Task      string    `json:"task"`
	Deadline  *string   `json:"deadline"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ExtractedAction is one task/deadline pair parsed from generated output,
// before it is stored.
type ExtractedAction struct {
	Task     string
	Deadline *string
}
