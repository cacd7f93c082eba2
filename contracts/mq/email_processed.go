package mq

import "time"

// EmailProcessedPayload is published on email.processed after the processor
// commits a category and action item set.
type EmailProcessedPayload struct {
	EmailID     int64     `json:"email_id"`
	Category    string    `json:"category"`
	ActionItems int       `json:"action_items"`
	ProcessedAt time.Time `json:"processed_at"`
	TraceID     string    `json:"trace_id,omitempty"`
}
