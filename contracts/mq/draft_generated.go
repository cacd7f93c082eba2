package mq

import "time"

type DraftGeneratedPayload struct {
	DraftID     int64     `json:"draft_id"`
	EmailID     int64     `json:"email_id"`
	Recipient   string    `json:"recipient"`
	GeneratedAt time.Time `json:"generated_at"`
	TraceID     string    `json:"trace_id,omitempty"`
}
