package model

import "time"

type Draft struct {
	ID        int64          `json:"id"`
	EmailID   *int64         `json:"email_id"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	Recipient string         `json:"recipient"`
	Metadata  map[string]any `json:"meta_data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// DraftPatch holds the fields of an update; nil means unchanged.
type DraftPatch struct {
	Subject   *string
	Body      *string
	Recipient *string
	Metadata  map[string]any
}
