package repository

import "errors"

var (
	ErrEmailNotFound  = errors.New("email not found")
	ErrPromptNotFound = errors.New("prompt not found")
	ErrDraftNotFound  = errors.New("draft not found")
)
