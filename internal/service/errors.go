package service

import "errors"

var (
	// ErrGenerationFailed means the provider could not produce usable text.
	ErrGenerationFailed = errors.New("text generation failed")
	// ErrBatchInProgress means another process-all run holds the batch guard.
	ErrBatchInProgress = errors.New("a processing batch is already running")
)
