package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/mukheshvadlamudi/MailFlow/pkg/circuitbreaker"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	syntaxErr := json.Unmarshal([]byte("{"), &struct{}{})

	tests := []struct {
		name      string
		err       error
		want      string
		retryable bool
	}{
		{"nil", nil, "", false},
		{"circuit open", fmt.Errorf("generate: %w", circuitbreaker.ErrCircuitBreakerOpen), "circuit_open", false},
		{"canceled", context.Canceled, "context_canceled", false},
		{"deadline", fmt.Errorf("wrap: %w", context.DeadlineExceeded), "timeout", true},
		{"rate limited", &ProviderError{StatusCode: 429}, "rate_limited", true},
		{"auth", &ProviderError{StatusCode: 401}, "auth_error", false},
		{"server error", fmt.Errorf("x: %w", &ProviderError{StatusCode: 503}), "provider_unavailable", true},
		{"bad request", &ProviderError{StatusCode: 400}, "provider_error", false},
		{"json", syntaxErr, "json_decode_error", false},
		{"no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), "not_found", false},
		{"url timeout", &url.Error{Op: "Post", URL: "http://x", Err: timeoutErr{}}, "network_timeout", true},
		{"url error", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("refused")}, "network_error", true},
		{"duplicate", errors.New("ERROR: duplicate key value violates unique constraint"), "duplicate_key", false},
		{"db connection", errors.New("failed to connect: connection refused"), "db_connection_error", true},
		{"unknown", errors.New("something"), "unknown_error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
			assert.Equal(t, tt.retryable, IsRetryableError(tt.err))
		})
	}
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{StatusCode: 500, Body: "oops"}
	assert.Equal(t, "provider returned error: status 500: oops", err.Error())
}
