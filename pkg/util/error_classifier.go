package util

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mukheshvadlamudi/MailFlow/pkg/circuitbreaker"
)

// ProviderError is returned when the generation provider answers with a non-2xx status.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return "provider returned error: status " + strconv.Itoa(e.StatusCode) + ": " + e.Body
}

// ClassifyError maps an error to a short, stable label used in logs and metrics.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) {
		return "circuit_open"
	}
	if errors.Is(err, context.Canceled) {
		return "context_canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		switch {
		case providerErr.StatusCode == 429:
			return "rate_limited"
		case providerErr.StatusCode == 401 || providerErr.StatusCode == 403:
			return "auth_error"
		case providerErr.StatusCode >= 500:
			return "provider_unavailable"
		default:
			return "provider_error"
		}
	}

	// JSON decode errors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return "json_decode_error"
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return "not_found"
	}

	// Network errors, including *url.Error from net/http
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "network_timeout"
		}
		return "network_error"
	}

	errStr := err.Error()
	if strings.Contains(errStr, "duplicate key") {
		return "duplicate_key"
	}
	if strings.Contains(errStr, "connection") {
		return "db_connection_error"
	}

	return "unknown_error"
}

// IsRetryableError reports whether retrying the same call might succeed.
func IsRetryableError(err error) bool {
	switch ClassifyError(err) {
	case "timeout", "network_timeout", "network_error", "rate_limited",
		"provider_unavailable", "db_connection_error":
		return true
	default:
		return false
	}
}
