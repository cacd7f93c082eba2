package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/pkg/circuitbreaker"
	"github.com/mukheshvadlamudi/MailFlow/pkg/config"
	"github.com/mukheshvadlamudi/MailFlow/pkg/trace"
	"github.com/mukheshvadlamudi/MailFlow/pkg/util"
)

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		APIKey:      "gsk_test",
		BaseURL:     baseURL + "/",
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     2 * time.Second,
	}
}

func TestGenerateSendsChatCompletion(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "trace-1", r.Header.Get(trace.HeaderName()))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Newsletter"}}]}`))
	}))
	defer srv.Close()

	c := NewGroqClient(testConfig(srv.URL), nil, zap.NewNop())
	ctx := trace.WithContext(context.Background(), "trace-1")

	text, err := c.Generate(ctx, "categorize this")
	require.NoError(t, err)
	assert.Equal(t, "Newsletter", text)

	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "categorize this", got.Messages[0].Content)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.APIKey = ""
	c := NewGroqClient(cfg, nil, zap.NewNop())

	_, err := c.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limit"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGroqClient(testConfig(srv.URL), nil, zap.NewNop())
	_, err := c.Generate(context.Background(), "x")
	require.Error(t, err)

	var providerErr *util.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusTooManyRequests, providerErr.StatusCode)
	assert.Equal(t, "rate_limited", util.ClassifyError(err))
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewGroqClient(testConfig(srv.URL), nil, zap.NewNop())
	_, err := c.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateOpensCircuitAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewGroqClient(testConfig(srv.URL), nil, zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := c.Generate(context.Background(), "x")
		require.Error(t, err)
	}

	_, err := c.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerateCallerTimeoutsDoNotOpenCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Work"}}]}`))
	}))
	defer srv.Close()

	c := NewGroqClient(testConfig(srv.URL), nil, zap.NewNop())
	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		_, err := c.Generate(ctx, "x")
		cancel()
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}

	text, err := c.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Work", text)
	assert.Equal(t, circuitbreaker.StateClosed, c.cb.GetState())
}

type denyLimiter struct{}

func (denyLimiter) Wait(ctx context.Context) error { return context.Canceled }

func TestGenerateRespectsLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}))
	defer srv.Close()

	c := NewGroqClient(testConfig(srv.URL), denyLimiter{}, zap.NewNop())
	_, err := c.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeneratorFunc(t *testing.T) {
	var g Generator = GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	})
	out, err := g.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", out)
}
