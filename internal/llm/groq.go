package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/pkg/circuitbreaker"
	"github.com/mukheshvadlamudi/MailFlow/pkg/config"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
	"github.com/mukheshvadlamudi/MailFlow/pkg/metrics"
	"github.com/mukheshvadlamudi/MailFlow/pkg/rate"
	"github.com/mukheshvadlamudi/MailFlow/pkg/trace"
	"github.com/mukheshvadlamudi/MailFlow/pkg/util"
)

// GroqClient calls the OpenAI compatible chat completions endpoint.
type GroqClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int

	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
	limiter    rate.Limiter
	logger     *zap.Logger
}

// NewGroqClient builds a client from cfg. limiter may be nil.
func NewGroqClient(cfg config.LLMConfig, limiter rate.Limiter, log *zap.Logger) *GroqClient {
	if limiter == nil {
		limiter = rate.Unlimited{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cbConfig := circuitbreaker.DefaultConfig()
	cbConfig.OnStateChange = func(from, to circuitbreaker.State) {
		log.Warn("LLM circuit breaker state changed",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		metrics.IncrementCircuitBreakerTransition("llm", to.String())
	}

	return &GroqClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: timeout},
		cb:          circuitbreaker.NewCircuitBreaker(cbConfig),
		limiter:     limiter,
		logger:      log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends prompt as a single user message and returns the first choice.
func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var text string
	err := c.cb.ExecuteContext(ctx, func() error {
		start := time.Now()
		var callErr error
		text, callErr = c.call(ctx, prompt)

		status := "success"
		if callErr != nil {
			status = util.ClassifyError(callErr)
		}
		metrics.RecordGenerationLatency(c.model, status, time.Since(start))
		return callErr
	})
	if err != nil {
		logger.WithTrace(ctx, c.logger).Warn("LLM generation failed",
			zap.String("model", c.model),
			zap.String("error_type", util.ClassifyError(err)),
			zap.Error(err),
		)
		return "", fmt.Errorf("generate: %w", err)
	}
	return text, nil
}

func (c *GroqClient) call(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if traceID := trace.FromContext(ctx); traceID != "" {
		req.Header.Set(trace.HeaderName(), traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &util.ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode completion: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return decoded.Choices[0].Message.Content, nil
}
