package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/handler"
	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/pkg/trace"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type connChecker bool

func (c connChecker) IsConnected() bool { return bool(c) }

type stubEmails struct{ seenTrace string }

func (s *stubEmails) List(ctx context.Context) ([]model.Email, error) {
	s.seenTrace = trace.FromContext(ctx)
	return []model.Email{}, nil
}
func (s *stubEmails) GetByID(context.Context, int64) (*model.Email, error) { return &model.Email{}, nil }
func (s *stubEmails) Create(context.Context, model.NewEmail) (*model.Email, error) {
	return &model.Email{}, nil
}
func (s *stubEmails) Delete(context.Context, int64) error { return nil }

type stubActions struct{}

func (stubActions) ListByEmail(context.Context, int64) ([]model.ActionItem, error) { return nil, nil }
func (stubActions) ListAll(context.Context) ([]model.ActionItem, error)           { return nil, nil }

func newTestRouter(emails *stubEmails, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	return NewRouter(Handlers{
		Email:      handler.NewEmailHandler(emails, stubActions{}, log),
		Prompt:     handler.NewPromptHandler(nil, log),
		Draft:      handler.NewDraftHandler(nil, nil, log),
		Processing: handler.NewProcessingHandler(nil, nil, log),
		Agent:      handler.NewAgentHandler(nil, log),
	}, opts, log)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(&stubEmails{}, Options{})

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodHead, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want int
	}{
		{"all up", Options{DB: pinger{}, Publisher: connChecker(true)}, http.StatusOK},
		{"no broker configured", Options{DB: pinger{}}, http.StatusOK},
		{"db down", Options{DB: pinger{err: errors.New("refused")}}, http.StatusServiceUnavailable},
		{"broker down", Options{DB: pinger{}, Publisher: connChecker(false)}, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubEmails{}, tc.opts)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestTraceIDPropagation(t *testing.T) {
	emails := &stubEmails{}
	r := newTestRouter(emails, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/emails", nil)
	req.Header.Set(trace.HeaderName(), "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-123", emails.seenTrace)
	assert.Equal(t, "trace-123", w.Header().Get(trace.HeaderName()))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/emails", nil))
	assert.NotEmpty(t, w.Header().Get(trace.HeaderName()))
	assert.Equal(t, w.Header().Get(trace.HeaderName()), emails.seenTrace)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newTestRouter(&stubEmails{}, Options{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/emails", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/emails", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(&stubEmails{}, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/emails", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}

func TestAdminRoutesOnlyWithReplayer(t *testing.T) {
	r := newTestRouter(&stubEmails{}, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/outbox/replay?id=1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
