package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/handlers"
	"github.com/sirine707/ensuite-study-buddy/internal/llm"
	"github.com/sirine707/ensuite-study-buddy/internal/middleware"
	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/services"
)

type noTranscripts struct{}

func (noTranscripts) Get(ctx context.Context, url string) (string, error) {
	return "", nil
}

type noMetadata struct{}

func (noMetadata) GetVideoMetadata(ctx context.Context, url string) (*models.YouTubeMetadata, error) {
	return &models.YouTubeMetadata{}, nil
}

func newTestRouter(limiter *middleware.RateLimiter) http.Handler {
	log := zap.NewNop()
	model := llm.ModelFunc(func(ctx context.Context, messages []models.Message) (string, error) {
		return "Question: Q?\nAnswer: A", nil
	})
	extractor := services.NewExtractor(services.NewFileExtractService(log), noTranscripts{}, log)
	study := services.NewStudyService(extractor, model, services.NewGenerator(model, 1, log), log)

	return New(
		handlers.NewStudyHandler(study, 1<<20, log),
		handlers.NewContentHandler(noMetadata{}, 1, log),
		limiter,
		log,
		"*",
	)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRoutes_AcceptTrailingSlash(t *testing.T) {
	r := newTestRouter(nil)
	form := url.Values{"mode": {"flash_cards"}, "question_count": {"1"}, "text": {"x"}}.Encode()

	for _, path := range []string{"/api/v1/quiz/", "/api/v1/quiz"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"data":[{"Question":"Q?","Answer":"A"}]}`, rec.Body.String())
	}
}

func TestRoutes_Registered(t *testing.T) {
	r := newTestRouter(nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/chat/"},
		{http.MethodPost, "/api/v1/paraphrase/"},
		{http.MethodPost, "/api/v1/summarize/"},
		{http.MethodPost, "/api/v1/note/"},
		{http.MethodPost, "/api/v1/content/validate-youtube"},
		{http.MethodGet, "/api/v1/content/supported-formats"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader("")))

			assert.NotEqual(t, http.StatusNotFound, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	store := middleware.NewMemoryStore(time.Minute)
	t.Cleanup(store.Close)
	limiter := middleware.NewRateLimiter(store, 1, time.Minute, zap.NewNop())
	r := newTestRouter(limiter)

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do("/api/v1/content/supported-formats"))
	assert.Equal(t, http.StatusTooManyRequests, do("/api/v1/content/supported-formats"))
	assert.Equal(t, http.StatusOK, do("/health"))
}
