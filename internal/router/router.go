package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/handlers"
	"github.com/sirine707/ensuite-study-buddy/internal/middleware"
)

func New(
	studyHandler *handlers.StudyHandler,
	contentHandler *handlers.ContentHandler,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))
	r.Use(chimiddleware.StripSlashes)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		// ──── Study Routes (public) ────
		r.Post("/chat", studyHandler.Chat)
		r.Post("/paraphrase", studyHandler.Paraphrase)
		r.Post("/summarize", studyHandler.Summarize)
		r.Post("/note", studyHandler.Note)
		r.Post("/quiz", studyHandler.Quiz)

		// ──── Content Routes ────
		r.Route("/content", func(r chi.Router) {
			r.Get("/supported-formats", contentHandler.SupportedFormats)
			r.Post("/validate-youtube", contentHandler.ValidateYouTube)
		})
	})

	return r
}
