package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/parser"
	"github.com/sirine707/ensuite-study-buddy/internal/prompts"
	"github.com/sirine707/ensuite-study-buddy/internal/services"
)

// StudyOperations is what the study endpoints need from the service layer.
type StudyOperations interface {
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
	Paraphrase(ctx context.Context, sources models.Sources, tone string) (*services.StudyResult, error)
	Summarize(ctx context.Context, sources models.Sources, summaryType string) (*services.StudyResult, error)
	Notes(ctx context.Context, sources models.Sources, level string) (*services.StudyResult, error)
	Quiz(ctx context.Context, sources models.Sources, mode models.QuizMode, count int) (parser.Result, error)
}

type StudyHandler struct {
	study          StudyOperations
	maxUploadBytes int64
	log            *zap.Logger
}

func NewStudyHandler(study StudyOperations, maxUploadBytes int64, log *zap.Logger) *StudyHandler {
	return &StudyHandler{study: study, maxUploadBytes: maxUploadBytes, log: log}
}

func (h *StudyHandler) Paraphrase(w http.ResponseWriter, r *http.Request) {
	sources, ok := readSources(w, r, h.maxUploadBytes)
	if !ok {
		return
	}

	tone := r.PostFormValue("tone")
	if !prompts.ValidTone(tone) {
		h.rejectChoice(w, r, "tone", "must be one of friendly, neutral, formal")
		return
	}

	res, err := h.study.Paraphrase(r.Context(), sources, tone)
	h.writeStudyResult(w, r, res, err)
}

func (h *StudyHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	sources, ok := readSources(w, r, h.maxUploadBytes)
	if !ok {
		return
	}

	summaryType := r.PostFormValue("summary_type")
	if !prompts.ValidSummaryType(summaryType) {
		h.rejectChoice(w, r, "summary_type", "must be one of detailed, brief, neutral")
		return
	}

	res, err := h.study.Summarize(r.Context(), sources, summaryType)
	h.writeStudyResult(w, r, res, err)
}

func (h *StudyHandler) Note(w http.ResponseWriter, r *http.Request) {
	sources, ok := readSources(w, r, h.maxUploadBytes)
	if !ok {
		return
	}

	level := r.PostFormValue("level")
	if !prompts.ValidNoteLevel(level) {
		h.rejectChoice(w, r, "level", "must be one of 1, 2, 3")
		return
	}

	res, err := h.study.Notes(r.Context(), sources, level)
	h.writeStudyResult(w, r, res, err)
}

func (h *StudyHandler) rejectChoice(w http.ResponseWriter, r *http.Request, field, message string) {
	handleServiceError(w, r, h.log, models.NewValidationError(field, message))
}

func (h *StudyHandler) writeStudyResult(w http.ResponseWriter, r *http.Request, res *services.StudyResult, err error) {
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DataResponse{
		Data:          res.Reply,
		ExtractedText: &res.ExtractedText,
	})
}
