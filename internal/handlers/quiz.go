package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

// Quiz generates multiple-choice questions or flashcards about the
// extracted content. Fewer items than question_count is still a 200.
func (h *StudyHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	sources, ok := readSources(w, r, h.maxUploadBytes)
	if !ok {
		return
	}

	mode := models.QuizMode(r.PostFormValue("mode"))
	if !mode.Valid() {
		h.rejectChoice(w, r, "mode", "must be one of multiple_choice, flash_cards")
		return
	}

	count, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("question_count")))
	if err != nil {
		h.rejectChoice(w, r, "question_count", "must be an integer")
		return
	}
	if err := models.ValidateQuestionCount(count); err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	result, err := h.study.Quiz(r.Context(), sources, mode, count)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Data: result.Items()})
}
