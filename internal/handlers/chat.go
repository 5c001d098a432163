package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
	"github.com/sirine707/ensuite-study-buddy/internal/prompts"
)

// Chat continues a conversation. The system persona is chosen by context
// and prepended by the service; history is passed through in order.
func (h *StudyHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(string(models.CodeValidation), "Invalid request body", r))
		return
	}

	if req.Context == "" {
		req.Context = prompts.ContextStudyBuddy
	}
	if !prompts.ValidChatContext(req.Context) {
		h.rejectChoice(w, r, "context", "must be one of study_buddy, summarize, study_notes")
		return
	}

	for i, msg := range req.History {
		switch msg.Role {
		case models.RoleUser, models.RoleAssistant, models.RoleSystem:
		default:
			h.rejectChoice(w, r, fmt.Sprintf("history[%d].role", i), "must be one of user, assistant, system")
			return
		}
	}

	reply, err := h.study.Chat(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, models.DataResponse{Data: reply})
}
