package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/middleware"
	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return errorRespWithFields(code, message, nil, r)
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: middleware.GetRequestID(r.Context()),
		},
	}
}

// statusFor maps an error code onto the HTTP status the client sees.
func statusFor(code models.ErrorCode) int {
	switch code {
	case models.CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case models.CodeUnextractableContent,
		models.CodeDecodingError,
		models.CodeInvalidVideoReference,
		models.CodeValidation:
		return http.StatusBadRequest
	case models.CodeTranscriptUnavailable, models.CodeModelUnavailable:
		return http.StatusBadGateway
	case models.CodeModelTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		log.Error("Unhandled error", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp(string(models.CodeInternal), "Internal server error", r))
		return
	}

	status := statusFor(appErr.Code)
	message := appErr.Message
	if status >= http.StatusInternalServerError {
		log.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
		if appErr.Code == models.CodeInternal || appErr.Code == models.CodeMissingPlaceholder {
			message = "Internal server error"
		}
	} else {
		log.Info("Request rejected",
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
		)
	}

	var fields map[string]string
	if appErr.Field != "" {
		fields = map[string]string{appErr.Field: appErr.Message}
	}
	writeJSON(w, status, errorRespWithFields(string(appErr.Code), message, fields, r))
}
