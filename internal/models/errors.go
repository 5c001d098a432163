package models

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// Input errors
	CodeUnsupportedFormat     ErrorCode = "UNSUPPORTED_FORMAT"
	CodeUnextractableContent  ErrorCode = "UNEXTRACTABLE_CONTENT"
	CodeDecodingError         ErrorCode = "DECODING_ERROR"
	CodeInvalidVideoReference ErrorCode = "INVALID_VIDEO_REFERENCE"
	CodeValidation            ErrorCode = "VALIDATION_ERROR"

	// Caller errors in template authoring
	CodeMissingPlaceholder ErrorCode = "MISSING_PLACEHOLDER"

	// Dependent-service errors
	CodeTranscriptUnavailable ErrorCode = "TRANSCRIPT_UNAVAILABLE"
	CodeModelUnavailable      ErrorCode = "MODEL_UNAVAILABLE"
	CodeModelTimeout          ErrorCode = "MODEL_TIMEOUT"

	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError carries a machine-readable code alongside the underlying cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by code, so errors.Is(err, &AppError{Code: c}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewUnsupportedFormatError(ext string) *AppError {
	return NewError(CodeUnsupportedFormat, fmt.Sprintf("Unsupported file extension: %s", ext), nil)
}

func NewUnextractableContentError(page int) *AppError {
	return NewError(CodeUnextractableContent, fmt.Sprintf("PDF contains images (page %d)", page), nil)
}

func NewDecodingError(message string, err error) *AppError {
	return NewError(CodeDecodingError, message, err)
}

func NewInvalidVideoReferenceError(url string) *AppError {
	return NewError(CodeInvalidVideoReference, fmt.Sprintf("Could not resolve a YouTube video id from %q", url), nil)
}

func NewTranscriptUnavailableError(err error) *AppError {
	return NewError(CodeTranscriptUnavailable, "Failed to extract transcript from YouTube URL", err)
}

func NewMissingPlaceholderError(name string) *AppError {
	return NewError(CodeMissingPlaceholder, fmt.Sprintf("Template references unknown placeholder {%s}", name), nil)
}

func NewModelUnavailableError(err error) *AppError {
	return NewError(CodeModelUnavailable, "Language model request failed", err)
}

func NewModelTimeoutError(err error) *AppError {
	return NewError(CodeModelTimeout, "Language model request timed out", err)
}

func NewValidationError(field, message string) *AppError {
	return &AppError{Code: CodeValidation, Message: field + " " + message, Field: field}
}

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
