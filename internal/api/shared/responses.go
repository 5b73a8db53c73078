package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Response is the JSON envelope every endpoint returns (except 204, which has
// no body). Errors holds structured validation violations and is only present
// on validation failures.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Violation describes a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope carrying data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	RespondWithJSON(w, r, status, Response{Success: true, Data: data})
}

// RespondWithMessage writes a success envelope carrying a message and,
// optionally, data.
func RespondWithMessage(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	data interface{},
) {
	RespondWithJSON(w, r, status, Response{Success: true, Message: message, Data: data})
}

// RespondNoContent writes a bare 204 with no body.
func RespondNoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondWithError writes a failure envelope with the given status code and
// safe message. The trace ID is logged for correlation, never sent.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Response{Success: false, Message: message})
}

// RespondWithValidationErrors writes a 400 failure envelope carrying the
// structured violations array.
func RespondWithValidationErrors(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	violations []Violation,
) {
	RespondWithJSON(w, r, http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Errors:  violations,
	})
}

// RespondWithErrorAndLog writes a failure envelope with only the safe message
// and logs the underlying error. 5xx errors log at ERROR level, everything
// else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Response{Success: false, Message: userMessage})
}
