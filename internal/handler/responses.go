package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Retryable marks call rejections
// the client should treat as "try again".
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(ErrMsgEncodeResponseFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(ErrMsgWriteResponseFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToUserMessage maps engine errors to an HTTP status and a client-safe message
func mapServiceErrorToUserMessage(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgUnknownError}
	case errors.Is(err, domain.ErrNodeNotFound):
		return http.StatusNotFound, ErrorResponse{Error: ErrMsgNodeNotFoundError, Retryable: true}
	case errors.Is(err, domain.ErrNodeNotAvailable):
		return http.StatusConflict, ErrorResponse{Error: ErrMsgNodeNotAvailableError, Retryable: true}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidInputError}
	case errors.Is(err, domain.ErrRegistryClosed):
		return http.StatusServiceUnavailable, ErrorResponse{Error: ErrMsgUnavailableError}
	case errors.Is(err, domain.ErrInvalidConfiguration):
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgConfigurationError}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgGenericServerError}
	}
}

// respondServiceError logs err and writes the mapped error response.
// Rejections the caller should retry are logged at Debug, everything else at Error.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, body := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if body.Retryable || status < http.StatusInternalServerError {
		log.Debug(LogMsgServiceCallFailed, "operation", opName, "status", status, "error", err)
	} else {
		log.Error(LogMsgServiceCallFailed, "operation", opName, "status", status, "error", err)
	}
	respondJSON(w, status, body)
}
