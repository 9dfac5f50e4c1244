package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteStatusJSON(w, http.StatusOK, data)
}

// WriteStatusJSON sets the content type before the status line so it reaches the client.
func (r Responder) WriteStatusJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large, truncating")

		truncatedJSON, err := json.Marshal(map[string]interface{}{
			"error":        "Response too large",
			"message":      "The requested data exceeds the maximum response size",
			"maxSizeMB":    maxResponseSize / (1024 * 1024),
			"actualSizeMB": len(jsonData) / (1024 * 1024),
		})
		if err != nil {
			r.logger.Error().Err(err).Msg("error marshaling truncated response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write(truncatedJSON)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteStatusJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred",
			"status":  "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Err(apiErr).Str("cause", apiErr.GetFullError()).Msg("request failed")
	} else if errs.IsValidationError(apiErr) {
		r.logger.Debug().Str("field", apiErr.Field).Str("details", apiErr.Details).Msg("payload rejected")
	}

	response := map[string]interface{}{
		"error":  apiErr.Message(),
		"status": "error",
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}
	if len(apiErr.Fields) > 0 {
		response["fields"] = apiErr.Fields
	}
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}

	r.WriteStatusJSON(w, apiErr.StatusCode, response)
}

// WriteTimeoutError writes a standardized timeout error response
func (r Responder) WriteTimeoutError(w http.ResponseWriter, timeout time.Duration, endpoint string) {
	r.WriteStatusJSON(w, http.StatusRequestTimeout, map[string]interface{}{
		"error":           "Request timeout",
		"message":         "The request took too long to process",
		"timeout_seconds": int(timeout.Seconds()),
		"status":          "timeout",
		"endpoint":        endpoint,
	})
}

// CheckContextTimeout reports whether the request context ended and answers the client if so.
func (r Responder) CheckContextTimeout(w http.ResponseWriter, req *http.Request, timeout time.Duration) bool {
	select {
	case <-req.Context().Done():
		r.WriteTimeoutError(w, timeout, req.URL.Path)
		return true
	default:
		return false
	}
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}

// wrapReferenceError reports payload ids that point at missing rows as a field error.
func wrapReferenceError(field, entity string, cause error) error {
	if errors.Is(cause, gorm.ErrRecordNotFound) {
		return errs.NewBadRequestErrorWithField("unknown "+entity, field, "one or more ids do not exist")
	}
	return wrapDatabaseError("find", entity, cause)
}

// wrapStorageError maps a missing object to 404 and anything else to a storage failure.
func wrapStorageError(operation, path string, cause error) error {
	switch {
	case errors.Is(cause, storage.ErrNotFound):
		return errs.NewNotFoundError("file not found: " + path)
	case errors.Is(cause, storage.ErrInvalidPath):
		return errs.NewBadRequestErrorWithField("invalid file path", "path", path)
	default:
		return errs.NewStorageError(operation, path, cause)
	}
}

func deletedResponse(entity string) map[string]string {
	return map[string]string{
		"status":  "success",
		"message": entity + " deleted successfully",
	}
}
