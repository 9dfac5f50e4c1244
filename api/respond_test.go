package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestResponderWriteError(t *testing.T) {
	var logs bytes.Buffer
	responder := NewResponder(zerolog.New(&logs).Level(zerolog.DebugLevel))

	rec := httptest.NewRecorder()
	responder.WriteError(rec, errs.NewValidationError(map[string]string{"email": "Must be a valid email address"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"error": "validation failed",
		"status": "error",
		"field": "email",
		"fields": {"email": "Must be a valid email address"},
		"details": "email: Must be a valid email address"
	}`, rec.Body.String())
	assert.Contains(t, logs.String(), "payload rejected")
	assert.Contains(t, logs.String(), `"field":"email"`)

	logs.Reset()
	rec = httptest.NewRecorder()
	responder.WriteError(rec, errs.NewNotFoundError("project not found"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, logs.String())

	rec = httptest.NewRecorder()
	responder.WriteError(rec, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
	assert.Contains(t, logs.String(), "unexpected error")
}
