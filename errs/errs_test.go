package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		target error
	}{
		{"not found", gorm.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound, ErrNotFound},
		{"postgres unique", &pgconn.PgError{Code: "23505", ColumnName: "slug"}, http.StatusConflict, ErrUniqueConstraintViolation},
		{"postgres foreign key", &pgconn.PgError{Code: "23503", TableName: "projects"}, http.StatusBadRequest, ErrForeignKeyConstraint},
		{"postgres check", &pgconn.PgError{Code: "23514", ColumnName: "rating"}, http.StatusBadRequest, ErrInvalidField},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: technologies.name (2067)"), http.StatusConflict, nil},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, nil},
		{"other", errors.New("syntax error"), http.StatusInternalServerError, ErrDatabaseQuery},
		{"nil cause", nil, http.StatusInternalServerError, ErrDatabaseQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "technology", tt.cause)
			assert.Equal(t, tt.status, StatusCode(err))
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestNewDatabaseErrorKeepsModelErrors(t *testing.T) {
	hookErr := NewInvalidFieldError("end_date", "start date cannot be after end date")
	err := NewDatabaseError("update", "experience", fmt.Errorf("save: %w", hookErr))

	assert.Same(t, hookErr, err)
	assert.True(t, IsValidationError(err))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{
		"title": "This field is required",
		"email": "Must be a valid email address",
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "email", err.Field)
	assert.Equal(t, "email: Must be a valid email address; title: This field is required", err.Details)
	assert.True(t, IsValidationError(err))
}

func TestKindKeepsMessage(t *testing.T) {
	err := NewNotFoundError("file not found: resumes/cv.pdf")

	assert.Equal(t, "file not found: resumes/cv.pdf", err.Message())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}

func TestGetFullError(t *testing.T) {
	inner := NewStorageError("open", "resumes/cv.pdf", errors.New("permission denied"))
	outer := NewInternalErrorWithCause("download failed", inner)

	assert.Equal(t,
		"download failed -> storage operation failed: Failed to open resumes/cv.pdf -> permission denied",
		outer.GetFullError())
}
