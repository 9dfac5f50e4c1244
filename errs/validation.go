package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// NewValidationError reports per-field messages; Field holds the first offending field in name order.
func NewValidationError(fields map[string]string) *ApiErr {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fields[name]))
	}

	apiErr := &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Details:    strings.Join(parts, "; "),
		Fields:     fields,
	}
	if len(names) > 0 {
		apiErr.Field = names[0]
	}
	return apiErr
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidField)
}
