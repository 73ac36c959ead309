package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/checkin/internal/insight"
	"github.com/MikeSquared-Agency/checkin/internal/processor"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts validator output into an *ErrValidation. Only
// the first failing field is reported.
func validationError(err error) *ErrValidation {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var ve *ErrValidation
	switch {
	case errors.As(err, &ve),
		errors.Is(err, insight.ErrEmptyInput),
		errors.Is(err, processor.ErrNotEnoughCompleted):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrNoSummary):
		return http.StatusNotFound
	case errors.Is(err, session.ErrAlreadyCompleted),
		errors.Is(err, session.ErrStatusRegression):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
