// Package server provides the HTTP REST API for the career advisor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bkaraca/career-advisor/internal/engine"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Engine lifecycle and input errors map to client-facing statuses; anything
// else (encoding failures included) is an internal error.
func HTTPStatus(err error) int {
	var ve *ErrValidation
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.Is(err, engine.ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, engine.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.As(err, &ve), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
