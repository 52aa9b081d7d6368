package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkaraca/career-advisor/internal/engine"
)

func TestHTTPStatus_EngineNotReady(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(engine.ErrNotReady))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(fmt.Errorf("load: %w", engine.ErrNotReady)))
}

func TestHTTPStatus_EmptyQuery(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(engine.ErrEmptyQuery))
}

func TestHTTPStatus_ValidationError(t *testing.T) {
	err := &ErrValidation{Field: "goal", Message: "is required"}
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestErrValidation_Error(t *testing.T) {
	err := &ErrValidation{Field: "goal", Message: "is required"}
	assert.Equal(t, "validation error: goal - is required", err.Error())
}
