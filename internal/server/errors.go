package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrEvaluationNotFound indicates a stored evaluation was not found.
type ErrEvaluationNotFound struct {
	ID uuid.UUID
}

func (e *ErrEvaluationNotFound) Error() string {
	return fmt.Sprintf("evaluation not found: %s", e.ID)
}

// HTTPStatus returns the HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrEvaluationNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
