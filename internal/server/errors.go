package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/schemas"
	"github.com/jonathan/cvgen/internal/storage"
	"github.com/jonathan/cvgen/internal/templates"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError reports the first failed rule of a validator error, or
// wraps anything else as a request body problem
func validationError(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return &ErrValidation{Field: fe.Field(), Message: msg}
	}
	return &ErrValidation{Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		parseErr      *parsing.ParseError
		tmplNotFound  *templates.NotFoundError
		profNotFound  *profiles.NotFoundError
		tooLarge      *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &tmplNotFound), errors.As(err, &profNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
