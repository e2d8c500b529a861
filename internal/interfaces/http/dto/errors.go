package dto

import (
	"errors"
	"net/http"

	"github.com/crm/backend/internal/domain/shared"
)

// StatusForError maps a domain error to an HTTP status code
func StatusForError(err error) int {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	switch domainErr.Code {
	case shared.ErrNotFound.Code:
		return http.StatusNotFound
	case shared.ErrForbidden.Code:
		return http.StatusForbidden
	case shared.ErrValidation.Code, shared.ErrMissingFollowUp.Code, shared.ErrOwnerMismatch.Code:
		return http.StatusBadRequest
	case shared.ErrUnknownTenant.Code:
		return http.StatusUnprocessableEntity
	case shared.ErrCorruptedPartition.Code:
		return http.StatusInternalServerError
	default:
		return http.StatusConflict
	}
}

// ErrorResponseFor builds the envelope for a domain error
func ErrorResponseFor(err error) Response {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return NewErrorResponse(domainErr.Code, domainErr.Message)
	}
	return NewErrorResponse("INTERNAL", "An unexpected error occurred")
}
