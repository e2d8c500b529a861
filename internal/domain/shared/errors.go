package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
// This lets errors.Is match wrapped and derived domain errors by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Record not found")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrValidation         = NewDomainError("VALIDATION", "Invalid input provided")
	ErrCorruptedPartition = NewDomainError("CORRUPTED_PARTITION", "Persisted partition payload is malformed")
	ErrUnknownTenant      = NewDomainError("UNKNOWN_TENANT", "Record owner does not match any known tenant")
	ErrMissingFollowUp    = NewDomainError("MISSING_FOLLOW_UP", "Callback transition requires a follow-up date")
	ErrOwnerMismatch      = NewDomainError("OWNER_MISMATCH", "Record belongs to a different tenant partition")
)

// NewValidationError creates a validation error naming the offending field
func NewValidationError(field string) *DomainError {
	return &DomainError{
		Code:    ErrValidation.Code,
		Message: "Required field missing: " + field,
	}
}
