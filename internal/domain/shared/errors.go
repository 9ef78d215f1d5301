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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation       = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrPermissionDenied = NewDomainError("PERMISSION_DENIED", "Place is outside the caller's scope")
	ErrNotSupported     = NewDomainError("NOT_SUPPORTED", "Operation not supported for this role")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrHierarchyCycle   = NewDomainError("HIERARCHY_CYCLE", "Place hierarchy contains a cycle")
	ErrConcurrency      = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
