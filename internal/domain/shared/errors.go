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

// Is reports whether target is a DomainError with the same code,
// so errors.Is matches sentinel errors regardless of message
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
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrIsBeingUsed   = NewDomainError("IS_BEING_USED", "Resource is referenced by other records")
	ErrInvalidStatus = NewDomainError("INVALID_STATUS", "Unrecognized order status")
	ErrContention    = NewDomainError("CONTENTION", "Could not acquire sequence lock")
	ErrTransport     = NewDomainError("TRANSPORT", "Replication message delivery failed")
)
