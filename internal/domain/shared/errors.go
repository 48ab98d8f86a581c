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
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists   = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrUnauthenticated = NewDomainError("UNAUTHENTICATED", "Not authenticated")
)

// NewStoreError wraps a store failure into a caller-safe domain error.
// The underlying error is logged at the call site, never carried in the
// message, so driver and schema internals do not leak to end users.
func NewStoreError(message string) *DomainError {
	return NewDomainError("STORE_FAILURE", message)
}
