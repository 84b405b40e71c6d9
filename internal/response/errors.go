package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrUnauthorized       ErrCode = "UNAUTHORIZED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrEndpointNotFound ErrCode = "ENDPOINT_NOT_FOUND"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrUnauthorized:
		return "Authentication required"
	case ErrInvalidCredentials:
		return "Invalid username or password"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Invalid request data"
	case ErrInvalidID:
		return "Invalid ID format"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found"
	case ErrConflict:
		return "Resource already exists"
	case ErrDependencyExists:
		return "Resource is still referenced by other records"
	case ErrEndpointNotFound:
		return "API endpoint not found"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error"
	default:
		return "An unexpected error occurred"
	}
}
