package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Credential errors. ErrMissingCredential means no wallet address was
	// supplied at all; ErrUnauthenticated means the operation requires an
	// identity and none could be established.
	ErrMissingCredential = errors.New("wallet address is required")
	ErrUnauthenticated   = errors.New("authentication required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Infrastructure errors. ErrStorageUnavailable is the only transient kind;
	// callers may retry it, every other error is definitive.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// User errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFollowing = errors.New("already following")
	ErrSelfFollow       = errors.New("cannot follow yourself")
)

// Community errors
var (
	ErrCommunityNotFound = errors.New("community not found")
	ErrSlugTaken         = errors.New("community with this name already exists")
	ErrAlreadyMember     = errors.New("already a member")
	ErrNotMember         = errors.New("not a member")
)

// Content errors
var (
	ErrPostNotFound         = errors.New("post not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrPortfolioNotFound    = errors.New("portfolio item not found")
	ErrSelfConversation     = errors.New("cannot create conversation with yourself")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewStorageError wraps a database failure as a transient storage error,
// keeping the cause available for logging.
func NewStorageError(cause error) error {
	return &CustomError{
		Err:     ErrStorageUnavailable,
		Message: "storage unavailable: " + cause.Error(),
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

