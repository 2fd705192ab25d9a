package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Identity errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Directory errors
var (
	ErrUniversityNotFound   = errors.New("university not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrChapterNotFound      = errors.New("chapter not found")
	ErrProfileNotFound      = errors.New("profile not found")
)

// Discussion errors
var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrReplyNotFound = errors.New("reply not found")
)

// Mailbox errors
var (
	ErrMailboxFailure       = errors.New("mailbox synchronization failed")
	ErrConversationNotFound = errors.New("conversation not found")
)

// Storage errors
var (
	ErrStorageFailure = errors.New("object storage operation failed")
	ErrAlbumNotFound  = errors.New("album not found")
	ErrPhotoNotFound  = errors.New("photo not found")
)

// Content errors
var (
	ErrBlockedContent = errors.New("content contains a blocked word")
	ErrInvalidHashtag = errors.New("hashtag is not in the vocabulary")
	ErrInvalidFormat  = errors.New("invalid token format")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

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

// NewValidationError creates a new custom error for rejected input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewMailboxError wraps a mailbox transaction failure after rollback
func NewMailboxError(cause error) error {
	return &CustomError{
		Err:     ErrMailboxFailure,
		Cause:   cause,
		Message: "mailbox synchronization failed",
	}
}

// NewStorageError wraps an object-storage failure with a message
func NewStorageError(message string, cause error) error {
	return &CustomError{
		Err:     ErrStorageFailure,
		Cause:   cause,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Cause     error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
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

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
