package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"
	ErrCancelled     ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigNotFound  ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigMalformed ErrorCode = "CONFIG_MALFORMED"
	ErrConfigInvalid   ErrorCode = "CONFIG_INVALID"
	ErrConfigSave      ErrorCode = "CONFIG_SAVE"

	// Profile errors
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrProfileExists   ErrorCode = "PROFILE_EXISTS"
	ErrProfileInUse    ErrorCode = "PROFILE_IN_USE"

	// Repository state errors
	ErrRepoNotMapped  ErrorCode = "REPO_NOT_MAPPED"
	ErrNotInitialized ErrorCode = "NOT_INITIALIZED"

	// Symlink errors
	ErrSymlinkPermission    ErrorCode = "SYMLINK_PERMISSION"
	ErrSymlinkTargetMissing ErrorCode = "SYMLINK_TARGET_MISSING"
	ErrSymlinkCreate        ErrorCode = "SYMLINK_CREATE"

	// Git errors
	ErrGitNotRepository ErrorCode = "GIT_NOT_REPOSITORY"
	ErrGitNoIdentity    ErrorCode = "GIT_NO_IDENTITY"
	ErrGitConflict      ErrorCode = "GIT_CONFLICT"
	ErrGitTransport     ErrorCode = "GIT_TRANSPORT"
	ErrGitOperation     ErrorCode = "GIT_OPERATION"

	// Hook errors
	ErrHookInstall ErrorCode = "HOOK_INSTALL"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileRemove   ErrorCode = "FILE_REMOVE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// HyprlayerError represents a structured error with code and details
type HyprlayerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HyprlayerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HyprlayerError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HyprlayerError) Is(target error) bool {
	var targetErr *HyprlayerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HyprlayerError with the given code and message
func New(code ErrorCode, message string) *HyprlayerError {
	return &HyprlayerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HyprlayerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HyprlayerError {
	return &HyprlayerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HyprlayerError.
// Returns nil when err is nil; callers must not return the result as an
// error interface without checking err first.
func Wrap(err error, code ErrorCode, message string) *HyprlayerError {
	if err == nil {
		return nil
	}
	return &HyprlayerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HyprlayerError {
	if err == nil {
		return nil
	}
	return &HyprlayerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HyprlayerError) WithDetail(key string, value interface{}) *HyprlayerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *HyprlayerError) WithDetails(details map[string]interface{}) *HyprlayerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hErr *HyprlayerError
	if errors.As(err, &hErr) {
		return hErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HyprlayerError
func GetErrorCode(err error) ErrorCode {
	var hErr *HyprlayerError
	if errors.As(err, &hErr) {
		return hErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HyprlayerError
func GetErrorDetails(err error) map[string]interface{} {
	var hErr *HyprlayerError
	if errors.As(err, &hErr) {
		return hErr.Details
	}
	return nil
}

// UserMessage renders an error for people rather than tests: the message of
// the outermost HyprlayerError followed by its cause, without the code prefix.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var hErr *HyprlayerError
	if !errors.As(err, &hErr) {
		return err.Error()
	}
	if hErr.Wrapped == nil {
		return hErr.Message
	}
	return fmt.Sprintf("%s: %s", hErr.Message, UserMessage(hErr.Wrapped))
}
