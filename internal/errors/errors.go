package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeSession    ErrorType = "session"
	ErrorTypeAPI        ErrorType = "api"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"status,omitempty"`
	Cause   error          `json:"cause,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// newAppError is an unexported helper to create AppError instances
func newAppError(typ ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    typ,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error constructors for different types
func NewValidationError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, code, message, cause)
}

// NewSessionExpiredError reports a rejected bearer credential. The status is
// always 401: any 401 means the session is gone, regardless of body content.
func NewSessionExpiredError(cause error) *AppError {
	err := newAppError(ErrorTypeSession, ErrCodeSessionExpired, "session expired, please log in again", cause)
	err.Status = 401
	return err
}

func NewAPIError(message string, status int, cause error) *AppError {
	err := newAppError(ErrorTypeAPI, ErrCodeRequestFailed, message, cause)
	err.Status = status
	return err
}

func NewNetworkError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeNetwork, code, message, cause)
}

func NewIOError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeIO, code, message, cause)
}

func NewConfigError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeConfig, code, message, cause)
}

func NewInternalError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeInternal, code, message, cause)
}

// WithContext adds context to an error
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsType reports whether err is an AppError of the given type anywhere in its chain.
func IsType(err error, typ ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == typ
	}
	return false
}

// NewSessionStateError reports a session-gate refusal (for example running a
// protected command while logged out). Unlike expiry it carries no status.
func NewSessionStateError(code, message string) *AppError {
	return newAppError(ErrorTypeSession, code, message, nil)
}

// IsSessionExpired reports whether err carries a forced-logout condition.
func IsSessionExpired(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == ErrorTypeSession && appErr.Code == ErrCodeSessionExpired
	}
	return false
}

// StatusOf returns the transport status attached to err, or 0 when none is known.
func StatusOf(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// Logger wraps slog with application-specific methods
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a new structured logger
func NewLogger(level slog.Level) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	logger := slog.New(handler)

	return &Logger{logger: logger}
}

// LogError logs an application error with appropriate level and context
func (l *Logger) LogError(err error, message string, args ...any) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		logArgs := []any{
			"error_type", appErr.Type,
			"error_code", appErr.Code,
			"error_message", appErr.Message,
		}
		if appErr.Status != 0 {
			logArgs = append(logArgs, "status", appErr.Status)
		}

		// Add context if available
		for key, value := range appErr.Context {
			logArgs = append(logArgs, key, value)
		}

		// Add additional args
		logArgs = append(logArgs, args...)

		l.logger.Error(message, logArgs...)
	} else {
		// Regular error
		logArgs := append([]any{"error", err.Error()}, args...)
		l.logger.Error(message, logArgs...)
	}
}

func (l *Logger) Info(message string, args ...any) {
	l.logger.Info(message, args...)
}

func (l *Logger) Debug(message string, args ...any) {
	l.logger.Debug(message, args...)
}

func (l *Logger) Warn(message string, args ...any) {
	l.logger.Warn(message, args...)
}

// New creates a new logger instance
func New(level string) (*Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	return NewLogger(slogLevel), nil
}

// Common error codes
const (
	ErrCodeSessionExpired  = "SESSION_EXPIRED"
	ErrCodeRequestFailed   = "REQUEST_FAILED"
	ErrCodeTransport       = "TRANSPORT_FAILED"
	ErrCodeBackendRefused  = "BACKEND_REFUSED"
	ErrCodeInvalidField    = "INVALID_FIELD"
	ErrCodeSubmitInFlight  = "SUBMIT_IN_FLIGHT"
	ErrCodeUploadInFlight  = "UPLOAD_IN_FLIGHT"
	ErrCodeFileNotFound    = "FILE_NOT_FOUND"
	ErrCodeFileNotReadable = "FILE_NOT_READABLE"
	ErrCodeInvalidFormat   = "INVALID_FORMAT"
	ErrCodeInvalidConfig   = "INVALID_CONFIG"
	ErrCodeTokenStore      = "TOKEN_STORE_FAILED"
	ErrCodeNotLoggedIn     = "NOT_LOGGED_IN"
	ErrCodeAlreadyLoggedIn = "ALREADY_LOGGED_IN"
	ErrCodeGoogleDisabled  = "GOOGLE_SIGNIN_DISABLED"
	ErrCodeGoogleFlow      = "GOOGLE_SIGNIN_FAILED"
)
