// Package types defines core data types and enums for the LaTeX editor application.
package types

// Config holds the application configuration.
type Config struct {
	OpenAIAPIKey  string `json:"openai_api_key"`
	OpenAIBaseURL string `json:"openai_base_url"` // Base URL for OpenAI-compatible APIs
	OpenAIModel   string `json:"openai_model"`
	LogFilePath   string `json:"log_file_path"`
	LogLevel      string `json:"log_level"`      // debug, info, warn, error
	EnableConsole bool   `json:"enable_console"` // also write log output to stdout
}

// ErrorCode identifies a category of application error.
type ErrorCode string

const (
	ErrInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrSectionNotFound ErrorCode = "SECTION_NOT_FOUND"
	ErrGeneration      ErrorCode = "GENERATION_ERROR"
	ErrConfig          ErrorCode = "CONFIG_ERROR"
	ErrFileNotFound    ErrorCode = "FILE_NOT_FOUND"
	ErrInternal        ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application-level error type. The edit engine itself signals
// "not found" conditions through result values; AppError is used at API edges
// (config loading, generation, file IO).
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface for AppError
func (e *AppError) Error() string {
	if e.Details != "" {
		return string(e.Code) + ": " + e.Message + " (" + e.Details + ")"
	}
	return string(e.Code) + ": " + e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError with the given code, message, and optional cause
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorWithDetails creates a new AppError with details
func NewAppErrorWithDetails(code ErrorCode, message, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}
