// Package errors provides structured error handling for runcompose.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Category represents the error category.
type Category string

// Error categories.
const (
	CategoryInput      Category = "input"
	CategoryConversion Category = "conversion"
	CategoryConfig     Category = "configuration"
	CategoryIO         Category = "io"
	CategoryInternal   Category = "internal"
)

// Error codes for each category.
const (
	// Input errors
	CodeInputFormat   = "INPUT_FORMAT"
	CodeInputEmpty    = "INPUT_EMPTY"
	CodeInputDangling = "INPUT_DANGLING_FLAG"

	// Conversion errors
	CodeConversion       = "CONVERSION"
	CodeConversionImage  = "CONVERSION_NO_IMAGE"
	CodeConversionRender = "CONVERSION_RENDER"
	CodeConversionCheck  = "CONVERSION_CHECK"

	// Config errors
	CodeConfigParse      = "CONFIG_PARSE"
	CodeConfigValidation = "CONFIG_VALIDATION"

	// IO errors
	CodeFileRead  = "FILE_READ"
	CodeFileWrite = "FILE_WRITE"

	// Internal errors
	CodeInternal = "INTERNAL"
)

// ConvError is a structured error with category, code, and user-friendly hints.
type ConvError struct {
	Category Category
	Code     string
	Message  string
	Cause    error
	Hint     string
	Context  map[string]string
}

// Error implements the error interface.
func (e *ConvError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ConvError) Unwrap() error {
	return e.Cause
}

// UserFriendly returns a user-friendly error message with hints.
func (e *ConvError) UserFriendly() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", e.Cause.Error()))
	}

	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\nHint: %s\n", e.Hint))
	}

	if len(e.Context) > 0 {
		sb.WriteString("\nContext:\n")
		for k, v := range e.Context {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}

	return sb.String()
}

// WithCause adds a cause to the error.
func (e *ConvError) WithCause(cause error) *ConvError {
	e.Cause = cause
	return e
}

// WithHint adds a hint to the error.
func (e *ConvError) WithHint(hint string) *ConvError {
	e.Hint = hint
	return e
}

// WithContext adds context to the error.
func (e *ConvError) WithContext(key, value string) *ConvError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// Clone creates a copy of the error that can be modified without affecting the original.
func (e *ConvError) Clone() *ConvError {
	clone := &ConvError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    e.Cause,
		Hint:     e.Hint,
		Context:  make(map[string]string, len(e.Context)),
	}
	for k, v := range e.Context {
		clone.Context[k] = v
	}
	return clone
}

// New creates a new ConvError.
func New(category Category, code string, message string) *ConvError {
	return &ConvError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Newf creates a new ConvError with formatted message.
func Newf(category Category, code string, format string, args ...interface{}) *ConvError {
	return New(category, code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error as a ConvError.
func Wrap(err error, category Category, code string, message string) *ConvError {
	e := New(category, code, message)
	e.Cause = err
	return e
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, category Category, code string, format string, args ...interface{}) *ConvError {
	return Wrap(err, category, code, fmt.Sprintf(format, args...))
}

// Is checks if the error is a ConvError with the given code.
func Is(err error, code string) bool {
	var convErr *ConvError
	if errors.As(err, &convErr) {
		return convErr.Code == code
	}
	return false
}

// GetCategory returns the category of a ConvError, or empty string if not a ConvError.
func GetCategory(err error) Category {
	var convErr *ConvError
	if errors.As(err, &convErr) {
		return convErr.Category
	}
	return ""
}

// GetCode returns the code of a ConvError, or empty string if not a ConvError.
func GetCode(err error) string {
	var convErr *ConvError
	if errors.As(err, &convErr) {
		return convErr.Code
	}
	return ""
}

// AsConvError attempts to convert an error to a ConvError.
func AsConvError(err error) (*ConvError, bool) {
	var convErr *ConvError
	if errors.As(err, &convErr) {
		return convErr, true
	}
	return nil, false
}

// Common pre-defined errors.
var (
	ErrNotDockerRun = &ConvError{
		Category: CategoryInput,
		Code:     CodeInputFormat,
		Message:  "This doesn't appear to be a docker run command",
		Hint:     `The command must start with "docker run"`,
	}

	ErrEmptyInput = &ConvError{
		Category: CategoryInput,
		Code:     CodeInputEmpty,
		Message:  "no docker run command given",
		Hint:     "Pass the command as arguments, with --file, or pipe it on stdin",
	}

	ErrMissingImage = &ConvError{
		Category: CategoryConversion,
		Code:     CodeConversionImage,
		Message:  "no image found in command",
		Hint:     "The image must be the last word of the command",
	}
)

// Input errors constructors.

// FormatError reports text that is not a docker run command.
func FormatError(input string) *ConvError {
	return ErrNotDockerRun.Clone().WithContext("input", truncate(input, 60))
}

// EmptyInput reports that no command text was supplied.
func EmptyInput() *ConvError {
	return ErrEmptyInput.Clone()
}

// DanglingFlag reports a value flag with nothing after it.
func DanglingFlag(flag string) *ConvError {
	return Newf(CategoryInput, CodeInputDangling, "flag %s is missing its value", flag).
		WithContext("flag", flag).
		WithHint("Drop --strict to ignore flags without values")
}

// Conversion errors constructors.

// ConversionError wraps an unexpected failure during tokenize or interpret.
func ConversionError(cause error) *ConvError {
	return Wrap(cause, CategoryConversion, CodeConversion, "Failed to parse command")
}

// MissingImage reports a conversion that produced no image.
func MissingImage() *ConvError {
	return ErrMissingImage.Clone()
}

// RenderFailed reports a serializer failure.
func RenderFailed(format string, cause error) *ConvError {
	return Wrapf(cause, CategoryConversion, CodeConversionRender, "failed to render %s", format).
		WithContext("format", format)
}

// CheckFailed reports a document that compose refused to load.
func CheckFailed(cause error) *ConvError {
	return Wrap(cause, CategoryConversion, CodeConversionCheck, "generated document is not a valid compose project").
		WithHint("Run without --check to see the raw output")
}

// Config errors constructors.

// ConfigParse creates a config parse error.
func ConfigParse(path string, cause error) *ConvError {
	return Wrap(cause, CategoryConfig, CodeConfigParse, "failed to parse configuration").
		WithContext("path", path).
		WithHint("Check for JSON syntax errors in the configuration file")
}

// ConfigValidation creates a validation error.
func ConfigValidation(message string) *ConvError {
	return New(CategoryConfig, CodeConfigValidation, message)
}

// IO errors constructors.

// FileRead creates a file read error.
func FileRead(path string, cause error) *ConvError {
	return Wrap(cause, CategoryIO, CodeFileRead, fmt.Sprintf("failed to read file: %s", path)).
		WithContext("path", path)
}

// FileWrite creates a file write error.
func FileWrite(path string, cause error) *ConvError {
	return Wrap(cause, CategoryIO, CodeFileWrite, fmt.Sprintf("failed to write file: %s", path)).
		WithContext("path", path)
}

// Internal errors constructors.

// Internal creates an internal error.
func Internal(message string, cause error) *ConvError {
	return Wrap(cause, CategoryInternal, CodeInternal, message).
		WithHint("This is an internal error. Please report it at https://github.com/griffithind/runcompose/issues")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
