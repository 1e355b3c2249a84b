package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// Kind classifies a BuildError
type Kind string

const (
	// KindConfiguration covers malformed or unresolvable configuration. It aborts the pass.
	KindConfiguration Kind = "configuration"
	// KindFilesystem covers failed filesystem side effects of a task.
	KindFilesystem Kind = "filesystem"
)

// Severity represents the severity level of an error
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// BuildError is a structured error raised by the configuration pass or a task
type BuildError struct {
	Kind        Kind
	Code        string   // "C101", "F201", etc.
	Message     string   // Human-readable message
	Node        string   // Offending project, if any
	Path        string   // Offending path, if any
	Severity    Severity // Always Error or Fatal for returned errors
	Suggestions []string // "Did you mean" candidates
	Cause       error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Node != "" {
		msg += fmt.Sprintf(" (project %q)", e.Node)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (path %s)", e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a fatal configuration error with the code's default message
func NewConfigurationError(code string) *BuildError {
	return &BuildError{
		Kind:     KindConfiguration,
		Code:     code,
		Message:  GetErrorMessage(code),
		Severity: Fatal,
	}
}

// NewFilesystemError wraps a filesystem failure for path
func NewFilesystemError(code, path string, cause error) *BuildError {
	return &BuildError{
		Kind:     KindFilesystem,
		Code:     code,
		Message:  GetErrorMessage(code),
		Path:     path,
		Severity: Error,
		Cause:    cause,
	}
}

// WithMessage replaces the default message
func (e *BuildError) WithMessage(format string, args ...any) *BuildError {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// WithNode records the offending project
func (e *BuildError) WithNode(node string) *BuildError {
	e.Node = node
	return e
}

// WithPath records the offending path
func (e *BuildError) WithPath(path string) *BuildError {
	e.Path = path
	return e
}

// WithSuggestions attaches "did you mean" candidates
func (e *BuildError) WithSuggestions(suggestions ...string) *BuildError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithCause attaches the underlying error
func (e *BuildError) WithCause(cause error) *BuildError {
	e.Cause = cause
	return e
}

// MarshalJSON implements json.Marshaler
func (e *BuildError) MarshalJSON() ([]byte, error) {
	cause := ""
	if e.Cause != nil {
		cause = e.Cause.Error()
	}
	return json.Marshal(struct {
		Kind        Kind     `json:"kind"`
		Code        string   `json:"code"`
		Message     string   `json:"message"`
		Severity    Severity `json:"severity"`
		Node        string   `json:"node,omitempty"`
		Path        string   `json:"path,omitempty"`
		Suggestions []string `json:"suggestions,omitempty"`
		Cause       string   `json:"cause,omitempty"`
	}{
		Kind:        e.Kind,
		Code:        e.Code,
		Message:     e.Message,
		Severity:    e.Severity,
		Node:        e.Node,
		Path:        e.Path,
		Suggestions: e.Suggestions,
		Cause:       cause,
	})
}

// As extracts a BuildError from an error chain
func As(err error) (*BuildError, bool) {
	var be *BuildError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsConfiguration reports whether err is a configuration error
func IsConfiguration(err error) bool {
	be, ok := As(err)
	return ok && be.Kind == KindConfiguration
}

// IsFilesystem reports whether err is a filesystem error
func IsFilesystem(err error) bool {
	be, ok := As(err)
	return ok && be.Kind == KindFilesystem
}

// HasCode reports whether err carries the given code
func HasCode(err error, code string) bool {
	be, ok := As(err)
	return ok && be.Code == code
}
