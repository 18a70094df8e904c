package scalegen

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeUnsupportedVersion       ErrorCode = "unsupported_metadata_version"
	CodeDanglingTypeReference    ErrorCode = "dangling_type_reference"
	CodeMissingDeclaredName      ErrorCode = "missing_declared_name"
	CodeInconsistentFieldNaming  ErrorCode = "inconsistent_field_naming"
	CodeUnrepresentablePrimitive ErrorCode = "unrepresentable_primitive"
	CodeCyclicTypeDefinition     ErrorCode = "cyclic_type_definition"
	CodeInvalidMetadata          ErrorCode = "invalid_metadata"
	CodeInternal                 ErrorCode = "internal"
)

// Sentinel errors for use with errors.Is. Any *Error with the same code matches.
var (
	ErrUnsupportedVersion       = &Error{Code: CodeUnsupportedVersion}
	ErrDanglingTypeReference    = &Error{Code: CodeDanglingTypeReference}
	ErrMissingDeclaredName      = &Error{Code: CodeMissingDeclaredName}
	ErrInconsistentFieldNaming  = &Error{Code: CodeInconsistentFieldNaming}
	ErrUnrepresentablePrimitive = &Error{Code: CodeUnrepresentablePrimitive}
	ErrCyclicTypeDefinition     = &Error{Code: CodeCyclicTypeDefinition}
	ErrInvalidMetadata          = &Error{Code: CodeInvalidMetadata}
)

// Error is the single error type produced by generation.
// Every Error is fatal for the run that produced it.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new generation error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new generation error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithDetails returns a new Error with the provided map merged into details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
	}
}

// CodeOf returns the code of the first *Error in err's chain.
// Errors that did not originate here report CodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsInputError reports whether the code describes malformed or unsupported input
// rather than a failure of the tool itself.
func (c ErrorCode) IsInputError() bool {
	switch c {
	case CodeInternal, "":
		return false
	default:
		return true
	}
}

// ExitCode maps an ErrorCode to a process exit status.
func (c ErrorCode) ExitCode() int {
	switch {
	case c == "":
		return 0
	case c.IsInputError():
		return 2
	default:
		return 1
	}
}

// HTTPStatus maps an ErrorCode to an HTTP status code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeUnsupportedVersion, CodeInvalidMetadata:
		return http.StatusBadRequest
	case CodeDanglingTypeReference, CodeMissingDeclaredName, CodeInconsistentFieldNaming,
		CodeCyclicTypeDefinition:
		return http.StatusUnprocessableEntity
	case CodeUnrepresentablePrimitive:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// FromValidation converts validator errors into a single invalid_metadata Error.
// Other errors are returned unchanged.
func FromValidation(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	details := make(map[string]any, len(valErrs))
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := formatValidationError(ve)
		details[ve.Namespace()] = msg
		messages = append(messages, ve.Namespace()+": "+msg)
	}
	return &Error{
		Code:    CodeInvalidMetadata,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s elements", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "eq":
		return fmt.Sprintf("must equal %s", ve.Param())
	case "unique_ids":
		return "type ids must be unique"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
