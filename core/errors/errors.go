// Package errors provides standardized error types and helpers for the annago codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidType indicates a value that does not match its declared type
	ErrInvalidType = errors.New("invalid type")
	// ErrNegativeValue indicates a negative value where only non-negative is valid
	ErrNegativeValue = errors.New("negative value")
	// ErrUnsupportedExtension indicates an unrecognized file extension
	ErrUnsupportedExtension = errors.New("unsupported extension")
	// ErrEncoding indicates file content in an unexpected text encoding
	ErrEncoding = errors.New("encoding error")
	// ErrHierarchy indicates a violated parent/child tier constraint
	ErrHierarchy = errors.New("hierarchy constraint violated")
	// ErrEmpty indicates an operation produced nothing actionable
	ErrEmpty = errors.New("empty result")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// TypeError represents content that cannot be coerced to its declared type,
// or a value of the wrong kind passed where another was expected.
type TypeError struct {
	Value    string // String form of the offending value
	Expected string // Expected type or kind (e.g., "int", "Interval")
	Err      error  // Underlying error, if any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value %q is not of the expected type %s", e.Value, e.Expected)
}

func (e *TypeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidType
}

// ValueError represents an out-of-range value, typically a negative
// coordinate or radius where only non-negative is valid.
type ValueError struct {
	Name  string // Name of the value (e.g., "radius", "midpoint")
	Value float64
	Err   error // Underlying error, if any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %s: expected a non-negative value", e.Value, e.Name)
}

func (e *ValueError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNegativeValue
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "tier", "annotation", "format")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ExtensionError represents an unrecognized file extension on read/write dispatch.
type ExtensionError struct {
	Path      string // File path involved
	Extension string // The unrecognized extension
	Err       error  // Underlying error, if any
}

func (e *ExtensionError) Error() string {
	if e.Extension != "" {
		return fmt.Sprintf("unknown extension %q for file %s", e.Extension, e.Path)
	}
	return fmt.Sprintf("missing extension for file %s", e.Path)
}

func (e *ExtensionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupportedExtension
}

// EncodingError represents file content that is not valid in the expected
// text encoding (UTF-8 unless the format declares otherwise).
type EncodingError struct {
	Path     string // File path involved
	Encoding string // Expected encoding (e.g., "UTF-8")
	Err      error  // Underlying error, if any
}

func (e *EncodingError) Error() string {
	enc := e.Encoding
	if enc == "" {
		enc = "UTF-8"
	}
	return fmt.Sprintf("file %s is not a valid %s file", e.Path, enc)
}

func (e *EncodingError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrEncoding
}

// HierarchyError represents a mutation or link creation that would violate
// a TimeAlignment or TimeAssociation constraint between two tiers.
type HierarchyError struct {
	Parent string // Parent tier name
	Child  string // Child tier name
	Link   string // Link type ("TimeAlignment" or "TimeAssociation")
	Reason string // Why the constraint is violated
	Err    error  // Underlying error, if any
}

func (e *HierarchyError) Error() string {
	if e.Link != "" {
		return fmt.Sprintf("%s constraint violated between parent %q and child %q: %s",
			e.Link, e.Parent, e.Child, e.Reason)
	}
	return fmt.Sprintf("hierarchy constraint violated between %q and %q: %s",
		e.Parent, e.Child, e.Reason)
}

func (e *HierarchyError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrHierarchy
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents malformed per-format syntax, reported with a line
// number when the format is line-oriented.
type ParseError struct {
	Format  string // Format being parsed (e.g., "TextGrid", "XRA", "CSV")
	Path    string // File path, if applicable
	Line    int    // 1-indexed line number, 0 if not applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s at %s line %d: %s", e.Format, e.Path, e.Line, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// EmptyError represents an operation that produced nothing actionable,
// such as a tier filter with no matching annotation.
type EmptyError struct {
	Operation string // Operation that produced nothing
	Err       error  // Underlying error, if any
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("%s produced an empty result", e.Operation)
}

func (e *EmptyError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrEmpty
}

// UnsupportedError represents an unsupported feature or format capability.
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewType creates a TypeError
func NewType(value, expected string) *TypeError {
	return &TypeError{
		Value:    value,
		Expected: expected,
	}
}

// NewValue creates a ValueError
func NewValue(name string, value float64) *ValueError {
	return &ValueError{
		Name:  name,
		Value: value,
	}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewExtension creates an ExtensionError
func NewExtension(path, extension string) *ExtensionError {
	return &ExtensionError{
		Path:      path,
		Extension: extension,
	}
}

// NewEncoding creates an EncodingError
func NewEncoding(path, encoding string, err error) *EncodingError {
	return &EncodingError{
		Path:     path,
		Encoding: encoding,
		Err:      err,
	}
}

// NewHierarchy creates a HierarchyError
func NewHierarchy(link, parent, child, reason string) *HierarchyError {
	return &HierarchyError{
		Parent: parent,
		Child:  child,
		Link:   link,
		Reason: reason,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path string, line int, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Line:    line,
		Message: message,
	}
}

// NewEmpty creates an EmptyError
func NewEmpty(operation string) *EmptyError {
	return &EmptyError{
		Operation: operation,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
