// Package errors provides the error types shared by the partwise packages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a part, measure or entry was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported document shape or feature
	ErrUnsupported = errors.New("unsupported")
	// ErrMalformedDocument indicates the input is not well-formed markup
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUnsupportedRoot indicates a well-formed document with the wrong root element
	ErrUnsupportedRoot = errors.New("unsupported root element")
)

// NotFoundError represents a missing part, measure or entry
type NotFoundError struct {
	Resource string // Type of resource (e.g., "part", "measure", "entry")
	ID       string // Identifier or index of the resource
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

// ParseError represents a document that could not be decoded
type ParseError struct {
	Format  string // Format being parsed (e.g., "XML", "MusicXML", "MXL")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
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

// UnsupportedError represents an unsupported feature or document shape
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

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewMalformed creates a ParseError that matches ErrMalformedDocument.
func NewMalformed(format string, cause error) *ParseError {
	msg := "document is not well-formed"
	err := ErrMalformedDocument
	if cause != nil {
		msg = cause.Error()
		err = fmt.Errorf("%w: %v", ErrMalformedDocument, cause)
	}
	return &ParseError{
		Format:  format,
		Message: msg,
		Err:     err,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// NewUnsupportedRoot creates an UnsupportedError that matches ErrUnsupportedRoot.
func NewUnsupportedRoot(name string) *UnsupportedError {
	return &UnsupportedError{
		Feature: "root element",
		Reason:  fmt.Sprintf("<%s> (expected <score-partwise>)", name),
		Err:     ErrUnsupportedRoot,
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
