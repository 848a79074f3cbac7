// Package errors provides custom error types for the harmonize system.
// These errors enable programmatic error checking across the pipeline
// boundary: configuration and type failures, load/save failures, and
// data-shape mismatches are distinguishable without string matching.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the harmonize system.
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file format the loader cannot read
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSchemaMismatch indicates that a dataset is missing a column an
	// operation requires, e.g. a join key absent after preparation
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a configuration or type validation failure.
// The pipeline raises it before any work is done: a nil dataset where a
// dataset is required, an empty column name, an unknown schema name.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s (got %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// SchemaError represents a data-shape mismatch: an operation needed a
// column the dataset does not carry.
type SchemaError struct {
	Operation string
	Column    string
	Dataset   string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Dataset != "" {
		return fmt.Sprintf("%s: column %s missing from %s", e.Operation, e.Column, e.Dataset)
	}
	return fmt.Sprintf("%s: column %s missing", e.Operation, e.Column)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(operation, column, dataset string) *SchemaError {
	return &SchemaError{Operation: operation, Column: column, Dataset: dataset}
}

// ParseError represents an error when parsing data formats.
type ParseError struct {
	Format  string // "csv", "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations.
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// PipelineError represents a failure in a named pipeline stage. It carries
// the stage and entity so a failed run reports which step rejected the data.
type PipelineError struct {
	Pipeline string // "local_material", "process_order", "union"
	Stage    string // "prepare", "integrate", "post_process", "normalize", "save"
	Entity   string
	Err      error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s pipeline failed at %s (%s): %v", e.Pipeline, e.Stage, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s pipeline failed at %s: %v", e.Pipeline, e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new PipelineError
func NewPipelineError(pipeline, stage, entity string, err error) *PipelineError {
	return &PipelineError{Pipeline: pipeline, Stage: stage, Entity: entity, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupportedFormat checks if an error is an unsupported format error
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsSchemaMismatch checks if an error is a schema mismatch error
func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
