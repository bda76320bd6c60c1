// Package errors provides structured error handling and the warning system
// used across featselect. Error types carry stack traces via cockroachdb/errors
// and marshal themselves into zerolog events for structured log output.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("featselect-Warning: %v\n", w)
	}
	// zerolog warn func, injected lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the process-wide warning handler. Warnings are
// non-fatal conditions (skipped features, clamped retain counts) that should
// surface without aborting a run.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings through a zerolog-backed logger.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// FeatureSkippedWarning is raised when a per-feature method cannot evaluate a
// feature and moves on to the next one.
type FeatureSkippedWarning struct {
	Method  string
	Feature string
	Reason  string
}

func (w *FeatureSkippedWarning) Error() string {
	return fmt.Sprintf("%s: skipping feature %q: %s", w.Method, w.Feature, w.Reason)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *FeatureSkippedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("method", w.Method).
		Str("feature", w.Feature).
		Str("reason", w.Reason).
		Str("type", "FeatureSkippedWarning")
}

// NewFeatureSkippedWarning creates a new FeatureSkippedWarning.
func NewFeatureSkippedWarning(method, feature, reason string) *FeatureSkippedWarning {
	return &FeatureSkippedWarning{Method: method, Feature: feature, Reason: reason}
}

// RetainCountClampedWarning is raised when a requested retain count exceeds
// the number of available features and is clamped to it.
type RetainCountClampedWarning struct {
	Requested int
	Available int
}

func (w *RetainCountClampedWarning) Error() string {
	return fmt.Sprintf("retain count %d exceeds %d available features; clamped", w.Requested, w.Available)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *RetainCountClampedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("requested", w.Requested).
		Int("available", w.Available).
		Str("type", "RetainCountClampedWarning")
}

// NewRetainCountClampedWarning creates a new RetainCountClampedWarning.
func NewRetainCountClampedWarning(requested, available int) *RetainCountClampedWarning {
	return &RetainCountClampedWarning{Requested: requested, Available: available}
}

// UnmatchedLabelWarning is raised when label recoding leaves class values that
// matched neither the positive nor the negative token.
type UnmatchedLabelWarning struct {
	Column    string
	Unmatched int
}

func (w *UnmatchedLabelWarning) Error() string {
	return fmt.Sprintf("column %q: %d label values matched neither the positive nor the negative token and were left unchanged", w.Column, w.Unmatched)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *UnmatchedLabelWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Int("unmatched", w.Unmatched).
		Str("type", "UnmatchedLabelWarning")
}

// NewUnmatchedLabelWarning creates a new UnmatchedLabelWarning.
func NewUnmatchedLabelWarning(column string, unmatched int) *UnmatchedLabelWarning {
	return &UnmatchedLabelWarning{Column: column, Unmatched: unmatched}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// SchemaError reports a column or feature that the input data does not have.
type SchemaError struct {
	Source string // file or table the column was expected in
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("featselect: %s: column %q not found", e.Source, e.Column)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		Str("column", e.Column).
		Str("type", "SchemaError")
}

// NewSchemaError creates a new SchemaError with a stack trace attached.
func NewSchemaError(source, column string) error {
	err := &SchemaError{Source: source, Column: column}
	return errors.WithStack(err)
}

// ValidationError reports a request parameter that failed validation before
// dispatch. It marks configuration mistakes, as opposed to engine failures.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("featselect: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports data that is unusable for the requested operation, such
// as negative feature values passed to Chi2.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("featselect: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError wraps a failure inside a statistical engine. Whole-table methods
// fail atomically with this error; no output is written.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("featselect: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("featselect: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when a table has no rows or no features left.
	ErrEmptyData = New("empty data")

	// ErrUnknownMethod is returned when the method name matches no selector.
	ErrUnknownMethod = New("unknown feature selection method")
)
