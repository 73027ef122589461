package errors

import (
	"errors"
	"fmt"
)

// ValidationError means caller input violated a precondition before any
// write happened. It is surfaced verbatim and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for a named input field.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a data-store failure with the operation name and the
// key parameters it was called with, for diagnosis.
type StoreError struct {
	Op  string // e.g. "shop.upsertByCanonicalKey"
	Key string // the unique-key parameters, e.g. "canonical_key=cafe_luna__..."
	Err error
}

func (e *StoreError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStore wraps err as a StoreError.
func NewStore(op, key string, err error) error {
	return &StoreError{Op: op, Key: key, Err: err}
}

// IsStore reports whether err is (or wraps) a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// PipelineStage names a stage of the review submission pipeline.
type PipelineStage string

const (
	StageMediaUpload   PipelineStage = "media_upload"
	StageMediaBackfill PipelineStage = "media_backfill"
	StageCoverPhoto    PipelineStage = "cover_photo"
	StageAggregate     PipelineStage = "aggregate_recompute"
)

// PipelineError means the review row committed but a later stage failed.
// The review id stays valid and queryable; nothing is rolled back.
type PipelineError struct {
	Stage    PipelineStage
	ReviewID uint
	Err      error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("review %d committed but stage %s failed: %v", e.ReviewID, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipeline wraps err as a PipelineError for the given stage.
func NewPipeline(stage PipelineStage, reviewID uint, err error) error {
	return &PipelineError{Stage: stage, ReviewID: reviewID, Err: err}
}

// AsPipeline extracts a PipelineError if err carries one.
func AsPipeline(err error) (*PipelineError, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
