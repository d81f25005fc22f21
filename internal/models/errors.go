package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrDecodeFailure      = errors.New("failed to decode text file")
	ErrExtractionFailure  = errors.New("failed to extract text")
	ErrScoringFailure     = errors.New("AI processing failed")
	ErrNoFilesSupplied    = errors.New("no files uploaded")
	ErrSessionNotFound    = errors.New("results not found or expired")
	ErrSessionLoadFailure = errors.New("failed to load results")
)

// ExtractError is a per-file extraction failure. Kind is one of
// ErrUnsupportedFormat, ErrDecodeFailure or ErrExtractionFailure.
type ExtractError struct {
	Kind error
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *ExtractError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
