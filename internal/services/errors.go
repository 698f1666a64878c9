package services

import (
	"fmt"
)

// ValidationError reports a rejected input field. Nothing has been uploaded
// or written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}

var (
	ErrMissingImage = &ValidationError{Field: "image", Reason: "is a required field"}
	ErrInvalidSlug  = &ValidationError{Field: "slug", Reason: "must be a non-empty string"}
)

// ReferentialError means a booking named an event that does not exist.
type ReferentialError struct {
	EventID int64
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("event %d does not exist", e.EventID)
}

// UpstreamError wraps a failure of the image store.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "image upload failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
