package service

import (
	"errors"
	"strings"
	"time"

	"github.com/guestbook-api/internal/repository"
	"github.com/guestbook-api/internal/validation"
)

var (
	// ErrPostNotFound is returned when an id does not reference an existing post
	ErrPostNotFound = errors.New("post not found")

	// ErrRateLimited is returned when a caller exceeds its request budget
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RateLimitError is a denied request. It matches ErrRateLimited.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return ErrRateLimited.Error() + ", retry after " + e.ResetAt.UTC().Format(time.RFC3339)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// ValidationError reports every field that failed validation
type ValidationError struct {
	Errors []validation.ValidationError
}

func (e *ValidationError) Error() string {
	fields := validation.Fields(e.Errors)
	return "validation failed: " + strings.Join(fields, ", ")
}

func newValidationError(errs []validation.ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// constraintError converts a store CHECK violation into a ValidationError
func constraintError(cerr *repository.ConstraintError) error {
	return &ValidationError{Errors: []validation.ValidationError{{
		Field:   cerr.Column(),
		Message: "rejected by store constraint " + cerr.Constraint,
	}}}
}
