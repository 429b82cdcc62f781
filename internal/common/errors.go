// Package common defines shared sentinel errors used across famlist
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors surfaced at the join/create boundary.
	ErrorValidation = errors.New("validation error")

	// Join-specific error, kept distinct from generic failures so the UI
	// can word it differently.
	ErrorNoSuchGroup = errors.New("no such group")
)
