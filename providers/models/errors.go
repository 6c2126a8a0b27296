package models

import "errors"

// Sentinel errors shared by all providers - use with errors.Is().
var (
	// ErrNotFound indicates the requested path has no backing content.
	ErrNotFound = errors.New("content not found")

	// ErrUnavailable indicates the provider or service is unreachable or
	// returned an unexpected shape.
	ErrUnavailable = errors.New("service unavailable")
)
