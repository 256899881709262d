// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Provider errors.
	ErrProviderConnection = errors.New("billing provider connection failed")
	ErrProviderRateLimit  = errors.New("billing provider rate limit exceeded")
	ErrInvalidAccount     = errors.New("invalid account")

	// Pipeline errors.
	ErrNoInputFiles = errors.New("no input files to merge")
	ErrFetchDropped = errors.New("download abandoned after retries")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)
