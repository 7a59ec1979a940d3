// Package common defines shared constants and sentinel errors used across
// dadgen components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")

	// Validation errors (fail fast, before any network call).
	ErrInvalidArgument = errors.New("invalid argument")

	// Provisioning flow errors.
	ErrNoDomains     = errors.New("no domains available")
	ErrPollTimeout   = errors.New("verification email timeout")
	ErrRequestFailed = errors.New("request rejected by server")
)
