// Package common defines sentinel errors shared by client and server
// packages of cooksocial. Callers match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Configuration errors.
	ErrorUnknownBackend = errors.New("unknown backend")
)
