// Package common defines sentinel errors shared by the client and server
// layers of FieldKeeper. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors.
	ErrInvalidRecord       = errors.New("invalid record")
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Playback errors.
	ErrStaleRequest = errors.New("playback request superseded")
	ErrNotAudio     = errors.New("response is not audio")

	// Transport errors.
	ErrUnavailable = errors.New("server unavailable")
)
