//go:build !oto

package audio

import "time"

// DefaultDevice returns the output used by the client binary. Builds without
// the oto tag have no sound card support.
func DefaultDevice() (Device, error) {
	return NullDevice{Duration: 2 * time.Second}, nil
}
