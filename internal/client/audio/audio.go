// Package audio loads remote audio and plays it through an output device.
package audio

import (
	"context"
)

// Handle is one loaded, playable sound.
type Handle interface {
	// Play starts playback and returns without waiting for it to finish.
	Play() error
	// Stop halts playback. Done is closed afterwards.
	Stop()
	// Release frees the underlying resources. It is safe to call more than
	// once and implies Stop.
	Release()
	// Done is closed when playback finishes or is stopped.
	Done() <-chan struct{}
}

// Loader turns a resource locator into a playable handle.
type Loader interface {
	Load(ctx context.Context, locator string) (Handle, error)
}

// Device opens encoded audio for playback.
type Device interface {
	Open(data []byte) (Handle, error)
}
