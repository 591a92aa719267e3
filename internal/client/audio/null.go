package audio

import (
	"sync"
	"time"
)

// NullDevice accepts any audio and reports playback for a fixed duration
// without producing sound. It is the default output when no sound card is
// built in.
type NullDevice struct {
	Duration time.Duration
}

func (d NullDevice) Open(data []byte) (Handle, error) {
	return newNullHandle(d.Duration), nil
}

type nullHandle struct {
	duration time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	done    chan struct{}
	once    sync.Once
}

func newNullHandle(d time.Duration) *nullHandle {
	return &nullHandle{duration: d, done: make(chan struct{})}
}

func (h *nullHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return nil
	}
	h.started = true
	select {
	case <-h.done:
		return nil
	default:
	}
	h.timer = time.AfterFunc(h.duration, h.finish)
	return nil
}

func (h *nullHandle) Stop() {
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.mu.Unlock()
	h.finish()
}

func (h *nullHandle) Release() { h.Stop() }

func (h *nullHandle) Done() <-chan struct{} { return h.done }

func (h *nullHandle) finish() {
	h.once.Do(func() { close(h.done) })
}
