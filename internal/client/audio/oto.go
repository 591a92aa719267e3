//go:build oto

package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

const (
	SampleRate   = 22050
	ChannelCount = 2
)

// OtoDevice decodes MP3 and plays it through the system sound card. Only one
// oto context may exist per process, so create a single OtoDevice.
type OtoDevice struct {
	ctx *oto.Context
}

// NewOtoDevice initializes the audio context and waits until it is ready.
func NewOtoDevice() (*OtoDevice, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio context: %w", err)
	}
	<-ready
	return &OtoDevice{ctx: ctx}, nil
}

func (d *OtoDevice) Open(data []byte) (Handle, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	if dec.SampleRate() != SampleRate {
		return nil, fmt.Errorf("mp3: sample rate %d, device runs at %d", dec.SampleRate(), SampleRate)
	}
	return &otoHandle{
		player: d.ctx.NewPlayer(dec),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

type otoHandle struct {
	player *oto.Player

	mu       sync.Mutex
	started  bool
	released bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func (h *otoHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started || h.released {
		return nil
	}
	h.started = true
	h.player.Play()
	go h.watch()
	return nil
}

// watch polls the player until it drains or Stop is called.
func (h *otoHandle) watch() {
	defer close(h.done)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if !h.player.IsPlaying() {
				return
			}
		}
	}
}

func (h *otoHandle) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		started := h.started
		h.started = true
		h.mu.Unlock()

		h.player.Pause()
		close(h.stop)
		if !started {
			close(h.done)
		}
	})
}

func (h *otoHandle) Release() {
	h.Stop()
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true
	_ = h.player.Close()
}

func (h *otoHandle) Done() <-chan struct{} { return h.done }

// DefaultDevice returns the system sound card.
func DefaultDevice() (Device, error) {
	return NewOtoDevice()
}
