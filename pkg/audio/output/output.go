// ABOUTME: Audio output interface definition
// ABOUTME: Common slot-based interface for audio playback backends
package output

import (
	"errors"
	"fmt"
	"sort"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

var (
	// ErrDeviceUnavailable means no output device could be opened
	ErrDeviceUnavailable = errors.New("audio output device unavailable")

	// ErrFormatUnsupported means the device rejected the requested format
	ErrFormatUnsupported = errors.New("audio format unsupported")

	// ErrSubmitFailed means a buffer could not be queued for playback
	ErrSubmitFailed = errors.New("audio buffer submit failed")

	// ErrNotOpen is returned by slot operations on a closed sink
	ErrNotOpen = errors.New("output not opened")

	// ErrInvalidSlot is returned for slot indexes outside the opened range
	ErrInvalidSlot = errors.New("invalid buffer slot")
)

// Sink represents a slot-based audio output device
type Sink interface {
	// Open initializes the device for slots buffers of slotSamples
	// interleaved samples each
	Open(format audio.Format, slots, slotSamples int) error

	// Prepare registers a slot with the device before its first submit
	Prepare(slot int) error

	// Submit queues pcm for playback. The sink may keep a reference to pcm
	// until IsComplete(slot) reports true.
	Submit(slot int, pcm []int16) error

	// IsComplete reports whether the device has finished with the slot
	IsComplete(slot int) bool

	// Unprepare releases a slot; the slot must be complete or reset
	Unprepare(slot int) error

	// Reset stops playback and marks every queued slot complete
	Reset() error

	// Close releases device resources
	Close() error
}

// Factory creates an unopened sink
type Factory func() Sink

var backends = map[string]Factory{
	"oto":       NewOto,
	"malgo":     NewMalgo,
	"portaudio": NewPortAudio,
	"null":      NewNull,
}

// New returns an unopened sink for the named device backend
func New(backend string) (Sink, error) {
	factory, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown audio backend %q (available: %v)", backend, Backends())
	}
	return factory(), nil
}

// Backends lists the device backend names accepted by New
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkFormat maps an invalid format to ErrFormatUnsupported
func checkFormat(format audio.Format, slots, slotSamples int) error {
	if err := format.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrFormatUnsupported, err)
	}
	if slots <= 0 {
		return fmt.Errorf("%w: need at least one buffer slot", ErrFormatUnsupported)
	}
	if slotSamples <= 0 || slotSamples%format.Channels != 0 {
		return fmt.Errorf("%w: slot size %d is not a whole number of frames", ErrFormatUnsupported, slotSamples)
	}
	return nil
}
