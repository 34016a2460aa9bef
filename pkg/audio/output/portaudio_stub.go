//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Sink {
	return &PortAudio{}
}

var errPortAudioDisabled = fmt.Errorf("%w: PortAudio support not enabled (build with -tags portaudio)", ErrDeviceUnavailable)

// Open always fails in builds without PortAudio
func (p *PortAudio) Open(format audio.Format, slots, slotSamples int) error {
	return errPortAudioDisabled
}

func (p *PortAudio) Prepare(slot int) error { return ErrNotOpen }

func (p *PortAudio) Submit(slot int, pcm []int16) error {
	return fmt.Errorf("%w: %w", ErrSubmitFailed, ErrNotOpen)
}

func (p *PortAudio) IsComplete(slot int) bool { return true }

func (p *PortAudio) Unprepare(slot int) error { return ErrNotOpen }

func (p *PortAudio) Reset() error { return nil }

func (p *PortAudio) Close() error { return nil }
