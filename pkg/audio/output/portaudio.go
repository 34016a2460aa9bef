//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output using PortAudio
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/harperreed/noisegen-go/pkg/audio"
)

// PortAudio output implementation
type PortAudio struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	queue  *slotQueue
	ready  bool
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Sink {
	return &PortAudio{}
}

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format, slots, slotSamples int) error {
	if err := checkFormat(format, slots, slotSamples); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: failed to initialize portaudio: %v", ErrDeviceUnavailable, err)
	}

	queue := newSlotQueue(slots)
	framesPerBuffer := slotSamples / format.Channels

	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), framesPerBuffer, func(out []int16) {
		queue.readSamples(out)
	})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: failed to open stream: %v", ErrDeviceUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("%w: failed to start stream: %v", ErrDeviceUnavailable, err)
	}

	p.stream = stream
	p.queue = queue
	p.ready = true

	log.Printf("Audio output initialized: %s (portaudio, %d x %v)",
		format, slots, format.Duration(slotSamples))

	return nil
}

func (p *PortAudio) Prepare(slot int) error {
	if q := p.activeQueue(); q != nil {
		return q.prepare(slot)
	}
	return ErrNotOpen
}

func (p *PortAudio) Submit(slot int, pcm []int16) error {
	if q := p.activeQueue(); q != nil {
		return q.submit(slot, pcm)
	}
	return fmt.Errorf("%w: %w", ErrSubmitFailed, ErrNotOpen)
}

func (p *PortAudio) IsComplete(slot int) bool {
	if q := p.activeQueue(); q != nil {
		return q.isComplete(slot)
	}
	return true
}

func (p *PortAudio) Unprepare(slot int) error {
	if q := p.activeQueue(); q != nil {
		return q.unprepare(slot)
	}
	return ErrNotOpen
}

// Reset stops the stream and drops queued slots
func (p *PortAudio) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		log.Printf("Warning: stream stop error: %v", err)
	}
	p.queue.reset()
	return nil
}

// Close releases resources
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return nil
	}
	p.ready = false

	if err := p.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}

func (p *PortAudio) activeQueue() *slotQueue {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return nil
	}
	return p.queue
}
