// ABOUTME: Oto-based audio output implementation
// ABOUTME: Feeds a persistent oto player from the slot queue
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/harperreed/noisegen-go/pkg/audio"
)

// oto allows one context per process, so it is shared across Oto sinks
var (
	otoMu         sync.Mutex
	otoSharedCtx  *oto.Context
	otoSharedRate int
)

// Oto output implementation using oto library
type Oto struct {
	mu     sync.Mutex
	player *oto.Player
	queue  *slotQueue
	format audio.Format
	ready  bool
}

// NewOto creates a new Oto output
func NewOto() Sink {
	return &Oto{}
}

// otoContext returns the process-wide oto context, creating it on first use
func otoContext(format audio.Format) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoSharedCtx != nil {
		if otoSharedRate != format.SampleRate {
			// oto cannot reinitialise with a new format in the same process
			return nil, fmt.Errorf("%w: oto already running at %dHz, requested %dHz",
				ErrFormatUnsupported, otoSharedRate, format.SampleRate)
		}
		if err := otoSharedCtx.Resume(); err != nil {
			return nil, fmt.Errorf("%w: resume oto context: %v", ErrDeviceUnavailable, err)
		}
		log.Printf("Audio output already initialized with same format, reusing context")
		return otoSharedCtx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create oto context: %v", ErrDeviceUnavailable, err)
	}
	<-readyChan

	otoSharedCtx = ctx
	otoSharedRate = format.SampleRate
	return ctx, nil
}

// Open initializes the output device
func (o *Oto) Open(format audio.Format, slots, slotSamples int) error {
	if err := checkFormat(format, slots, slotSamples); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ready {
		return fmt.Errorf("oto output already open")
	}

	ctx, err := otoContext(format)
	if err != nil {
		return err
	}

	o.queue = newSlotQueue(slots)
	o.format = format

	// The player pulls from the queue on oto's own goroutine
	o.player = ctx.NewPlayer(otoReader{o.queue})
	// Keep oto's internal buffer to one slot so completion tracks playback
	o.player.SetBufferSize(slotSamples * 2)
	o.player.Play()

	o.ready = true

	log.Printf("Audio output initialized: %s (oto, %d x %v)",
		format, slots, format.Duration(slotSamples))

	return nil
}

// otoReader adapts the slot queue to io.Reader for oto
type otoReader struct {
	queue *slotQueue
}

// Read never blocks; an empty queue plays silence
func (r otoReader) Read(p []byte) (int, error) {
	return r.queue.readBytes(p), nil
}

func (o *Oto) Prepare(slot int) error {
	if q := o.activeQueue(); q != nil {
		return q.prepare(slot)
	}
	return ErrNotOpen
}

func (o *Oto) Submit(slot int, pcm []int16) error {
	if q := o.activeQueue(); q != nil {
		return q.submit(slot, pcm)
	}
	return fmt.Errorf("%w: %w", ErrSubmitFailed, ErrNotOpen)
}

func (o *Oto) IsComplete(slot int) bool {
	if q := o.activeQueue(); q != nil {
		return q.isComplete(slot)
	}
	return true
}

func (o *Oto) Unprepare(slot int) error {
	if q := o.activeQueue(); q != nil {
		return q.unprepare(slot)
	}
	return ErrNotOpen
}

// Reset pauses the player and drops queued slots
func (o *Oto) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.ready {
		return nil
	}
	o.player.Pause()
	o.queue.reset()
	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.ready {
		return nil
	}

	var closeErr error
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			closeErr = fmt.Errorf("close oto player: %w", err)
		}
		o.player = nil
	}

	otoMu.Lock()
	if otoSharedCtx != nil {
		if err := otoSharedCtx.Suspend(); err != nil {
			log.Printf("Warning: oto suspend error: %v", err)
		}
	}
	otoMu.Unlock()

	o.ready = false
	return closeErr
}

// Underruns returns how many device reads found no queued audio
func (o *Oto) Underruns() uint64 {
	if q := o.activeQueue(); q != nil {
		return q.Underruns()
	}
	return 0
}

func (o *Oto) activeQueue() *slotQueue {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.ready {
		return nil
	}
	return o.queue
}
