// ABOUTME: Buffer pool engine
// ABOUTME: Reclaims completed buffers, refills them and resubmits to the sink
package engine

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/harperreed/noisegen-go/pkg/audio/generator"
	"github.com/harperreed/noisegen-go/pkg/audio/output"
)

// Engine owns the buffer pool and the generators mixed into it
type Engine struct {
	id   uuid.UUID
	cfg  Config
	sink output.Sink
	gens []generator.Generator

	mu     sync.Mutex
	mix    []float32
	slots  []slot
	opened bool
	closed bool
	stats  Stats

	masterVolume  atomic.Uint32 // math.Float32bits
	masterEnabled atomic.Bool

	closeOnce sync.Once
	closeErr  error
}

// UpdateStats reports what one Update call did
type UpdateStats struct {
	Reclaimed int
	Submitted int
	Failed    int
}

// Stats tracks engine totals since construction
type Stats struct {
	Updates   uint64
	Reclaimed uint64
	Submitted uint64
	Failed    uint64
}

// New opens sink, fills every buffer and submits them all so the device
// starts with a full queue. On error everything already acquired is
// released.
func New(sink output.Sink, cfg Config, gens ...generator.Generator) (*Engine, error) {
	if sink == nil {
		return nil, errors.New("engine: nil sink")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		id:    uuid.New(),
		cfg:   cfg,
		sink:  sink,
		gens:  append([]generator.Generator(nil), gens...),
		mix:   make([]float32, cfg.SamplesPerBuffer()),
		slots: make([]slot, cfg.BufferCount),
	}
	e.masterVolume.Store(math.Float32bits(1))
	e.masterEnabled.Store(true)
	if cfg.Master != nil {
		e.SetMasterVolume(cfg.Master.Volume)
		e.SetMasterEnabled(cfg.Master.Enabled)
	}

	samples := cfg.SamplesPerBuffer()
	if err := sink.Open(cfg.Format(), cfg.BufferCount, samples); err != nil {
		return nil, fmt.Errorf("engine: open output: %w", err)
	}
	e.opened = true

	for i := range e.slots {
		e.slots[i].pcm = make([]int16, samples)
		if err := sink.Prepare(i); err != nil {
			e.Close()
			return nil, fmt.Errorf("engine: prepare buffer %d: %w", i, err)
		}
	}

	log.Printf("Engine %s started: %s, %d buffers x %v (%d samples)",
		e.id, cfg.Format(), cfg.BufferCount, cfg.BufferDuration(), samples)

	e.mu.Lock()
	e.fillFree(&UpdateStats{})
	e.mu.Unlock()

	return e, nil
}

// ID identifies this engine instance in logs
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Config returns the construction parameters
func (e *Engine) Config() Config {
	return e.cfg
}

// Generators returns the generators in mixing order
func (e *Engine) Generators() []generator.Generator {
	return append([]generator.Generator(nil), e.gens...)
}

// Generator returns the i-th generator, or nil if out of range
func (e *Engine) Generator(i int) generator.Generator {
	if i < 0 || i >= len(e.gens) {
		return nil
	}
	return e.gens[i]
}

// MasterVolume returns the gain applied after mixing
func (e *Engine) MasterVolume() float32 {
	return math.Float32frombits(e.masterVolume.Load())
}

// SetMasterVolume sets the master gain, clamped to [0, 1]
func (e *Engine) SetMasterVolume(v float32) {
	if v != v || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	e.masterVolume.Store(math.Float32bits(v))
}

// MasterEnabled reports whether generators are mixed at all
func (e *Engine) MasterEnabled() bool {
	return e.masterEnabled.Load()
}

// SetMasterEnabled mutes or unmutes the whole mix. Buffers keep flowing
// either way.
func (e *Engine) SetMasterEnabled(enabled bool) {
	e.masterEnabled.Store(enabled)
}

// SlotStates returns a snapshot of every buffer's state
func (e *Engine) SlotStates() []SlotState {
	e.mu.Lock()
	defer e.mu.Unlock()

	states := make([]SlotState, len(e.slots))
	for i := range e.slots {
		states[i] = e.slots[i].state
	}
	return states
}

// Stats returns totals since construction
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Update reclaims buffers the sink has finished with, refills and resubmits
// them. It never waits on the device.
func (e *Engine) Update() UpdateStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	var st UpdateStats
	if e.closed {
		return st
	}

	for i := range e.slots {
		if e.slots[i].state == Submitted && e.sink.IsComplete(i) {
			e.slots[i].state = Free
			st.Reclaimed++
		}
	}

	e.fillFree(&st)

	e.stats.Updates++
	e.stats.Reclaimed += uint64(st.Reclaimed)

	if e.cfg.Debug && st.Reclaimed > 0 {
		log.Printf("Engine %s update #%d: reclaimed=%d submitted=%d failed=%d",
			e.id, e.stats.Updates, st.Reclaimed, st.Submitted, st.Failed)
	}
	return st
}

// fillFree renders and submits every free slot. Caller holds e.mu.
func (e *Engine) fillFree(st *UpdateStats) {
	for i := range e.slots {
		s := &e.slots[i]
		if s.state != Free {
			continue
		}

		e.render(s.pcm)

		// The slot belongs to the sink from here on, even if submit failed;
		// it only comes back once the sink reports it complete.
		s.state = Submitted
		if err := e.sink.Submit(i, s.pcm); err != nil {
			st.Failed++
			e.stats.Failed++
			log.Printf("Engine %s: submit buffer %d failed: %v", e.id, i, err)
			continue
		}
		st.Submitted++
		e.stats.Submitted++
	}
}

// Close stops playback and releases the sink. Safe to call more than once
// and on a nil engine.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}

	e.closeOnce.Do(func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		e.closed = true
		if !e.opened {
			return
		}

		var errs []error
		if err := e.sink.Reset(); err != nil {
			errs = append(errs, fmt.Errorf("reset output: %w", err))
		}
		for i := range e.slots {
			if err := e.sink.Unprepare(i); err != nil {
				errs = append(errs, fmt.Errorf("release buffer %d: %w", i, err))
			}
			e.slots[i] = slot{}
		}
		e.mix = nil
		if err := e.sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output: %w", err))
		}
		e.opened = false

		e.closeErr = errors.Join(errs...)
		log.Printf("Engine %s closed: %d buffers submitted, %d failed",
			e.id, e.stats.Submitted, e.stats.Failed)
	})

	return e.closeErr
}
