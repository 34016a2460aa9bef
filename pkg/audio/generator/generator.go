// ABOUTME: Generator interface and shared per-source controls
// ABOUTME: Atomic enabled/volume state safe for UI writes during a fill
package generator

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
)

// DefaultVolume is the volume every generator starts at
const DefaultVolume = 0.5

// Generator produces an additive stereo contribution to a mix buffer
type Generator interface {
	// Name returns the display name
	Name() string

	// Enabled reports whether the engine should mix this source
	Enabled() bool
	SetEnabled(enabled bool)

	// Volume returns the source gain in [0, 1]
	Volume() float32
	SetVolume(volume float32)

	// FillBuffer adds count interleaved stereo samples into buf starting at
	// offset. count is even. sampleRate converts frequencies to phase.
	FillBuffer(buf []float32, offset, count, sampleRate int)
}

// controls is the name/enabled/volume state every generator carries.
// Each generator owns its own copy.
type controls struct {
	name    string
	enabled atomic.Bool
	volume  atomic.Uint32 // math.Float32bits
}

func (c *controls) setup(name string, o options) {
	c.name = name
	c.enabled.Store(o.enabled)
	c.volume.Store(math.Float32bits(clampVolume(o.volume)))
}

func (c *controls) Name() string { return c.name }

func (c *controls) Enabled() bool { return c.enabled.Load() }

func (c *controls) SetEnabled(enabled bool) { c.enabled.Store(enabled) }

func (c *controls) Volume() float32 { return math.Float32frombits(c.volume.Load()) }

// SetVolume stores volume clamped to [0, 1]
func (c *controls) SetVolume(volume float32) {
	c.volume.Store(math.Float32bits(clampVolume(volume)))
}

func clampVolume(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Option configures a generator at construction
type Option func(*options)

type options struct {
	name    string
	enabled bool
	volume  float32
	seed    *uint64
}

func defaultOptions() options {
	return options{volume: DefaultVolume}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithName overrides the display name
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithEnabled sets the initial enabled flag
func WithEnabled(enabled bool) Option {
	return func(o *options) { o.enabled = enabled }
}

// WithVolume sets the initial volume
func WithVolume(volume float32) Option {
	return func(o *options) { o.volume = volume }
}

// WithSeed makes the noise source deterministic
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = &seed }
}

func nameOr(o options, def string) string {
	if o.name != "" {
		return o.name
	}
	return def
}

// newRand returns a private PCG source, seeded from o.seed when present
func newRand(o options) *rand.Rand {
	if o.seed != nil {
		return rand.New(rand.NewPCG(*o.seed, *o.seed^0x9e3779b97f4a7c15))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// white returns a uniform sample in [-1, 1)
func white(r *rand.Rand) float64 {
	return r.Float64()*2 - 1
}
