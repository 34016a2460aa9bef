// ABOUTME: Engine configuration
// ABOUTME: Sample rate, buffer latency and pool size with derived buffer sizes
package engine

import (
	"fmt"
	"time"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

const (
	DefaultSampleRate      = 44100
	DefaultBufferLatencyMs = 50
	DefaultBufferCount     = 4
)

// Config holds engine construction parameters. Sample rate and channel
// layout cannot change once the engine is built.
type Config struct {
	SampleRate      int
	BufferLatencyMs int // duration of one buffer
	BufferCount     int
	Debug           bool

	// Master is the master state the primed buffers are mixed with; nil
	// means full volume, enabled
	Master *Master
}

// Master is the gain stage applied after mixing
type Master struct {
	Volume  float32
	Enabled bool
}

// DefaultConfig returns 44.1kHz with four 50ms buffers
func DefaultConfig() Config {
	return Config{
		SampleRate:      DefaultSampleRate,
		BufferLatencyMs: DefaultBufferLatencyMs,
		BufferCount:     DefaultBufferCount,
	}
}

// Validate checks the configuration yields at least one frame per buffer
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.SampleRate)
	}
	if c.BufferLatencyMs <= 0 {
		return fmt.Errorf("invalid buffer latency: %dms", c.BufferLatencyMs)
	}
	if c.BufferCount <= 0 {
		return fmt.Errorf("invalid buffer count: %d", c.BufferCount)
	}
	if c.SampleRate*c.BufferLatencyMs/1000 == 0 {
		return fmt.Errorf("buffer latency %dms is shorter than one frame at %dHz",
			c.BufferLatencyMs, c.SampleRate)
	}
	return nil
}

// Format returns the PCM format the engine produces
func (c Config) Format() audio.Format {
	return audio.DefaultFormat(c.SampleRate)
}

// SamplesPerBuffer returns the interleaved sample count of one buffer
func (c Config) SamplesPerBuffer() int {
	return c.SampleRate * c.BufferLatencyMs / 1000 * audio.StereoChannels
}

// BufferDuration returns the playback time of one buffer
func (c Config) BufferDuration() time.Duration {
	return c.Format().Duration(c.SamplesPerBuffer())
}
