// ABOUTME: Audio type definitions
// ABOUTME: Defines the stream format and sample conversion helpers
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	// MaxInt16Sample is the PCM value a full-scale float maps to. The
	// negative side is symmetric so -1.0 maps to -32767, never -32768.
	MaxInt16Sample = 32767

	// StereoChannels is the only channel layout the engine produces.
	StereoChannels = 2

	// BitDepth16 is the only sample width the engine produces.
	BitDepth16 = 16
)

// Format describes an audio stream format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat returns interleaved stereo 16-bit at the given rate
func DefaultFormat(sampleRate int) Format {
	return Format{
		SampleRate: sampleRate,
		Channels:   StereoChannels,
		BitDepth:   BitDepth16,
	}
}

// Validate checks that the format is one the engine can produce
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	if f.Channels != StereoChannels {
		return fmt.Errorf("unsupported channel count: %d (supported: 2)", f.Channels)
	}
	if f.BitDepth != BitDepth16 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 16)", f.BitDepth)
	}
	return nil
}

// BytesPerFrame returns the size of one interleaved frame in bytes
func (f Format) BytesPerFrame() int {
	return f.Channels * f.BitDepth / 8
}

// FramesFor returns how many frames cover d at this format's rate
func (f Format) FramesFor(d time.Duration) int {
	return int(int64(f.SampleRate) * int64(d) / int64(time.Second))
}

// Duration returns the playback time of n interleaved samples
func (f Format) Duration(samples int) time.Duration {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return 0
	}
	frames := samples / f.Channels
	return time.Duration(int64(frames) * int64(time.Second) / int64(f.SampleRate))
}

// String returns a compact human readable form, e.g. "44100Hz stereo s16le"
func (f Format) String() string {
	layout := "stereo"
	if f.Channels == 1 {
		layout = "mono"
	} else if f.Channels != 2 {
		layout = fmt.Sprintf("%dch", f.Channels)
	}
	return fmt.Sprintf("%dHz %s s%dle", f.SampleRate, layout, f.BitDepth)
}

// Clamp bounds a float sample to [-1, 1]. NaN passes through unchanged.
func Clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// FloatToInt16 converts a float sample to 16-bit PCM: round(clamp(v) * 32767).
// Non-finite input maps to 0.
func FloatToInt16(v float32) int16 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	c := Clamp(v)
	return int16(math.Round(float64(c) * MaxInt16Sample))
}

// Int16ToFloat converts a 16-bit PCM sample to float in [-1, 1)
func Int16ToFloat(s int16) float32 {
	return float32(s) / 32768.0
}

// PutInt16LE encodes samples into dst as little-endian bytes and returns the
// number of bytes written. dst must hold at least 2*len(samples) bytes.
func PutInt16LE(dst []byte, samples []int16) int {
	for i, s := range samples {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(s))
	}
	return len(samples) * 2
}

// Int16FromLE decodes little-endian bytes into int16 samples
func Int16FromLE(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}
