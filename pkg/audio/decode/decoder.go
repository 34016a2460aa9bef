// ABOUTME: Decoder interface definition
// ABOUTME: Common interface and extension registry for file decoders
package decode

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

var (
	// ErrUnsupportedFormat is returned for files no decoder handles
	ErrUnsupportedFormat = errors.New("unsupported audio file format")

	// ErrEmptyClip is returned when a file decodes to zero frames
	ErrEmptyClip = errors.New("audio file contains no samples")
)

// Clip is a fully decoded, interleaved stereo float recording
type Clip struct {
	SampleRate int
	Samples    []float32 // interleaved L/R
}

// Frames returns the number of stereo frames in the clip
func (c *Clip) Frames() int {
	return len(c.Samples) / audio.StereoChannels
}

// Duration returns the playback length of the clip
func (c *Clip) Duration() time.Duration {
	return audio.DefaultFormat(c.SampleRate).Duration(len(c.Samples))
}

// Decoder decodes a complete audio stream into a Clip
type Decoder interface {
	Decode(r io.ReadSeeker) (*Clip, error)
}

// decoders maps lower-case file extensions to decoders
var decoders = map[string]Decoder{
	".mp3": MP3{},
	".wav": WAV{},
	".ogg": Ogg{},
	".oga": Ogg{},
	".pcm": PCM{SampleRate: 44100, Channels: 2},
	".raw": PCM{SampleRate: 44100, Channels: 2},
}

// ForExtension returns the decoder registered for ext (e.g. ".mp3")
func ForExtension(ext string) (Decoder, bool) {
	d, ok := decoders[strings.ToLower(ext)]
	return d, ok
}

// File decodes the audio file at path, choosing the decoder by extension
func File(path string) (*Clip, error) {
	ext := filepath.Ext(path)
	dec, ok := ForExtension(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: .mp3, .wav, .ogg, .pcm)", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	clip, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	log.Printf("Loaded %s: %dHz, %d frames (%v)",
		filepath.Base(path), clip.SampleRate, clip.Frames(), clip.Duration().Round(time.Millisecond))

	return clip, nil
}

// toStereo converts interleaved samples with the given channel count to
// interleaved stereo
func toStereo(samples []float32, channels int) []float32 {
	if channels == audio.StereoChannels {
		return samples
	}
	frames := len(samples) / channels
	out := make([]float32, frames*audio.StereoChannels)
	for i := 0; i < frames; i++ {
		left := samples[i*channels]
		right := left
		if channels > 1 {
			right = samples[i*channels+1]
		}
		out[i*2] = left
		out[i*2+1] = right
	}
	return out
}

func newClip(sampleRate, channels int, samples []float32) (*Clip, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	stereo := toStereo(samples, channels)
	if len(stereo) < audio.StereoChannels {
		return nil, ErrEmptyClip
	}
	return &Clip{SampleRate: sampleRate, Samples: stereo}, nil
}
