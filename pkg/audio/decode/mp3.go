// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes a whole MP3 stream to a float clip via go-mp3
package decode

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/harperreed/noisegen-go/pkg/audio"
)

// MP3 decodes MP3 files
type MP3 struct{}

// Decode reads the whole stream. go-mp3 always outputs 16-bit stereo.
func (MP3) Decode(r io.ReadSeeker) (*Clip, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	pcm := audio.Int16FromLE(data)
	samples := make([]float32, len(pcm))
	for i, s := range pcm {
		samples[i] = audio.Int16ToFloat(s)
	}

	return newClip(decoder.SampleRate(), audio.StereoChannels, samples)
}
