// ABOUTME: PCM audio decoder
// ABOUTME: Decodes headerless 16-bit little-endian PCM files
package decode

import (
	"fmt"
	"io"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

// PCM decodes raw interleaved s16le data. Raw files carry no header, so the
// rate and layout must be supplied.
type PCM struct {
	SampleRate int
	Channels   int
}

func (p PCM) Decode(r io.ReadSeeker) (*Clip, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pcm read error: %w", err)
	}

	pcm := audio.Int16FromLE(data)
	samples := make([]float32, len(pcm))
	for i, s := range pcm {
		samples[i] = audio.Int16ToFloat(s)
	}

	return newClip(p.SampleRate, p.Channels, samples)
}
