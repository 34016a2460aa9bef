// ABOUTME: Ogg Vorbis audio decoder
// ABOUTME: Decodes a whole Ogg Vorbis stream to a float clip via oggvorbis
package decode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// Ogg decodes Ogg Vorbis files
type Ogg struct{}

func (Ogg) Decode(r io.ReadSeeker) (*Clip, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ogg vorbis decode error: %w", err)
	}
	if format == nil {
		return nil, ErrEmptyClip
	}
	return newClip(format.SampleRate, format.Channels, samples)
}
