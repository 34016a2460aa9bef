// ABOUTME: WAV audio decoder
// ABOUTME: Decodes integer PCM WAV files to a float clip via go-audio/wav
package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned for streams that are not PCM WAV files
var ErrInvalidWAV = errors.New("not a valid PCM WAV file")

// WAV decodes RIFF/WAVE files with 8 to 32-bit integer samples
type WAV struct{}

func (WAV) Decode(r io.ReadSeeker) (*Clip, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		if err := decoder.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWAV, err)
		}
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode error: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidWAV, bitDepth)
	}
	scale := float32(int64(1) << (bitDepth - 1))

	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		// 8-bit WAV is unsigned
		if bitDepth == 8 {
			s -= 128
		}
		samples[i] = float32(s) / scale
	}

	return newClip(int(decoder.SampleRate), int(decoder.NumChans), samples)
}
