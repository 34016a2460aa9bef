// ABOUTME: WAV file encoder
// ABOUTME: Streams interleaved 16-bit PCM into a WAV file via go-audio/wav
package encode

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/harperreed/noisegen-go/pkg/audio"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag
const wavFormatPCM = 1

// WAVWriter appends PCM buffers to a WAV stream
type WAVWriter struct {
	encoder *wav.Encoder
	format  audio.Format
	buf     *goaudio.IntBuffer
	frames  int
	closed  bool
}

// NewWAVWriter creates a writer for the given format. The header is
// finalised when Close is called, so w must be seekable.
func NewWAVWriter(w io.WriteSeeker, format audio.Format) (*WAVWriter, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &WAVWriter{
		encoder: wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, wavFormatPCM),
		format:  format,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: format.Channels,
				SampleRate:  format.SampleRate,
			},
			SourceBitDepth: format.BitDepth,
		},
	}, nil
}

// Write appends interleaved samples
func (w *WAVWriter) Write(samples []int16) error {
	if w.closed {
		return fmt.Errorf("wav writer closed")
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.encoder.Write(w.buf); err != nil {
		return fmt.Errorf("wav write failed: %w", err)
	}
	w.frames += len(samples) / w.format.Channels
	return nil
}

// Frames returns how many frames have been written
func (w *WAVWriter) Frames() int {
	return w.frames
}

// Close writes the final header sizes. It does not close the underlying writer.
func (w *WAVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.encoder.Close(); err != nil {
		return fmt.Errorf("wav finalise failed: %w", err)
	}
	return nil
}
