// ABOUTME: WAV file sink
// ABOUTME: Writes every submitted slot to disk and completes it immediately
package output

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/harperreed/noisegen-go/pkg/audio"
	"github.com/harperreed/noisegen-go/pkg/audio/encode"
)

// WAVFile is a sink that renders to a WAV file instead of a device.
// Slots complete as soon as they are written, so the engine runs as fast
// as it is polled.
type WAVFile struct {
	path string

	mu       sync.Mutex
	file     *os.File
	writer   *encode.WAVWriter
	prepared []bool
	open     bool
}

// NewWAVFile creates an unopened sink that will write to path
func NewWAVFile(path string) *WAVFile {
	return &WAVFile{path: path}
}

// Open creates the output file
func (w *WAVFile) Open(format audio.Format, slots, slotSamples int) error {
	if err := checkFormat(format, slots, slotSamples); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		return fmt.Errorf("wav sink already open")
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	writer, err := encode.NewWAVWriter(f, format)
	if err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrFormatUnsupported, err)
	}

	w.file = f
	w.writer = writer
	w.prepared = make([]bool, slots)
	w.open = true

	log.Printf("Audio output initialized: %s (wav file %s)", format, w.path)
	return nil
}

func (w *WAVFile) Prepare(slot int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrNotOpen
	}
	if slot < 0 || slot >= len(w.prepared) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	w.prepared[slot] = true
	return nil
}

// Submit appends pcm to the file
func (w *WAVFile) Submit(slot int, pcm []int16) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, ErrNotOpen)
	}
	if slot < 0 || slot >= len(w.prepared) || !w.prepared[slot] {
		return fmt.Errorf("%w: %w: %d", ErrSubmitFailed, ErrInvalidSlot, slot)
	}
	if err := w.writer.Write(pcm); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	return nil
}

// IsComplete is always true; writes are synchronous
func (w *WAVFile) IsComplete(slot int) bool {
	return true
}

func (w *WAVFile) Unprepare(slot int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrNotOpen
	}
	if slot < 0 || slot >= len(w.prepared) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	w.prepared[slot] = false
	return nil
}

func (w *WAVFile) Reset() error {
	return nil
}

// Frames returns how many frames have been written so far
func (w *WAVFile) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return 0
	}
	return w.writer.Frames()
}

// Close finalises the WAV header and closes the file
func (w *WAVFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return nil
	}
	w.open = false

	werr := w.writer.Close()
	ferr := w.file.Close()
	if werr != nil {
		return werr
	}
	if ferr != nil {
		return fmt.Errorf("close %s: %w", w.path, ferr)
	}

	log.Printf("Wrote %d frames to %s", w.writer.Frames(), w.path)
	return nil
}
