// ABOUTME: Tests for the WAV encoder
// ABOUTME: Writes PCM and reads it back with go-audio/wav
package encode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/harperreed/noisegen-go/pkg/audio"
)

func TestWAVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w, err := NewWAVWriter(f, audio.DefaultFormat(44100))
	if err != nil {
		t.Fatalf("NewWAVWriter: %v", err)
	}

	first := []int16{0, 0, 1000, -1000, 32767, -32767}
	second := []int16{5, 6}
	if err := w.Write(first); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write(second); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if w.Frames() != 4 {
		t.Errorf("expected 4 frames, got %d", w.Frames())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	f.Close()

	r, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		t.Fatal("written file is not a valid WAV")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer: %v", err)
	}

	if d.SampleRate != 44100 || d.NumChans != 2 || d.BitDepth != 16 {
		t.Errorf("unexpected header: %dHz %dch %d-bit", d.SampleRate, d.NumChans, d.BitDepth)
	}

	want := append(append([]int16{}, first...), second...)
	if len(buf.Data) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(buf.Data))
	}
	for i := range want {
		if buf.Data[i] != int(want[i]) {
			t.Errorf("sample %d: expected %d, got %d", i, want[i], buf.Data[i])
		}
	}
}

func TestWAVWriterRejectsFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	_, err = NewWAVWriter(f, audio.Format{SampleRate: 44100, Channels: 1, BitDepth: 16})
	if err == nil {
		t.Fatal("expected error for mono format")
	}
}

func TestWAVWriterAfterClose(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "closed.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	w, err := NewWAVWriter(f, audio.DefaultFormat(48000))
	if err != nil {
		t.Fatalf("NewWAVWriter: %v", err)
	}
	w.Close()

	if err := w.Write([]int16{1, 2}); err == nil {
		t.Error("expected error writing after Close")
	}
}
