// ABOUTME: Tests for the looping file generator
// ABOUTME: Tests wraparound, volume scaling and rate conversion
package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/noisegen-go/pkg/audio"
	"github.com/harperreed/noisegen-go/pkg/audio/decode"
	"github.com/harperreed/noisegen-go/pkg/audio/encode"
)

func TestLoopWrapsAround(t *testing.T) {
	clip := &decode.Clip{SampleRate: 8000, Samples: []float32{0.1, 0.2, 0.3, 0.4}}
	g := NewLoop(clip, WithVolume(1))

	buf := make([]float32, 10)
	g.FillBuffer(buf, 0, len(buf), 8000)

	want := []float32{0.1, 0.2, 0.3, 0.4, 0.1, 0.2, 0.3, 0.4, 0.1, 0.2}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], buf[i])
		}
	}
}

func TestLoopContinuesAcrossBuffers(t *testing.T) {
	clip := &decode.Clip{SampleRate: 8000, Samples: []float32{0.1, 0.1, 0.2, 0.2, 0.3, 0.3}}
	g := NewLoop(clip, WithVolume(0.5))

	first := make([]float32, 2)
	second := make([]float32, 2)
	g.FillBuffer(first, 0, 2, 8000)
	g.FillBuffer(second, 0, 2, 8000)

	if first[0] != 0.05 || second[0] != 0.1 {
		t.Errorf("expected 0.05 then 0.1, got %f then %f", first[0], second[0])
	}
}

func TestLoopResamples(t *testing.T) {
	samples := make([]float32, 2*100)
	for i := range samples {
		samples[i] = 0.5
	}
	g := NewLoop(&decode.Clip{SampleRate: 22050, Samples: samples}, WithVolume(1))

	buf := make([]float32, 2*50)
	g.FillBuffer(buf, 0, len(buf), 44100)

	// Doubling the rate roughly doubles the loop length
	if n := len(g.rendered); n < 2*190 || n > 2*200 {
		t.Errorf("expected ~200 rendered frames, got %d", n/2)
	}
	for i, v := range buf {
		if v != 0.5 {
			t.Fatalf("sample %d: expected constant 0.5, got %f", i, v)
		}
	}
}

func TestLoadLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rain.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w, err := encode.NewWAVWriter(f, audio.DefaultFormat(44100))
	if err != nil {
		t.Fatalf("NewWAVWriter: %v", err)
	}
	w.Write([]int16{1000, 1000, 2000, 2000})
	w.Close()
	f.Close()

	g, err := LoadLoop(path, WithEnabled(true))
	if err != nil {
		t.Fatalf("LoadLoop: %v", err)
	}
	if g.Name() != "rain" {
		t.Errorf("expected name from file, got %q", g.Name())
	}
	if !g.Enabled() {
		t.Error("expected options to apply")
	}
	if g.Clip().Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", g.Clip().Frames())
	}
}
