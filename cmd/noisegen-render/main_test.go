// ABOUTME: Tests for the offline renderer
// ABOUTME: Covers settings applied before priming, write failures and index parsing
package main

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/harperreed/noisegen-go/internal/app"
	"github.com/harperreed/noisegen-go/internal/profile"
	"github.com/harperreed/noisegen-go/pkg/audio/decode"
	"github.com/harperreed/noisegen-go/pkg/audio/output"
	"github.com/harperreed/noisegen-go/pkg/engine"
)

func renderToFile(t *testing.T, opts renderOptions) *decode.Clip {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	frames, err := render(context.Background(), output.NewWAVFile(path), engine.DefaultConfig(), app.DefaultGenerators(), opts)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := engine.DefaultConfig().Format().FramesFor(opts.Duration)
	if frames < want {
		t.Errorf("rendered %d frames, want at least %d", frames, want)
	}

	clip, err := decode.File(path)
	if err != nil {
		t.Fatalf("decode rendered file: %v", err)
	}
	return clip
}

func firstBufferSilent(clip *decode.Clip) bool {
	n := engine.DefaultConfig().SamplesPerBuffer()
	if n > len(clip.Samples) {
		n = len(clip.Samples)
	}
	for _, v := range clip.Samples[:n] {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestRenderFirstBufferCarriesSettings(t *testing.T) {
	p := profile.New("focus")
	p.SetGen(1, true, 0.8)
	p.SetMaster(0.5, true)

	tests := []struct {
		name string
		opts renderOptions
	}{
		{"enable flag", renderOptions{Enable: []int{0}, Volume: -1, Duration: 200 * time.Millisecond}},
		{"profile", renderOptions{Profile: p, Volume: -1, Duration: 200 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := renderToFile(t, tt.opts)
			if firstBufferSilent(clip) {
				t.Error("first buffer is silent")
			}
		})
	}
}

func TestRenderMutedProfileIsSilent(t *testing.T) {
	p := profile.New("muted")
	p.SetGen(0, true, 1)
	p.SetMaster(1, false)

	clip := renderToFile(t, renderOptions{Profile: p, Volume: -1, Duration: 100 * time.Millisecond})
	for i, v := range clip.Samples {
		if v != 0 {
			t.Fatalf("sample %d = %f with master disabled", i, v)
		}
	}
}

func TestRenderVolumeOverride(t *testing.T) {
	clip := renderToFile(t, renderOptions{Enable: []int{0}, Volume: 0, Duration: 100 * time.Millisecond})
	if !firstBufferSilent(clip) {
		t.Error("volume 0 should render silence")
	}
}

func TestRenderUnknownGenerator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	_, err := render(context.Background(), output.NewWAVFile(path), engine.DefaultConfig(), app.DefaultGenerators(),
		renderOptions{Enable: []int{42}, Volume: -1, Duration: time.Second})
	if err == nil {
		t.Fatal("expected error for unknown generator index")
	}
}

// stalledSink never reports written frames
type stalledSink struct {
	*output.Simulated
}

func (stalledSink) Frames() int { return 0 }

func TestRenderStopsOnWriteFailure(t *testing.T) {
	sim := output.NewSimulated(&output.ManualClock{})
	sim.FailNext(1)

	done := make(chan error, 1)
	go func() {
		_, err := render(context.Background(), stalledSink{sim}, engine.DefaultConfig(), app.DefaultGenerators(),
			renderOptions{Volume: -1, Duration: time.Second})
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error after failed write")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("render kept looping after a failed write")
	}
}

func TestParseIndexes(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"0", []int{0}, false},
		{"0, 3,5", []int{0, 3, 5}, false},
		{"1,x", nil, true},
	}

	for _, tt := range tests {
		got, err := parseIndexes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndexes(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseIndexes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
