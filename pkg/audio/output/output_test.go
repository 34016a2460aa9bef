// ABOUTME: Tests for the output backend registry
// ABOUTME: Covers backend lookup and format validation
package output

import (
	"errors"
	"testing"

	"github.com/harperreed/noisegen-go/pkg/audio"
)

func TestNewKnownBackends(t *testing.T) {
	for _, name := range Backends() {
		sink, err := New(name)
		if err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
			continue
		}
		if sink == nil {
			t.Errorf("New(%q) returned nil sink", name)
		}
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("wasapi"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestBackendsSorted(t *testing.T) {
	names := Backends()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("backends not sorted: %v", names)
		}
	}
}

func TestCheckFormat(t *testing.T) {
	tests := []struct {
		name        string
		format      audio.Format
		slots       int
		slotSamples int
		wantErr     bool
	}{
		{"valid", audio.DefaultFormat(44100), 4, 4410, false},
		{"zero rate", audio.DefaultFormat(0), 4, 4410, true},
		{"mono", audio.Format{SampleRate: 44100, Channels: 1, BitDepth: 16}, 4, 4410, true},
		{"24-bit", audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 24}, 4, 4410, true},
		{"no slots", audio.DefaultFormat(44100), 0, 4410, true},
		{"odd slot", audio.DefaultFormat(44100), 4, 4411, true},
		{"empty slot", audio.DefaultFormat(44100), 4, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkFormat(tt.format, tt.slots, tt.slotSamples)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFormatUnsupported) {
				t.Errorf("expected ErrFormatUnsupported, got %v", err)
			}
		})
	}
}

func TestPortAudioStubUnavailable(t *testing.T) {
	sink := NewPortAudio()
	err := sink.Open(audio.DefaultFormat(44100), 4, 4410)
	if err == nil {
		// Built with -tags portaudio and a device present
		sink.Close()
		t.Skip("portaudio available")
	}
	if !errors.Is(err, ErrDeviceUnavailable) && !errors.Is(err, ErrFormatUnsupported) {
		t.Errorf("expected ErrDeviceUnavailable, got %v", err)
	}
}
