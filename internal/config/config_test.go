// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, config files, overrides and logger setup
package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/noisegen-go/pkg/engine"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != "oto" {
		t.Errorf("Backend = %q, want oto", cfg.Backend)
	}
	if cfg.Engine() != engine.DefaultConfig() {
		t.Errorf("Engine() = %+v, want defaults", cfg.Engine())
	}
	if cfg.Debug() {
		t.Error("debug should be off by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noisegen.yaml")
	content := "backend: malgo\nsamplerate: 48000\nlatencyms: 20\nloglevel: debug\nloops:\n  - rain.mp3\n  - fan.wav\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != "malgo" || cfg.SampleRate != 48000 || cfg.LatencyMs != 20 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.BufferCount != engine.DefaultBufferCount {
		t.Errorf("BufferCount = %d, want default", cfg.BufferCount)
	}
	if !cfg.Debug() || !cfg.Engine().Debug {
		t.Error("debug level not applied")
	}
	if len(cfg.Loops) != 2 || cfg.Loops[1] != "fan.wav" {
		t.Errorf("Loops = %v", cfg.Loops)
	}
}

func TestLoadOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noisegen.yaml")
	os.WriteFile(path, []byte("samplerate: 48000\n"), 0644)

	cfg, err := Load(path, map[string]any{KeySampleRate: 22050, KeyBackend: "null"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want override 22050", cfg.SampleRate)
	}
	if cfg.Backend != "null" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"bad log level", map[string]any{KeyLogLevel: "trace"}},
		{"zero latency", map[string]any{KeyLatencyMs: 0}},
		{"no buffers", map[string]any{KeyBufferCount: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load("", tt.overrides); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("samplerate: [unterminated\n"), 0644)

	if _, err := Load(path, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigureLoggerWritesFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	cfg := &Config{LogFile: filepath.Join(t.TempDir(), "test.log"), LogLevel: "debug"}
	f, err := ConfigureLogger(cfg, false)
	if err != nil {
		t.Fatalf("ConfigureLogger failed: %v", err)
	}
	defer f.Close()

	log.Printf("hello from test")

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message: %q", data)
	}
	if !strings.Contains(string(data), "Debug logging enabled") {
		t.Error("debug banner not logged")
	}
}

func TestConfigureLoggerStderr(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	f, err := ConfigureLogger(&Config{LogFile: "-", LogLevel: "info"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Error("no file expected for stderr logging")
	}
}
