// ABOUTME: Tests for mixer session orchestration
// ABOUTME: Covers the generator bank, profile apply/capture and self test
package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/noisegen-go/internal/config"
	"github.com/harperreed/noisegen-go/internal/profile"
	"github.com/harperreed/noisegen-go/pkg/audio/output"
	"github.com/harperreed/noisegen-go/pkg/engine"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Backend:     "null",
		SampleRate:  engine.DefaultSampleRate,
		LatencyMs:   engine.DefaultBufferLatencyMs,
		BufferCount: engine.DefaultBufferCount,
		ProfileDir:  t.TempDir(),
		LogLevel:    "info",
	}
}

func newTestSession(t *testing.T, cfg *config.Config) *Session {
	t.Helper()
	s, err := NewSession(cfg, output.NewSimulated(&output.ManualClock{}))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

func TestDefaultGenerators(t *testing.T) {
	gens := DefaultGenerators()

	want := []string{
		"White Noise", "Pink Noise", "Brown Noise",
		"Focus (14Hz Beta)", "Relax (7Hz Alpha)", "Sleep (4Hz Theta)",
	}
	if len(gens) != len(want) {
		t.Fatalf("got %d generators, want %d", len(gens), len(want))
	}
	for i, g := range gens {
		if g.Name() != want[i] {
			t.Errorf("generator %d = %q, want %q", i, g.Name(), want[i])
		}
		if g.Enabled() {
			t.Errorf("%s should start disabled", g.Name())
		}
	}
}

func TestBuildGeneratorsMissingLoop(t *testing.T) {
	if _, err := BuildGenerators([]string{"/nonexistent/rain.mp3"}); err == nil {
		t.Fatal("expected error for missing loop file")
	}
}

func TestSessionStartsWithDefaults(t *testing.T) {
	s := newTestSession(t, testConfig(t))
	defer s.Close()

	if s.ProfileName() != "Default" {
		t.Errorf("ProfileName = %q", s.ProfileName())
	}
	for _, g := range s.Engine.Generators() {
		if g.Enabled() || g.Volume() != profile.DefaultGenVolume {
			t.Errorf("%s = %v/%v, want defaults", g.Name(), g.Enabled(), g.Volume())
		}
	}
	if s.Engine.MasterVolume() != 1 || !s.Engine.MasterEnabled() {
		t.Error("master not at defaults")
	}
}

func TestSessionSaveAndLoad(t *testing.T) {
	s := newTestSession(t, testConfig(t))
	defer s.Close()

	s.Engine.Generator(1).SetEnabled(true)
	s.Engine.Generator(1).SetVolume(0.3)
	s.Engine.SetMasterVolume(0.6)

	if err := s.SaveProfile("night"); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if s.ProfileName() != "night" {
		t.Errorf("ProfileName = %q after save", s.ProfileName())
	}

	s.Engine.Generator(1).SetEnabled(false)
	s.Engine.SetMasterVolume(1)

	if err := s.LoadProfile("night"); err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if !s.Engine.Generator(1).Enabled() || s.Engine.Generator(1).Volume() != 0.3 {
		t.Error("generator settings not restored")
	}
	if s.Engine.MasterVolume() != 0.6 {
		t.Errorf("master volume = %v", s.Engine.MasterVolume())
	}

	names, _ := s.Profiles()
	if len(names) != 1 || names[0] != "night" {
		t.Errorf("Profiles = %v", names)
	}
}

func TestSessionSaveInvalidName(t *testing.T) {
	s := newTestSession(t, testConfig(t))
	defer s.Close()

	if err := s.SaveProfile("no spaces"); !errors.Is(err, profile.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestSessionLoadMissingAppliesDefaults(t *testing.T) {
	s := newTestSession(t, testConfig(t))
	defer s.Close()

	s.Engine.Generator(0).SetEnabled(true)
	if err := s.LoadProfile(profile.DefaultName); err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if s.Engine.Generator(0).Enabled() {
		t.Error("missing profile should apply defaults")
	}
}

func TestSessionRestoresLastSession(t *testing.T) {
	cfg := testConfig(t)

	first := newTestSession(t, cfg)
	first.Engine.Generator(4).SetEnabled(true)
	first.Engine.SetMasterEnabled(false)
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := newTestSession(t, cfg)
	defer second.Close()

	if second.ProfileName() != "Last Session" {
		t.Errorf("ProfileName = %q", second.ProfileName())
	}
	if !second.Engine.Generator(4).Enabled() {
		t.Error("generator 4 not restored")
	}
	if second.Engine.MasterEnabled() {
		t.Error("master enabled not restored")
	}

	names, _ := second.Profiles()
	for _, n := range names {
		if n == profile.LastSession {
			t.Error("last session should not be listed")
		}
	}
}

func TestSessionPrimesWithStartupProfile(t *testing.T) {
	cfg := testConfig(t)

	p := profile.New(profile.LastSession)
	p.SetGen(0, true, 1)
	p.SetMaster(0.5, true)
	if err := p.Save(cfg.ProfileDir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sim := output.NewSimulated(&output.ManualClock{})
	s, err := NewSession(cfg, sim)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer s.Close()

	if s.Engine.MasterVolume() != 0.5 {
		t.Errorf("master volume = %v, want 0.5", s.Engine.MasterVolume())
	}

	subs := sim.Submissions()
	if len(subs) == 0 {
		t.Fatal("no buffers primed")
	}
	silent := true
	for _, v := range subs[0].PCM {
		if v != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Error("first primed buffer is silent; startup profile applied too late")
	}
}

func TestSessionDeviceFailure(t *testing.T) {
	sim := output.NewSimulated(&output.ManualClock{})
	sim.FailOpen(output.ErrDeviceUnavailable)

	_, err := NewSession(testConfig(t), sim)
	if !errors.Is(err, output.ErrDeviceUnavailable) {
		t.Errorf("expected ErrDeviceUnavailable, got %v", err)
	}
}

func TestSessionKeepsDeviceFed(t *testing.T) {
	clock := &output.ManualClock{}
	sim := output.NewSimulated(clock)
	s, err := NewSession(testConfig(t), sim)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for i := 0; i < 40; i++ {
		clock.Advance(50 * time.Millisecond)
		s.Engine.Update()
	}
	if sim.Underruns() != 0 {
		t.Errorf("underruns = %d", sim.Underruns())
	}
}

func TestSelfTest(t *testing.T) {
	var buf bytes.Buffer
	if !SelfTest(&buf) {
		t.Fatalf("self test failed:\n%s", buf.String())
	}

	out := buf.String()
	for _, want := range []string{"Testing Generators... OK", "Testing Config Persistence... OK", "[PASS]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
