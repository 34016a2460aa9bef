// ABOUTME: Mixer session orchestration
// ABOUTME: Builds the engine from config and manages profile load/save
package app

import (
	"fmt"
	"log"

	"github.com/harperreed/noisegen-go/internal/config"
	"github.com/harperreed/noisegen-go/internal/profile"
	"github.com/harperreed/noisegen-go/pkg/audio/output"
	"github.com/harperreed/noisegen-go/pkg/engine"
)

// Session is a running mixer: the engine plus the active profile
type Session struct {
	Engine *engine.Engine

	profileDir string
	current    string
}

// NewSession builds the generator bank, applies the startup profile and
// starts the engine on sink, so the first buffers already carry the profile.
// The startup profile is the last session if saved, otherwise the default
// profile file if present, otherwise built-in defaults.
func NewSession(cfg *config.Config, sink output.Sink) (*Session, error) {
	gens, err := BuildGenerators(cfg.Loops)
	if err != nil {
		return nil, err
	}

	p, label, err := startupProfile(cfg.ProfileDir)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
		p, label = profile.New(profile.DefaultName), "Default"
	}
	ApplyGenerators(gens, p)

	ecfg := cfg.Engine()
	ecfg.Master = ProfileMaster(p)
	eng, err := engine.New(sink, ecfg, gens...)
	if err != nil {
		return nil, err
	}

	return &Session{
		Engine:     eng,
		profileDir: cfg.ProfileDir,
		current:    label,
	}, nil
}

func startupProfile(dir string) (*profile.Profile, string, error) {
	if profile.Exists(dir, profile.LastSession) {
		p, err := profile.Load(dir, profile.LastSession)
		if err != nil {
			return nil, "", err
		}
		log.Printf("Restored last session")
		return p, p.DisplayName(), nil
	}

	p, err := profile.Load(dir, profile.DefaultName)
	if profile.IsNotExist(err) {
		return profile.New(profile.DefaultName), "Default", nil
	}
	return p, "Default", err
}

// ProfileName returns the label of the active profile
func (s *Session) ProfileName() string {
	return s.current
}

// Profiles lists saved profiles
func (s *Session) Profiles() ([]string, error) {
	return profile.List(s.profileDir)
}

// LoadProfile applies the named profile. A missing file applies defaults.
func (s *Session) LoadProfile(name string) error {
	p, err := profile.Load(s.profileDir, name)
	if err != nil {
		if !profile.IsNotExist(err) {
			return err
		}
		p = profile.New(name)
	}

	ApplyProfile(s.Engine, p)
	s.current = p.DisplayName()
	log.Printf("Loaded profile %s", name)
	return nil
}

// SaveProfile writes the current settings under name and makes it active
func (s *Session) SaveProfile(name string) error {
	if !profile.ValidName(name) {
		return fmt.Errorf("%w: %q", profile.ErrInvalidName, name)
	}
	if err := CaptureProfile(s.Engine, name).Save(s.profileDir); err != nil {
		return err
	}
	s.current = name
	log.Printf("Saved profile %s", name)
	return nil
}

// Close saves the last session and shuts the engine down
func (s *Session) Close() error {
	if err := CaptureProfile(s.Engine, profile.LastSession).Save(s.profileDir); err != nil {
		log.Printf("Warning: failed to save last session: %v", err)
	}
	return s.Engine.Close()
}
