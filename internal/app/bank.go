// ABOUTME: Built-in generator bank
// ABOUTME: Noise colours and binaural presets in profile index order
package app

import (
	"fmt"

	"github.com/harperreed/noisegen-go/internal/profile"
	"github.com/harperreed/noisegen-go/pkg/audio/generator"
	"github.com/harperreed/noisegen-go/pkg/engine"
)

// BinauralPreset is a named carrier/beat pair
type BinauralPreset struct {
	Name    string
	Carrier float64
	Beat    float64
}

// BinauralPresets are the built-in binaural generators
var BinauralPresets = []BinauralPreset{
	{"Focus (14Hz Beta)", 400, 14},
	{"Relax (7Hz Alpha)", 200, 7},
	{"Sleep (4Hz Theta)", 150, 4},
}

// DefaultGenerators returns white, pink and brown noise followed by the
// binaural presets. Profile keys index into this order.
func DefaultGenerators() []generator.Generator {
	gens := []generator.Generator{
		generator.NewWhite(),
		generator.NewPink(),
		generator.NewBrown(),
	}
	for _, p := range BinauralPresets {
		gens = append(gens, generator.NewBinaural(p.Carrier, p.Beat, generator.WithName(p.Name)))
	}
	return gens
}

// BuildGenerators returns the default bank plus one loop generator per
// audio file, appended after the built-ins
func BuildGenerators(loops []string) ([]generator.Generator, error) {
	gens := DefaultGenerators()
	for _, path := range loops {
		loop, err := generator.LoadLoop(path)
		if err != nil {
			return nil, fmt.Errorf("loop %s: %w", path, err)
		}
		gens = append(gens, loop)
	}
	return gens, nil
}

// ApplyProfile copies profile settings onto the engine and its generators
func ApplyProfile(e *engine.Engine, p *profile.Profile) {
	ApplyGenerators(e.Generators(), p)
	e.SetMasterVolume(p.MasterVolume())
	e.SetMasterEnabled(p.MasterEnabled())
}

// ApplyGenerators copies the per-generator settings of p onto gens, by index
func ApplyGenerators(gens []generator.Generator, p *profile.Profile) {
	for i, g := range gens {
		g.SetEnabled(p.GenEnabled(i))
		g.SetVolume(p.GenVolume(i))
	}
}

// ProfileMaster returns the master settings stored in p
func ProfileMaster(p *profile.Profile) *engine.Master {
	return &engine.Master{Volume: p.MasterVolume(), Enabled: p.MasterEnabled()}
}

// CaptureProfile snapshots the engine's current settings as a profile
func CaptureProfile(e *engine.Engine, name string) *profile.Profile {
	p := profile.New(name)
	for i, g := range e.Generators() {
		p.SetGen(i, g.Enabled(), g.Volume())
	}
	p.SetMaster(e.MasterVolume(), e.MasterEnabled())
	return p
}
