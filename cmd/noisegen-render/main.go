// ABOUTME: Offline renderer for noisegen mixes
// ABOUTME: Runs the engine against a WAV file sink for a fixed duration
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/harperreed/noisegen-go/internal/app"
	"github.com/harperreed/noisegen-go/internal/config"
	"github.com/harperreed/noisegen-go/internal/profile"
	"github.com/harperreed/noisegen-go/internal/version"
	"github.com/harperreed/noisegen-go/pkg/audio/generator"
	"github.com/harperreed/noisegen-go/pkg/audio/output"
	"github.com/harperreed/noisegen-go/pkg/engine"
)

var (
	configFile  = flag.String("config", "", "Config file path")
	outFile     = flag.String("out", "noise.wav", "Output WAV file")
	duration    = flag.Duration("duration", 30*time.Second, "Length to render")
	profileName = flag.String("profile", "", "Profile to apply before rendering")
	profileDir  = flag.String("profile-dir", ".", "Directory holding profile .ini files")
	sampleRate  = flag.Int("sample-rate", 44100, "Output sample rate in Hz")
	enable      = flag.String("enable", "", "Comma-separated generator indexes to enable (0=white 1=pink 2=brown 3-5=binaural)")
	volume      = flag.Float64("volume", -1, "Master volume override (0-1)")
	loops       = flag.String("loop", "", "Comma-separated audio files to add as loop generators")
	debug       = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	overrides := map[string]any{
		config.KeyLogFile:    "-",
		config.KeyProfileDir: *profileDir,
		config.KeySampleRate: *sampleRate,
	}
	if *debug {
		overrides[config.KeyLogLevel] = "debug"
	}
	if *loops != "" {
		overrides[config.KeyLoops] = strings.Split(*loops, ",")
	}

	cfg, err := config.Load(*configFile, overrides)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if _, err := config.ConfigureLogger(cfg, false); err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	gens, err := app.BuildGenerators(cfg.Loops)
	if err != nil {
		return err
	}

	opts := renderOptions{Duration: *duration, Volume: *volume}
	if *profileName != "" {
		opts.Profile, err = profile.Load(cfg.ProfileDir, *profileName)
		if err != nil {
			return err
		}
	}
	if opts.Enable, err = parseIndexes(*enable); err != nil {
		return err
	}

	log.Printf("%s rendering %v to %s", version.String(), *duration, *outFile)
	start := time.Now()

	frames, err := render(ctx, output.NewWAVFile(*outFile), cfg.Engine(), gens, opts)
	if err != nil {
		return err
	}

	log.Printf("Rendered %v in %v", time.Duration(frames)*time.Second/time.Duration(cfg.SampleRate), time.Since(start).Round(time.Millisecond))
	return nil
}

// frameSink is a sink that counts the frames it has written
type frameSink interface {
	output.Sink
	Frames() int
}

type renderOptions struct {
	Profile  *profile.Profile // nil keeps the bank defaults
	Enable   []int            // generator indexes switched on after the profile
	Volume   float64          // master volume override; negative keeps the profile's
	Duration time.Duration
}

// render applies opts to gens, then drives an engine on sink until it has
// written at least opts.Duration. It returns the frames written.
func render(ctx context.Context, sink frameSink, ecfg engine.Config, gens []generator.Generator, opts renderOptions) (int, error) {
	master := &engine.Master{Volume: 1, Enabled: true}
	if opts.Profile != nil {
		app.ApplyGenerators(gens, opts.Profile)
		master = app.ProfileMaster(opts.Profile)
	}
	for _, i := range opts.Enable {
		if i < 0 || i >= len(gens) {
			return 0, fmt.Errorf("no generator %d (have %d)", i, len(gens))
		}
		gens[i].SetEnabled(true)
	}
	if opts.Volume >= 0 {
		master.Volume = float32(opts.Volume)
	}
	ecfg.Master = master

	eng, err := engine.New(sink, ecfg, gens...)
	if err != nil {
		return 0, err
	}
	defer eng.Close()

	target := ecfg.Format().FramesFor(opts.Duration)

	// Every slot completes on write, so each Update renders a full pool
	for sink.Frames() < target {
		if failed := eng.Stats().Failed; failed > 0 {
			return sink.Frames(), fmt.Errorf("%d buffer writes failed", failed)
		}
		select {
		case <-ctx.Done():
			log.Printf("Render interrupted after %d frames", sink.Frames())
			return sink.Frames(), eng.Close()
		default:
		}
		eng.Update()
	}

	frames := sink.Frames()
	return frames, eng.Close()
}

// parseIndexes parses a comma-separated list of generator indexes
func parseIndexes(list string) ([]int, error) {
	if list == "" {
		return nil, nil
	}
	var out []int
	for _, field := range strings.Split(list, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("bad generator index %q", field)
		}
		out = append(out, i)
	}
	return out, nil
}
