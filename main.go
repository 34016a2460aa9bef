// ABOUTME: Entry point for the noisegen mixer
// ABOUTME: Parses CLI flags, starts the audio engine and runs the TUI
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/harperreed/noisegen-go/internal/app"
	"github.com/harperreed/noisegen-go/internal/config"
	"github.com/harperreed/noisegen-go/internal/ui"
	"github.com/harperreed/noisegen-go/internal/version"
	"github.com/harperreed/noisegen-go/pkg/audio/output"
)

var (
	configFile = flag.String("config", config.DefaultConfigFile, "Config file path")
	profileDir = flag.String("profile-dir", ".", "Directory holding profile .ini files")
	backend    = flag.String("backend", "oto", "Audio backend ("+strings.Join(output.Backends(), ", ")+")")
	sampleRate = flag.Int("sample-rate", 44100, "Output sample rate in Hz")
	latencyMs  = flag.Int("latency-ms", 50, "Duration of one output buffer in milliseconds")
	buffers    = flag.Int("buffers", 4, "Number of output buffers")
	logFile    = flag.String("log-file", "noisegen.log", "Log file path (- for stderr)")
	logLevel   = flag.String("log-level", "info", "Log level (info, debug)")
	loops      = flag.String("loop", "", "Comma-separated audio files to add as loop generators")
	selfTest   = flag.Bool("test", false, "Run the self test and exit")
)

// flagKeys maps CLI flags to config keys
var flagKeys = map[string]string{
	"profile-dir": config.KeyProfileDir,
	"backend":     config.KeyBackend,
	"sample-rate": config.KeySampleRate,
	"latency-ms":  config.KeyLatencyMs,
	"buffers":     config.KeyBufferCount,
	"log-file":    config.KeyLogFile,
	"log-level":   config.KeyLogLevel,
}

// overrides collects the flags given on the command line so they win over
// the config file
func overrides() map[string]any {
	values := map[string]any{}
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			values[key] = f.Value.(flag.Getter).Get()
		}
	})
	if *loops != "" {
		values[config.KeyLoops] = strings.Split(*loops, ",")
	}
	return values
}

func fatalf(format string, args ...any) {
	log.Printf(format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	flag.Parse()

	if *selfTest {
		if !app.SelfTest(os.Stdout) {
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile, overrides())
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	f, err := config.ConfigureLogger(cfg, false)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if f != nil {
		defer func() { _ = f.Close() }()
	}

	log.Printf("Starting %s (backend: %s)", version.String(), cfg.Backend)

	sink, err := output.New(cfg.Backend)
	if err != nil {
		fatalf("Failed to create audio output: %v", err)
	}

	session, err := app.NewSession(cfg, sink)
	if err != nil {
		fatalf("Failed to start audio engine: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ui.Run(ctx, session); err != nil {
		log.Printf("TUI error: %v", err)
	}

	if err := session.Close(); err != nil {
		log.Printf("Error closing engine: %v", err)
	}

	log.Printf("Mixer stopped")
}
