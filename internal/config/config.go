// ABOUTME: Application configuration loading
// ABOUTME: Viper defaults, optional config file and CLI overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/harperreed/noisegen-go/pkg/engine"
	"github.com/spf13/viper"
)

// Config keys. CLI flags override them by the same name.
const (
	KeyBackend     = "backend"
	KeySampleRate  = "samplerate"
	KeyLatencyMs   = "latencyms"
	KeyBufferCount = "buffercount"
	KeyProfileDir  = "profiledir"
	KeyLogFile     = "logfile"
	KeyLogLevel    = "loglevel"
	KeyLoops       = "loops"
)

// DefaultConfigFile is read when no -config flag is given
const DefaultConfigFile = "noisegen.yaml"

// Config holds application settings
type Config struct {
	Backend     string
	SampleRate  int
	LatencyMs   int
	BufferCount int
	ProfileDir  string
	LogFile     string
	LogLevel    string
	Loops       []string // audio files added as loop generators
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, "oto")
	v.SetDefault(KeySampleRate, engine.DefaultSampleRate)
	v.SetDefault(KeyLatencyMs, engine.DefaultBufferLatencyMs)
	v.SetDefault(KeyBufferCount, engine.DefaultBufferCount)
	v.SetDefault(KeyProfileDir, ".")
	v.SetDefault(KeyLogFile, "noisegen.log")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLoops, []string{})
}

// Load reads defaults, then the config file at path if it exists, then
// overrides. A missing config file is not an error.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setViperDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				log.Printf("No config file at %s, using defaults", path)
			} else {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg := &Config{
		Backend:     v.GetString(KeyBackend),
		SampleRate:  v.GetInt(KeySampleRate),
		LatencyMs:   v.GetInt(KeyLatencyMs),
		BufferCount: v.GetInt(KeyBufferCount),
		ProfileDir:  v.GetString(KeyProfileDir),
		LogFile:     v.GetString(KeyLogFile),
		LogLevel:    v.GetString(KeyLogLevel),
		Loops:       v.GetStringSlice(KeyLoops),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be checked later by their consumer
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "info", "debug":
	default:
		return fmt.Errorf("invalid log level %q (valid: info, debug)", c.LogLevel)
	}
	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("invalid engine settings: %w", err)
	}
	return nil
}

// Debug reports whether verbose engine logging is enabled
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Engine returns the engine construction parameters
func (c *Config) Engine() engine.Config {
	return engine.Config{
		SampleRate:      c.SampleRate,
		BufferLatencyMs: c.LatencyMs,
		BufferCount:     c.BufferCount,
		Debug:           c.Debug(),
	}
}
