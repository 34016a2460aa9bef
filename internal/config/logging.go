// ABOUTME: Log output setup
// ABOUTME: Routes the standard logger to a file so the TUI owns the terminal
package config

import (
	"fmt"
	"io"
	"log"
	"os"
)

// ConfigureLogger points the standard logger at the configured log file.
// With echo set, output also goes to stderr. "-" logs to stderr only.
// The returned file, if any, must be closed by the caller.
func ConfigureLogger(c *Config, echo bool) (*os.File, error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if c.LogFile == "" || c.LogFile == "-" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	if echo {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	} else {
		log.SetOutput(f)
	}

	if c.Debug() {
		log.Printf("Debug logging enabled")
	}
	return f, nil
}
