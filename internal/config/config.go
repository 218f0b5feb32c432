// Package config resolves the target process and logging settings from the
// environment. Command line flags override whatever is loaded here.
package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	// EnvProcess names the process (module path substring) to attach to
	EnvProcess = "PROCCTL_PROCESS"

	// EnvWindow names the exact title of the target window
	EnvWindow = "PROCCTL_WINDOW"

	// EnvLogDir overrides the log directory
	EnvLogDir = "PROCCTL_LOG_DIR"
)

// Config holds the settings shared by every command
type Config struct {
	ProcessName string
	WindowTitle string
	LogDir      string
	Verbose     bool
}

// Load reads the configuration from the environment
func Load() Config {
	return Config{
		ProcessName: strings.TrimSpace(os.Getenv(EnvProcess)),
		WindowTitle: os.Getenv(EnvWindow),
		LogDir:      os.Getenv(EnvLogDir),
	}
}

// Merge returns c with every non-empty field of override applied on top
func (c Config) Merge(override Config) Config {
	if override.ProcessName != "" {
		c.ProcessName = override.ProcessName
	}

	if override.WindowTitle != "" {
		c.WindowTitle = override.WindowTitle
	}

	if override.LogDir != "" {
		c.LogDir = override.LogDir
	}

	c.Verbose = c.Verbose || override.Verbose
	return c
}

// ValidateTarget checks that a process to attach to has been configured.
// The window title is only required by commands that touch the window.
func (c Config) ValidateTarget(needWindow bool) error {
	if c.ProcessName == "" {
		return fmt.Errorf("no target process: pass --process or set %s", EnvProcess)
	}

	if needWindow && c.WindowTitle == "" {
		return fmt.Errorf("no target window: pass --window or set %s", EnvWindow)
	}

	return nil
}
