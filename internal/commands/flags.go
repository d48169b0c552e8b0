package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/seqmark/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Theme      string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
	// ConfigErr holds the validation result for Config. Commands that act
	// on the config go through validConfig; config validate reports it.
	ConfigErr error
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "seqmark", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/seqmark/seqmark.log
// On Linux: $XDG_STATE_HOME/seqmark/seqmark.log (defaults to ~/.local/state/seqmark/seqmark.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "seqmark", "seqmark.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "seqmark", "seqmark.log")
	}

	return filepath.Join(home, ".local", "state", "seqmark", "seqmark.log")
}

// validConfig returns the loaded config, or defaults when the Before hook
// did not run (as in tests). It fails when the loaded config is invalid.
func (f *Flags) validConfig() (*config.Config, error) {
	if f.ConfigErr != nil {
		return nil, fmt.Errorf("invalid config: %w", f.ConfigErr)
	}
	if f.Config != nil {
		return f.Config, nil
	}
	return config.Read("")
}
