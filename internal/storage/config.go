package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Config is the persisted settings record.
type Config struct {
	Enabled bool `json:"enabled"`
}

// storedConfig distinguishes a missing "enabled" member from false.
type storedConfig struct {
	Enabled *bool `json:"enabled"`
}

// Gate reads and writes the enablement flag in the config file.
type Gate struct {
	path string
	log  zerolog.Logger
}

// NewGate creates a Gate backed by the config file at path.
func NewGate(path string, logger zerolog.Logger) *Gate {
	return &Gate{path: path, log: logger}
}

// Path returns the config file path.
func (g *Gate) Path() string {
	return g.path
}

// IsEnabled reports whether sync is enabled.
// The config file is created with {"enabled": true} if it doesn't exist.
// Once the file exists, a missing or non-boolean "enabled" reads as false,
// and any read or parse failure is logged and reads as false.
func (g *Gate) IsEnabled() bool {
	created, err := g.createDefault()
	if err != nil {
		g.log.Error().Err(err).Str("path", g.path).Msg("could not create config file")
		return false
	}
	if created {
		g.log.Info().Str("path", g.path).Msg("created config file with sync enabled")
		return true
	}

	data, err := os.ReadFile(g.path)
	if err != nil {
		g.log.Error().Err(err).Str("path", g.path).Msg("could not read config file")
		return false
	}

	var cfg storedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		g.log.Error().Err(err).Str("path", g.path).Msg("could not parse config file")
		return false
	}
	if cfg.Enabled == nil {
		g.log.Warn().Str("path", g.path).Msg("config file has no enabled flag, treating sync as disabled")
		return false
	}
	return *cfg.Enabled
}

// SetEnabled overwrites the config file with the given flag.
// Creates the directory if it doesn't exist.
func (g *Gate) SetEnabled(enabled bool) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return err
	}
	data, err := encodeIndented(Config{Enabled: enabled})
	if err != nil {
		return err
	}
	return atomicWrite(g.path, data)
}

// createDefault creates the config file with sync enabled unless it already
// exists. The content is written to a temporary file first and hard-linked
// into place, so the file never appears empty or partial, and of two racing
// processes only one link succeeds.
func (g *Gate) createDefault() (bool, error) {
	if _, err := os.Stat(g.path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0755); err != nil {
		return false, err
	}

	data, err := json.Marshal(Config{Enabled: true})
	if err != nil {
		return false, err
	}
	tmp, err := writeTemp(g.path, data)
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, g.path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DefaultConfigFilePath returns the config path inside the data directory.
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}
