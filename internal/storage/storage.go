package storage

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ansetechnoapp/syncmark-helper/internal/model"
	"github.com/rs/zerolog"
)

const (
	// EnvDir overrides the data directory.
	EnvDir = "SYNCMARK_DIR"

	BookmarksFileName = "syncmark_bookmarks.json"
	ConfigFileName    = "config.json"
)

// Storage defines the interface for persisting the local bookmark set.
type Storage interface {
	Load() (model.Set, error)
	Save(set model.Set) error
}

// Backend names accepted by OpenStorage.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// JSONStorage implements Storage using a JSON array file.
type JSONStorage struct {
	path string
	log  zerolog.Logger
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string, logger zerolog.Logger) *JSONStorage {
	return &JSONStorage{path: path, log: logger}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the bookmark set from the JSON file.
// A missing, empty, unreadable or malformed file yields an empty set; the
// failure is logged and never returned.
func (s *JSONStorage) Load() (model.Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error().Err(err).Str("path", s.path).Msg("could not read local bookmarks file")
		}
		return model.NewSet(), nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return model.NewSet(), nil
	}

	set, err := model.ParseSet(data)
	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("could not parse local bookmarks file")
		return model.NewSet(), nil
	}
	return set, nil
}

// Save writes the bookmark set to the JSON file, replacing it in full.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(set model.Set) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := encodeIndented(set)
	if err != nil {
		return err
	}
	return atomicWrite(s.path, data)
}

// encodeIndented renders v with four-space indentation, leaving non-ASCII
// and HTML characters unescaped.
func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// writeTemp writes data to a uniquely named sibling of path and returns its name.
func writeTemp(path string, data []byte) (string, error) {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return "", fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(randBytes)

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

// atomicWrite writes data to a file atomically via a temporary file and rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := writeTemp(path, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DefaultDir returns the per-user data directory: $SYNCMARK_DIR, or
// ~/Documents/SyncMark.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "Documents", "SyncMark"), nil
}

// OpenStorage opens the named storage backend inside dir.
// The caller closes the SQLite backend when done.
func OpenStorage(backend, dir string, logger zerolog.Logger) (Storage, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStorage(filepath.Join(dir, BookmarksFileName), logger), nil
	case BackendSQLite:
		return NewSQLiteStorage(filepath.Join(dir, SQLiteFileName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %s or %s)", backend, BackendJSON, BackendSQLite)
	}
}
