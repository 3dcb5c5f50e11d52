// Package installer registers the helper as a browser native messaging host.
package installer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HostName is the native messaging host name the extension connects to.
const HostName = "com.syncmark.host"

// ManifestFileName is the manifest file written for HostName.
const ManifestFileName = HostName + ".json"

const description = "SyncMark bookmark synchronization helper"

// Browser identifies a Chromium-based browser.
type Browser string

const (
	Chrome   Browser = "chrome"
	Chromium Browser = "chromium"
	Edge     Browser = "edge"
	Brave    Browser = "brave"
)

// Browsers lists the supported browsers.
var Browsers = []Browser{Chrome, Chromium, Edge, Brave}

// ParseBrowser validates a browser name.
func ParseBrowser(name string) (Browser, error) {
	b := Browser(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Browsers {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown browser %q (want one of chrome, chromium, edge, brave)", name)
}

var (
	ErrNoExtensionID      = errors.New("installer: no extension id given and none found in an existing manifest")
	ErrInvalidExtensionID = errors.New("installer: extension ids are 32 characters between a and p")
)

// Manifest is the native messaging host manifest read by the browser.
type Manifest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Path           string   `json:"path"`
	Type           string   `json:"type"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// NewManifest builds a manifest allowing the given origins to launch exePath.
func NewManifest(exePath string, origins []string) Manifest {
	return Manifest{
		Name:           HostName,
		Description:    description,
		Path:           exePath,
		Type:           "stdio",
		AllowedOrigins: origins,
	}
}

// Encode renders the manifest with two-space indentation.
func (m Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadManifest reads a manifest file.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// ValidateExtensionID checks the shape of a Chrome extension id.
func ValidateExtensionID(id string) error {
	if len(id) != 32 {
		return ErrInvalidExtensionID
	}
	for _, c := range id {
		if c < 'a' || c > 'p' {
			return ErrInvalidExtensionID
		}
	}
	return nil
}

// Origin returns the origin string the browser uses for an extension.
func Origin(extensionID string) string {
	return "chrome-extension://" + extensionID + "/"
}

// IsOrigin reports whether arg looks like the origin a browser passes as
// the first argument when it launches a native host.
func IsOrigin(arg string) bool {
	return strings.HasPrefix(arg, "chrome-extension://")
}

// Options configures an install or uninstall.
type Options struct {
	Browser     Browser
	ExtensionID string
	// ExePath is the absolute path of the helper executable.
	ExePath string
	// DataDir receives the manifest on platforms that register it elsewhere.
	DataDir string
	// HomeDir overrides the user's home directory.
	HomeDir string
}

func (o Options) home() (string, error) {
	if o.HomeDir != "" {
		return o.HomeDir, nil
	}
	return os.UserHomeDir()
}

// Result describes where the host was registered.
type Result struct {
	ManifestPath string
	RegistryKey  string
	Manifest     Manifest
}

// Install writes the manifest and registers it with the browser. Without an
// extension id, the origins of an existing manifest are kept.
func Install(opts Options) (Result, error) {
	if opts.Browser == "" {
		opts.Browser = Chrome
	}
	if !filepath.IsAbs(opts.ExePath) {
		return Result{}, fmt.Errorf("installer: executable path %q is not absolute", opts.ExePath)
	}

	var origins []string
	if opts.ExtensionID != "" {
		if err := ValidateExtensionID(opts.ExtensionID); err != nil {
			return Result{}, err
		}
		origins = []string{Origin(opts.ExtensionID)}
	} else if path, ok := Lookup(opts); ok {
		if existing, err := ReadManifest(path); err == nil && len(existing.AllowedOrigins) > 0 {
			origins = existing.AllowedOrigins
		}
	}
	if len(origins) == 0 {
		return Result{}, ErrNoExtensionID
	}

	manifest := NewManifest(opts.ExePath, origins)
	data, err := manifest.Encode()
	if err != nil {
		return Result{}, err
	}

	result, err := register(opts, data)
	if err != nil {
		return Result{}, err
	}
	result.Manifest = manifest
	return result, nil
}

// Uninstall removes the registration. Removing a host that was never
// installed is not an error; removed reports whether anything was there.
func Uninstall(opts Options) (removed bool, err error) {
	if opts.Browser == "" {
		opts.Browser = Chrome
	}
	return unregister(opts)
}

// Lookup returns the path of the installed manifest, if any.
func Lookup(opts Options) (string, bool) {
	if opts.Browser == "" {
		opts.Browser = Chrome
	}
	return lookup(opts)
}

// writeManifest writes data to dir/name.
func writeManifest(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// removeManifest deletes dir/name, reporting whether it existed.
func removeManifest(dir, name string) (bool, error) {
	err := os.Remove(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
