package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// errKeyNotExist is returned by a registryStore for a missing key.
var errKeyNotExist = errors.New("installer: registry key does not exist")

// registryStore is the part of the Windows registry the installer touches:
// the default value of keys under HKEY_CURRENT_USER.
type registryStore interface {
	SetDefault(keyPath, value string) error
	Default(keyPath string) (string, error)
	DeleteKey(keyPath string) error
}

// RegistryManifestName is the manifest file written to the data directory
// for browser on Windows. Each browser gets its own file so their allowed
// origins stay independent.
func RegistryManifestName(browser Browser) string {
	return HostName + "." + string(browser) + ".json"
}

func registryRegister(reg registryStore, opts Options, manifest []byte) (Result, error) {
	keyPath, err := RegistryKey(opts.Browser)
	if err != nil {
		return Result{}, err
	}
	if opts.DataDir == "" {
		return Result{}, errors.New("installer: data directory required on Windows")
	}

	path, err := writeManifest(opts.DataDir, RegistryManifestName(opts.Browser), manifest)
	if err != nil {
		return Result{}, err
	}
	if err := reg.SetDefault(keyPath, path); err != nil {
		return Result{}, fmt.Errorf("installer: setting HKCU\\%s: %w", keyPath, err)
	}
	removeSharedManifest(reg, opts.DataDir)
	return Result{ManifestPath: path, RegistryKey: `HKCU\` + keyPath}, nil
}

func registryUnregister(reg registryStore, opts Options) (bool, error) {
	keyPath, err := RegistryKey(opts.Browser)
	if err != nil {
		return false, err
	}

	removed := true
	if err := reg.DeleteKey(keyPath); err != nil {
		if !errors.Is(err, errKeyNotExist) {
			return false, fmt.Errorf("installer: deleting HKCU\\%s: %w", keyPath, err)
		}
		removed = false
	}

	if opts.DataDir != "" {
		fileRemoved, err := removeManifest(opts.DataDir, RegistryManifestName(opts.Browser))
		if err != nil {
			return removed, err
		}
		removed = removed || fileRemoved
		removeSharedManifest(reg, opts.DataDir)
	}
	return removed, nil
}

func registryLookup(reg registryStore, opts Options) (string, bool) {
	keyPath, err := RegistryKey(opts.Browser)
	if err != nil {
		return "", false
	}
	path, err := reg.Default(keyPath)
	if err != nil || path == "" {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// removeSharedManifest deletes the single manifest written by older
// versions for every browser, once no browser key points at it anymore.
func removeSharedManifest(reg registryStore, dataDir string) {
	shared := filepath.Join(dataDir, ManifestFileName)
	for _, browser := range Browsers {
		keyPath, err := RegistryKey(browser)
		if err != nil {
			continue
		}
		if path, err := reg.Default(keyPath); err == nil && filepath.Clean(path) == shared {
			return
		}
	}
	_, _ = removeManifest(dataDir, ManifestFileName)
}
