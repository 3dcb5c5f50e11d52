//go:build !windows

package installer

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gotest.tools/v3/assert"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("no manifest directory layout for " + runtime.GOOS)
	}
	return Options{
		Browser:     Chrome,
		ExtensionID: testExtensionID,
		ExePath:     "/usr/local/bin/syncmark",
		HomeDir:     t.TempDir(),
	}
}

func TestInstallWritesManifest(t *testing.T) {
	opts := testOptions(t)

	result, err := Install(opts)
	assert.NilError(t, err)

	wantDir, err := ManifestDir(Chrome, runtime.GOOS, opts.HomeDir)
	assert.NilError(t, err)
	assert.Equal(t, result.ManifestPath, filepath.Join(wantDir, ManifestFileName))
	assert.Equal(t, result.RegistryKey, "")

	m, err := ReadManifest(result.ManifestPath)
	assert.NilError(t, err)
	assert.DeepEqual(t, m, NewManifest(opts.ExePath, []string{Origin(testExtensionID)}))

	path, ok := Lookup(opts)
	assert.Check(t, ok)
	assert.Equal(t, path, result.ManifestPath)
}

func TestInstallKeepsExistingOrigins(t *testing.T) {
	opts := testOptions(t)
	_, err := Install(opts)
	assert.NilError(t, err)

	opts.ExtensionID = ""
	opts.ExePath = "/opt/syncmark/syncmark"
	result, err := Install(opts)
	assert.NilError(t, err)

	assert.Equal(t, result.Manifest.Path, "/opt/syncmark/syncmark")
	assert.DeepEqual(t, result.Manifest.AllowedOrigins, []string{Origin(testExtensionID)})
}

func TestInstallRequiresExtensionID(t *testing.T) {
	opts := testOptions(t)
	opts.ExtensionID = ""

	_, err := Install(opts)
	assert.ErrorIs(t, err, ErrNoExtensionID)

	opts.ExtensionID = "not-an-id"
	_, err = Install(opts)
	assert.ErrorIs(t, err, ErrInvalidExtensionID)
}

func TestInstallRequiresAbsolutePath(t *testing.T) {
	opts := testOptions(t)
	opts.ExePath = "syncmark"

	_, err := Install(opts)
	assert.ErrorContains(t, err, "not absolute")
}

func TestUninstall(t *testing.T) {
	opts := testOptions(t)

	removed, err := Uninstall(opts)
	assert.NilError(t, err, "uninstalling a host that is not installed succeeds")
	assert.Check(t, !removed)

	result, err := Install(opts)
	assert.NilError(t, err)

	removed, err = Uninstall(opts)
	assert.NilError(t, err)
	assert.Check(t, removed)

	_, statErr := os.Stat(result.ManifestPath)
	assert.Check(t, os.IsNotExist(statErr))
	_, ok := Lookup(opts)
	assert.Check(t, !ok)
}
