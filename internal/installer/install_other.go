//go:build !windows

package installer

import (
	"os"
	"path/filepath"
	"runtime"
)

func manifestDir(opts Options) (string, error) {
	home, err := opts.home()
	if err != nil {
		return "", err
	}
	return ManifestDir(opts.Browser, runtime.GOOS, home)
}

func register(opts Options, manifest []byte) (Result, error) {
	dir, err := manifestDir(opts)
	if err != nil {
		return Result{}, err
	}
	path, err := writeManifest(dir, ManifestFileName, manifest)
	if err != nil {
		return Result{}, err
	}
	return Result{ManifestPath: path}, nil
}

func unregister(opts Options) (bool, error) {
	dir, err := manifestDir(opts)
	if err != nil {
		return false, err
	}
	return removeManifest(dir, ManifestFileName)
}

func lookup(opts Options) (string, bool) {
	dir, err := manifestDir(opts)
	if err != nil {
		return "", false
	}
	path := filepath.Join(dir, ManifestFileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
