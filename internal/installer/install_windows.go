//go:build windows

package installer

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

// windowsRegistry stores keys under HKEY_CURRENT_USER.
type windowsRegistry struct{}

func (windowsRegistry) SetDefault(keyPath, value string) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, keyPath, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	return key.SetStringValue("", value)
}

func (windowsRegistry) Default(keyPath string) (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, keyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", errKeyNotExist
		}
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue("")
	return value, err
}

func (windowsRegistry) DeleteKey(keyPath string) error {
	err := registry.DeleteKey(registry.CURRENT_USER, keyPath)
	if errors.Is(err, registry.ErrNotExist) {
		return errKeyNotExist
	}
	return err
}

func register(opts Options, manifest []byte) (Result, error) {
	return registryRegister(windowsRegistry{}, opts, manifest)
}

func unregister(opts Options) (bool, error) {
	return registryUnregister(windowsRegistry{}, opts)
}

func lookup(opts Options) (string, bool) {
	return registryLookup(windowsRegistry{}, opts)
}
