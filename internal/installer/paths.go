package installer

import (
	"fmt"
	"path/filepath"
)

// ManifestDir returns the per-user directory where browser looks for host
// manifests on goos. Windows has none; manifests are found via the registry.
func ManifestDir(browser Browser, goos, home string) (string, error) {
	switch goos {
	case "darwin":
		support := filepath.Join(home, "Library", "Application Support")
		switch browser {
		case Chrome:
			return filepath.Join(support, "Google", "Chrome", "NativeMessagingHosts"), nil
		case Chromium:
			return filepath.Join(support, "Chromium", "NativeMessagingHosts"), nil
		case Edge:
			return filepath.Join(support, "Microsoft Edge", "NativeMessagingHosts"), nil
		case Brave:
			return filepath.Join(support, "BraveSoftware", "Brave-Browser", "NativeMessagingHosts"), nil
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		config := filepath.Join(home, ".config")
		switch browser {
		case Chrome:
			return filepath.Join(config, "google-chrome", "NativeMessagingHosts"), nil
		case Chromium:
			return filepath.Join(config, "chromium", "NativeMessagingHosts"), nil
		case Edge:
			return filepath.Join(config, "microsoft-edge", "NativeMessagingHosts"), nil
		case Brave:
			return filepath.Join(config, "BraveSoftware", "Brave-Browser", "NativeMessagingHosts"), nil
		}
	case "windows":
		return "", fmt.Errorf("installer: %s manifests are registered in the Windows registry", browser)
	default:
		return "", fmt.Errorf("installer: unsupported platform %s", goos)
	}
	return "", fmt.Errorf("installer: unknown browser %q", browser)
}

// RegistryKey returns the HKEY_CURRENT_USER subkey that points a browser at
// the host manifest on Windows.
func RegistryKey(browser Browser) (string, error) {
	var vendor string
	switch browser {
	case Chrome:
		vendor = `Google\Chrome`
	case Chromium:
		vendor = `Chromium`
	case Edge:
		vendor = `Microsoft\Edge`
	case Brave:
		vendor = `BraveSoftware\Brave-Browser`
	default:
		return "", fmt.Errorf("installer: unknown browser %q", browser)
	}
	return `Software\` + vendor + `\NativeMessagingHosts\` + HostName, nil
}
