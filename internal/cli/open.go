package cli

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openInBrowser opens a URL in the default browser.
func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("opening urls is not supported on %s", runtime.GOOS)
	}
	return cmd.Start()
}
