package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ansetechnoapp/syncmark-helper/internal/installer"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

var installExample = dedent.Dedent(`
	# First install: the extension id is shown on chrome://extensions
	syncmark install --extension-id abcdefghijklmnopabcdefghijklmnop

	# Register with Brave as well, reusing the id already installed there
	syncmark install --browser brave --extension-id abcdefghijklmnopabcdefghijklmnop

	# Refresh the executable path after moving the binary
	syncmark install`)

// newInstallCmd creates the install command.
func newInstallCmd(provider *AppProvider) *cobra.Command {
	var browser, extensionID string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register the helper as a native messaging host",
		Long: `Register the helper as a native messaging host.

Writes ` + installer.ManifestFileName + ` pointing at this executable. On
Linux and macOS it goes into the browser's NativeMessagingHosts directory; on
Windows each browser gets ` + installer.HostName + `.<browser>.json in the data
directory, referenced from the registry.
Without --extension-id the allowed origins of an existing manifest are kept.`,
		Example: installExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			b, err := installer.ParseBrowser(browser)
			if err != nil {
				return err
			}
			exe, err := app.executable()
			if err != nil {
				return fmt.Errorf("locating executable: %w", err)
			}

			result, err := installer.Install(installer.Options{
				Browser:     b,
				ExtensionID: strings.TrimSpace(extensionID),
				ExePath:     exe,
				DataDir:     app.Dir,
				HomeDir:     app.HomeDir,
			})
			if errors.Is(err, installer.ErrNoExtensionID) {
				return fmt.Errorf("%w; pass --extension-id", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "%s %s for %s\n", green.Sprint("Installed"), installer.HostName, b)
			fmt.Fprintf(app.Out, "  manifest: %s\n", result.ManifestPath)
			if result.RegistryKey != "" {
				fmt.Fprintf(app.Out, "  registry: %s\n", result.RegistryKey)
			}
			fmt.Fprintf(app.Out, "  path:     %s\n", result.Manifest.Path)
			for _, origin := range result.Manifest.AllowedOrigins {
				fmt.Fprintf(app.Out, "  origin:   %s\n", origin)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&browser, "browser", string(installer.Chrome), "Browser to register with: chrome, chromium, edge or brave")
	cmd.Flags().StringVar(&extensionID, "extension-id", "", "ID of the SyncMark extension allowed to start the helper")
	return cmd
}

// newUninstallCmd creates the uninstall command.
func newUninstallCmd(provider *AppProvider) *cobra.Command {
	var browser string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the native messaging host registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			b, err := installer.ParseBrowser(browser)
			if err != nil {
				return err
			}

			removed, err := installer.Uninstall(installer.Options{
				Browser: b,
				DataDir: app.Dir,
				HomeDir: app.HomeDir,
			})
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(app.Out, "%s %s for %s\n", green.Sprint("Removed"), installer.HostName, b)
			} else {
				fmt.Fprintf(app.Out, "%s was not installed for %s\n", installer.HostName, b)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&browser, "browser", string(installer.Chrome), "Browser to unregister from: chrome, chromium, edge or brave")
	return cmd
}
