package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansetechnoapp/syncmark-helper/internal/installer"
	"github.com/ansetechnoapp/syncmark-helper/internal/storage"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

// Process modes selected with --mode.
const (
	ModeSettings = "settings"
	ModeHost     = "host"
)

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := &AppProvider{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	return rootCmd.ExecuteContext(ctx)
}

var rootLong = dedent.Dedent(`
	SyncMark keeps the bookmarks of the SyncMark browser extension in a local
	file so they survive reinstalls and can be shared between browsers.

	Run without arguments to open the settings screen. Browsers start the
	helper with the extension origin as first argument, which selects host
	mode: length-prefixed JSON messages on stdin and stdout.

	Data lives in ~/Documents/SyncMark unless SYNCMARK_DIR or --dir says
	otherwise.`)

var rootExample = dedent.Dedent(`
	# Register the helper with Chrome for an extension
	syncmark install --extension-id abcdefghijklmnopabcdefghijklmnop

	# Show whether sync is enabled and where data is stored
	syncmark status

	# Serve the browser on stdin/stdout
	syncmark --mode host`)

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "syncmark",
		Short:         "Local bookmark store for the SyncMark browser extension",
		Long:          rootLong,
		Example:       rootExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			if len(args) > 0 {
				if installer.IsOrigin(args[0]) {
					return runHost(cmd.Context(), app)
				}
				return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}

			switch provider.Mode {
			case "", ModeSettings:
				return runSettings(app)
			case ModeHost:
				return runHost(cmd.Context(), app)
			default:
				return fmt.Errorf("unknown mode %q (want %s or %s)", provider.Mode, ModeSettings, ModeHost)
			}
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch provider.Backend {
			case "", storage.BackendJSON, storage.BackendSQLite:
				return nil
			default:
				return fmt.Errorf("unknown backend %q (want %s or %s)", provider.Backend, storage.BackendJSON, storage.BackendSQLite)
			}
		},
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().StringVar(&provider.Dir, "dir", "", "Data directory (default: $SYNCMARK_DIR or ~/Documents/SyncMark)")
	rootCmd.PersistentFlags().StringVar(&provider.Backend, "backend", storage.BackendJSON, "Bookmark store backend: json or sqlite")
	rootCmd.Flags().StringVar(&provider.Mode, "mode", ModeSettings, "Process mode: settings or host")

	// Chrome on Windows appends --parent-window=<handle> when it launches a host.
	rootCmd.Flags().IntVar(&provider.ParentWindow, "parent-window", 0, "")
	_ = rootCmd.Flags().MarkHidden("parent-window")

	rootCmd.AddCommand(newHostCmd(provider))
	rootCmd.AddCommand(newSettingsCmd(provider))
	rootCmd.AddCommand(newStatusCmd(provider))
	rootCmd.AddCommand(newEnableCmd(provider))
	rootCmd.AddCommand(newDisableCmd(provider))
	rootCmd.AddCommand(newInstallCmd(provider))
	rootCmd.AddCommand(newUninstallCmd(provider))
	rootCmd.AddCommand(newImportCmd(provider))
	rootCmd.AddCommand(newExportCmd(provider))
	rootCmd.AddCommand(newSearchCmd(provider))
	rootCmd.AddCommand(newCheckCmd(provider))

	return rootCmd
}
