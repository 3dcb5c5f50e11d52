package cli

import (
	"fmt"

	"github.com/ansetechnoapp/syncmark-helper/internal/installer"
	"github.com/spf13/cobra"
)

// newStatusCmd creates the status command.
func newStatusCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync flag, data paths and host registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			gate := app.Gate()
			store, release, err := app.OpenStorage()
			if err != nil {
				return err
			}
			defer release()

			state := red.Sprint("disabled")
			if gate.IsEnabled() {
				state = green.Sprint("enabled")
			}
			records := "unreadable"
			if set, err := store.Load(); err == nil {
				records = fmt.Sprint(len(set))
			} else {
				app.Logger.Warn().Err(err).Msg("loading bookmarks")
			}

			fmt.Fprintf(app.Out, "%s %s\n", bold.Sprint("Sync:   "), state)
			fmt.Fprintf(app.Out, "%s %s\n", bold.Sprint("Config: "), gate.Path())
			fmt.Fprintf(app.Out, "%s %s (%s)\n", bold.Sprint("Store:  "), storagePath(store), app.BackendName())
			fmt.Fprintf(app.Out, "%s %s\n", bold.Sprint("Records:"), records)
			fmt.Fprintf(app.Out, "%s %s\n", bold.Sprint("Log:    "), app.LogPath())

			fmt.Fprintln(app.Out)
			fmt.Fprintln(app.Out, bold.Sprint("Native messaging host ")+cyan.Sprint(installer.HostName))
			for _, browser := range installer.Browsers {
				path, ok := installer.Lookup(installer.Options{
					Browser: browser,
					DataDir: app.Dir,
					HomeDir: app.HomeDir,
				})
				if ok {
					fmt.Fprintf(app.Out, "  %-9s %s\n", browser, path)
				} else {
					fmt.Fprintf(app.Out, "  %-9s %s\n", browser, yellow.Sprint("not installed"))
				}
			}
			return nil
		},
	}
}
