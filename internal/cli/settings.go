package cli

import (
	"github.com/ansetechnoapp/syncmark-helper/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newSettingsCmd creates the settings command.
func newSettingsCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Open the interactive settings screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			return runSettings(app)
		},
	}
}

func runSettings(app *App) error {
	info := tui.Info{
		Backend: app.BackendName(),
		LogPath: app.LogPath(),
	}

	store, release, err := app.OpenStorage()
	if err != nil {
		return err
	}
	defer release()
	info.StoragePath = storagePath(store)
	if set, err := store.Load(); err == nil {
		info.Records = len(set)
	} else {
		app.Logger.Warn().Err(err).Msg("loading bookmarks")
	}

	model := tui.NewApp(tui.AppParams{Gate: app.Gate(), Info: info})
	_, err = app.runProgram(model, tea.WithAltScreen())
	return err
}
