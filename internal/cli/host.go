package cli

import (
	"context"
	"fmt"

	"github.com/ansetechnoapp/syncmark-helper/internal/host"
	"github.com/ansetechnoapp/syncmark-helper/internal/logging"
	"github.com/ansetechnoapp/syncmark-helper/internal/nativemsg"
	"github.com/spf13/cobra"
)

// newHostCmd creates the host command.
func newHostCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "host",
		Short: "Serve the browser extension over native messaging",
		Long: `Serve the browser extension over native messaging.

Reads length-prefixed JSON requests from stdin and answers on stdout until
the browser closes the pipe. Logs go to syncmark.log in the data directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			return runHost(cmd.Context(), app)
		},
	}
}

// runHost wires stdin and stdout to a host and serves until EOF.
func runHost(ctx context.Context, app *App) error {
	if isTerminal(app.In) {
		fmt.Fprintln(app.Err, yellow.Sprint("syncmark host expects native messaging frames on stdin; it is normally started by the browser."))
	}

	logger, closer, err := logging.OpenFile(app.Dir, "syncmark-host")
	if err != nil {
		// Stdout belongs to the browser; keep going on the stderr logger.
		app.Logger.Warn().Err(err).Str("dir", app.Dir).Msg("opening log file")
		logger = app.Logger
	} else {
		defer closer.Close()
	}

	hostApp := *app
	hostApp.Logger = logger

	store, release, err := hostApp.OpenStorage()
	if err != nil {
		logger.Error().Err(err).Str("backend", hostApp.BackendName()).Msg("opening storage")
		return err
	}
	defer release()

	limits := nativemsg.DefaultLimits()
	h := host.New(
		hostApp.Gate(),
		store,
		nativemsg.NewReader(app.In, limits),
		nativemsg.NewWriter(app.Out, limits),
		logger,
	)

	logger.Info().
		Str("dir", app.Dir).
		Str("backend", hostApp.BackendName()).
		Msg("host started")
	err = h.Run(ctx)
	logger.Info().Err(err).Msg("host stopped")
	return err
}
