package cli

import (
	"fmt"
	"time"

	"github.com/ansetechnoapp/syncmark-helper/internal/culler"
	"github.com/spf13/cobra"
)

// newCheckCmd creates the check command.
func newCheckCmd(provider *AppProvider) *cobra.Command {
	var (
		prune       bool
		concurrency int
		timeout     time.Duration
	)
	defaults := culler.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check stored bookmarks for dead links",
		Long: `Check stored bookmarks for dead links.

Every http(s) url gets a HEAD request (GET when HEAD is refused). 404 and 410
count as dead, except on github.com and gitlab.com where they usually mean a
private page. With --prune dead bookmarks are removed from the store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			store, release, err := app.OpenStorage()
			if err != nil {
				return err
			}
			defer release()

			set, err := store.Load()
			if err != nil {
				return fmt.Errorf("loading bookmarks: %w", err)
			}

			opts := culler.DefaultOptions()
			opts.Concurrency = concurrency
			opts.Timeout = timeout
			opts.Client = app.HTTPClient
			if isTerminal(app.Err) {
				opts.OnProgress = func(completed, total int) {
					fmt.Fprintf(app.Err, "\rChecking %d/%d", completed, total)
					if completed == total {
						fmt.Fprintln(app.Err)
					}
				}
			}

			results := culler.CheckURLs(cmd.Context(), set, opts)
			for _, r := range results {
				switch r.Status {
				case culler.Dead:
					fmt.Fprintf(app.Out, "%s %d %s\n", red.Sprint("dead"), r.StatusCode, r.URL)
				case culler.Unreachable:
					fmt.Fprintf(app.Out, "%s %s %s\n", yellow.Sprint("unreachable"), r.Error, r.URL)
				}
			}

			counts := culler.Summary(results)
			fmt.Fprintf(app.Out, "Checked %d links: %d healthy, %d dead, %d unreachable, %d skipped\n",
				len(results), counts[culler.Healthy], counts[culler.Dead], counts[culler.Unreachable], counts[culler.Skipped])

			if counts[culler.Dead] == 0 {
				return nil
			}
			if !prune {
				fmt.Fprintln(app.Out, "Run with --prune to remove dead bookmarks")
				return nil
			}

			kept, removed := culler.Prune(set, results)
			if err := store.Save(kept); err != nil {
				return fmt.Errorf("saving bookmarks: %w", err)
			}
			fmt.Fprintf(app.Out, "%s %d dead bookmarks\n", green.Sprint("Removed"), removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Remove dead bookmarks from the store")
	cmd.Flags().IntVar(&concurrency, "concurrency", defaults.Concurrency, "Number of parallel requests")
	cmd.Flags().DurationVar(&timeout, "timeout", defaults.Timeout, "Timeout per request")
	return cmd
}
