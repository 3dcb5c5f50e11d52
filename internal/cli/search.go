package cli

import (
	"fmt"
	"strings"

	"github.com/ansetechnoapp/syncmark-helper/internal/picker"
	"github.com/ansetechnoapp/syncmark-helper/internal/search"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

var searchExample = dedent.Dedent(`
	# Pick among matches and open the choice in the browser
	syncmark search go docs

	# Copy the url instead of opening it
	syncmark search --copy github`)

// newSearchCmd creates the search command.
func newSearchCmd(provider *AppProvider) *cobra.Command {
	var copyURL bool

	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Fuzzy search stored bookmarks",
		Long:    "Fuzzy search stored bookmarks by title and url. A single match is used directly; several open a picker.",
		Example: searchExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			store, release, err := app.OpenStorage()
			if err != nil {
				return err
			}
			defer release()

			set, err := store.Load()
			if err != nil {
				return fmt.Errorf("loading bookmarks: %w", err)
			}

			results := search.FuzzySearchBookmarks(set, query)
			if len(results) == 0 {
				fmt.Fprintf(app.Out, "No bookmarks found for '%s'\n", query)
				return nil
			}

			selected := &results[0]
			action := picker.ActionOpen
			if len(results) > 1 {
				final, err := app.runProgram(picker.New(results, query))
				if err != nil {
					return fmt.Errorf("running picker: %w", err)
				}
				selected, action = final.(picker.Picker).Selected()
				if selected == nil {
					return nil
				}
			}
			if copyURL {
				action = picker.ActionCopy
			}

			if action == picker.ActionCopy {
				if err := app.copyURL(selected.URL); err != nil {
					return fmt.Errorf("copying url: %w", err)
				}
				fmt.Fprintf(app.Out, "Copied: %s\n", selected.URL)
				return nil
			}

			fmt.Fprintf(app.Out, "Opening: %s\n", label(selected))
			return app.openURL(selected.URL)
		},
	}

	cmd.Flags().BoolVarP(&copyURL, "copy", "c", false, "Copy the url to the clipboard instead of opening it")
	return cmd
}

func label(r *search.SearchResult) string {
	if title := r.Bookmark.Title(); title != "" {
		return title
	}
	return r.URL
}
