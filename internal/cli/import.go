package cli

import (
	"fmt"
	"os"

	"github.com/ansetechnoapp/syncmark-helper/internal/importer"
	"github.com/ansetechnoapp/syncmark-helper/internal/model"
	"github.com/spf13/cobra"
)

// newImportCmd creates the import command.
func newImportCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from a browser HTML export",
		Long: `Import bookmarks from a Netscape bookmark HTML file, as written by the
export function of every major browser.

Bookmarks whose URL is already stored are skipped; stored records are kept
as they are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			imported, err := importer.ParseHTMLBookmarks(file)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			store, release, err := app.OpenStorage()
			if err != nil {
				return err
			}
			defer release()

			local, err := store.Load()
			if err != nil {
				return fmt.Errorf("loading bookmarks: %w", err)
			}

			merged, added, skipped := model.ImportMerge(local, imported)
			if added > 0 {
				if err := store.Save(merged); err != nil {
					return fmt.Errorf("saving bookmarks: %w", err)
				}
			}

			fmt.Fprintf(app.Out, "Imported %d bookmarks", added)
			if skipped > 0 {
				fmt.Fprintf(app.Out, " (%d duplicates skipped)", skipped)
			}
			fmt.Fprintln(app.Out)
			return nil
		},
	}
}
