package cli

import (
	"fmt"

	"github.com/ansetechnoapp/syncmark-helper/internal/exporter"
	"github.com/spf13/cobra"
)

// newExportCmd creates the export command.
func newExportCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export stored bookmarks to an HTML file",
		Long: `Export stored bookmarks to a Netscape bookmark HTML file that browsers
can import. Defaults to ~/Downloads/syncmark-export-<date>.html.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			var outputPath string
			if len(args) == 1 {
				outputPath = args[0]
			} else if outputPath, err = exporter.DefaultExportPath(); err != nil {
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
			if err := exporter.WriteFile(outputPath, set); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Exported %d bookmarks to %s\n", len(set.URLs()), outputPath)
			return nil
		},
	}
}
