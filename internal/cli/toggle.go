package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newEnableCmd creates the enable command.
func newEnableCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Turn bookmark synchronization on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(provider, true)
		},
	}
}

// newDisableCmd creates the disable command.
func newDisableCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Turn bookmark synchronization off",
		Long: `Turn bookmark synchronization off.

The helper keeps answering the extension, but with status "disabled" and
without touching the stored bookmarks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(provider, false)
		},
	}
}

func setEnabled(provider *AppProvider, enabled bool) error {
	app, err := provider.Get()
	if err != nil {
		return err
	}
	if err := app.Gate().SetEnabled(enabled); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	if enabled {
		fmt.Fprintln(app.Out, green.Sprint("Synchronization enabled"))
	} else {
		fmt.Fprintln(app.Out, yellow.Sprint("Synchronization disabled"))
	}
	return nil
}
