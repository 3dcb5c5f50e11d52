// syncmark is the local helper of the SyncMark browser extension.
package main

import (
	"os"

	"github.com/ansetechnoapp/syncmark-helper/internal/cli"
	"github.com/fatih/color"
)

var (
	run    = cli.Execute
	osExit = os.Exit
)

func main() {
	if err := run(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		osExit(1)
	}
}
