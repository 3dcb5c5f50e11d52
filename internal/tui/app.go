// Package tui is the interactive settings screen of the helper.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ansetechnoapp/syncmark-helper/internal/tui/layout"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// CheckboxLabel is the text next to the sync checkbox.
const CheckboxLabel = "Enable bookmark synchronization"

// Gate is the persisted sync flag edited by the screen.
type Gate interface {
	Path() string
	IsEnabled() bool
	SetEnabled(enabled bool) error
}

// Info is shown below the checkbox.
type Info struct {
	StoragePath string
	Backend     string
	Records     int
	LogPath     string
}

// App is the bubbletea model for the settings screen.
type App struct {
	gate   Gate
	info   Info
	keys   KeyMap
	styles Styles
	help   help.Model

	enabled bool
	saving  bool
	status  string
	err     error

	width int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Gate   Gate
	Info   Info
	Keys   *KeyMap // optional, uses default if nil
	Styles *Styles // optional, uses default if nil
}

// savedMsg reports the outcome of persisting the flag.
type savedMsg struct {
	enabled bool
	err     error
}

// NewApp creates a new App, reading the current flag from the gate.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	return App{
		gate:    params.Gate,
		info:    params.Info,
		keys:    keys,
		styles:  styles,
		help:    help.New(),
		enabled: params.Gate.IsEnabled(),
		width:   80,
	}
}

// Enabled reports the flag as currently displayed.
func (a App) Enabled() bool {
	return a.enabled
}

// Status returns the last status line.
func (a App) Status() string {
	return a.status
}

// Err returns the error of the last save, if it failed.
func (a App) Err() error {
	return a.err
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		return a, nil

	case savedMsg:
		a.saving = false
		a.err = msg.err
		if msg.err != nil {
			a.enabled = !msg.enabled
			a.status = fmt.Sprintf("Could not save settings: %v", msg.err)
			return a, nil
		}
		a.enabled = msg.enabled
		if msg.enabled {
			a.status = "Synchronization enabled"
		} else {
			a.status = "Synchronization disabled"
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll

		case key.Matches(msg, a.keys.Toggle):
			return a.set(!a.enabled)

		case key.Matches(msg, a.keys.Enable):
			if !a.enabled {
				return a.set(true)
			}

		case key.Matches(msg, a.keys.Disable):
			if a.enabled {
				return a.set(false)
			}
		}
	}

	return a, nil
}

// set shows the new state right away and saves it in the background.
func (a App) set(enabled bool) (tea.Model, tea.Cmd) {
	if a.saving {
		return a, nil
	}
	a.saving = true
	a.enabled = enabled
	a.status = "Saving..."
	gate := a.gate
	return a, func() tea.Msg {
		return savedMsg{enabled: enabled, err: gate.SetEnabled(enabled)}
	}
}

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("SyncMark settings"))
	b.WriteString("\n\n")

	if a.enabled {
		b.WriteString(a.styles.Checked.Render("[x]"))
	} else {
		b.WriteString(a.styles.Checkbox.Render("[ ]"))
	}
	b.WriteString(" ")
	b.WriteString(a.styles.Checkbox.Render(CheckboxLabel))
	b.WriteString("\n\n")

	b.WriteString(a.row("Config", a.gate.Path()))
	if a.info.StoragePath != "" {
		store := a.info.StoragePath
		if a.info.Backend != "" {
			store += " (" + a.info.Backend + ")"
		}
		b.WriteString(a.row("Storage", store))
		b.WriteString(a.row("Records", strconv.Itoa(a.info.Records)))
	}
	if a.info.LogPath != "" {
		b.WriteString(a.row("Log", a.info.LogPath))
	}

	if a.status != "" {
		b.WriteString("\n")
		if a.err != nil {
			b.WriteString(a.styles.Error.Render(a.status))
		} else {
			b.WriteString(a.styles.Status.Render(a.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render(a.help.View(a.keys)))

	return a.styles.App.Render(b.String())
}

// row renders a label/value line, shortening long values to the window.
func (a App) row(label, value string) string {
	// app padding (4) + label column (10)
	if avail := a.width - 14; avail > 0 {
		value, _ = layout.TruncateMiddle(value, avail)
	}
	return a.styles.Label.Render(label) + a.styles.Value.Render(value) + "\n"
}
