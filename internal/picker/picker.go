package picker

import (
	"fmt"
	"strings"

	"github.com/ansetechnoapp/syncmark-helper/internal/search"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Underline(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("66"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Action is what the user chose to do with the selected result.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionCopy
)

// KeyMap defines the picker's key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Copy   key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up", "ctrl+p"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down", "ctrl+n"),
			key.WithHelp("j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/Esc", "cancel"),
		),
	}
}

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	results []search.SearchResult
	query   string
	keys    KeyMap
	cursor  int
	action  Action
	width   int
	height  int
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		keys:    DefaultKeyMap(),
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.action = ActionNone
			return p, tea.Quit

		case key.Matches(msg, p.keys.Open):
			if len(p.results) > 0 {
				p.action = ActionOpen
			}
			return p, tea.Quit

		case key.Matches(msg, p.keys.Copy):
			if len(p.results) > 0 {
				p.action = ActionCopy
				return p, tea.Quit
			}
			return p, nil

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}
	}

	return p, nil
}

// visibleRange returns the slice of results that fits the terminal height.
// Each result takes two lines, plus header and footer.
func (p Picker) visibleRange() (int, int) {
	rows := (p.height - 5) / 2
	if rows < 1 {
		rows = 1
	}
	if rows >= len(p.results) {
		return 0, len(p.results)
	}
	start := p.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(p.results) {
		start = len(p.results) - rows
	}
	return start, start + rows
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	start, end := p.visibleRange()
	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(highlightTitle(result, style))
		if folder := result.Bookmark.StringField("folder"); folder != "" {
			b.WriteString("  " + folderStyle.Render(folder))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "   %s\n", urlStyle.Render(result.URL))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(p.helpLine()))

	return b.String()
}

func (p Picker) helpLine() string {
	bindings := []key.Binding{p.keys.Down, p.keys.Up, p.keys.Open, p.keys.Copy, p.keys.Cancel}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// highlightTitle renders the title part of the match key, underlining
// matched characters.
func highlightTitle(r search.SearchResult, style lipgloss.Style) string {
	title := r.Bookmark.Title()
	if !strings.HasPrefix(r.Key, title) {
		return style.Render(title)
	}

	matched := make(map[int]bool, len(r.MatchedIndexes))
	for _, idx := range r.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, ch := range title {
		if matched[i] {
			b.WriteString(matchStyle.Inherit(style).Render(string(ch)))
		} else {
			b.WriteString(style.Render(string(ch)))
		}
	}
	return b.String()
}

// Selected returns the selected result and the chosen action.
// The action is ActionNone when the user cancelled.
func (p Picker) Selected() (*search.SearchResult, Action) {
	if p.action == ActionNone || p.cursor >= len(p.results) {
		return nil, ActionNone
	}
	return &p.results[p.cursor], p.action
}

// Cancelled returns true if the user left without choosing.
func (p Picker) Cancelled() bool {
	return p.action == ActionNone
}
