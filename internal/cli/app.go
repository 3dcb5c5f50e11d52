// Package cli implements the syncmark command-line interface.
package cli

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/ansetechnoapp/syncmark-helper/internal/logging"
	"github.com/ansetechnoapp/syncmark-helper/internal/storage"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Dir     string // data directory holding config, store and log
	Backend string // storage backend name
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Logger  zerolog.Logger
	HomeDir string // overrides the home directory for the installer

	// Hooks replaced in tests. Nil means the real implementation.
	RunProgram func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error)
	OpenURL    func(url string) error
	CopyURL    func(url string) error
	Executable func() (string, error)
	HTTPClient *http.Client
}

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	Dir          string
	Backend      string
	Mode         string
	ParentWindow int
	In           io.Reader
	Out          io.Writer
	Err          io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app: app,
		In:  app.In,
		Out: app.Out,
		Err: app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	dir := p.Dir
	if dir == "" {
		var err error
		if dir, err = storage.DefaultDir(); err != nil {
			return nil, err
		}
	}

	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	logger := logging.New(errOut, "syncmark")
	if os.Getenv(logging.EnvLogLevel) == "" {
		logger = logger.Level(zerolog.WarnLevel)
	}

	return &App{
		Dir:     dir,
		Backend: p.Backend,
		In:      in,
		Out:     out,
		Err:     errOut,
		Logger:  logger,
	}, nil
}

// ConfigPath returns the path of the sync flag file.
func (a *App) ConfigPath() string {
	return filepath.Join(a.Dir, storage.ConfigFileName)
}

// LogPath returns the path of the host log file.
func (a *App) LogPath() string {
	return filepath.Join(a.Dir, logging.FileName)
}

// BackendName returns the configured backend, defaulting to JSON.
func (a *App) BackendName() string {
	if a.Backend == "" {
		return storage.BackendJSON
	}
	return a.Backend
}

// Gate returns the config gate for the data directory.
func (a *App) Gate() *storage.Gate {
	return storage.NewGate(a.ConfigPath(), a.Logger)
}

// OpenStorage opens the configured store. The returned release func closes
// backends that hold resources.
func (a *App) OpenStorage() (storage.Storage, func(), error) {
	store, err := storage.OpenStorage(a.Backend, a.Dir, a.Logger)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if c, ok := store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				a.Logger.Warn().Err(err).Msg("closing storage")
			}
		}
	}
	return store, release, nil
}

// storagePath returns the file behind a store, if it has one.
func storagePath(store storage.Storage) string {
	if p, ok := store.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

func (a *App) runProgram(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m, opts...)
	}
	return tea.NewProgram(m, opts...).Run()
}

func (a *App) openURL(url string) error {
	if a.OpenURL != nil {
		return a.OpenURL(url)
	}
	return openInBrowser(url)
}

func (a *App) copyURL(url string) error {
	if a.CopyURL != nil {
		return a.CopyURL(url)
	}
	return clipboard.WriteAll(url)
}

// executable returns the resolved path of the running binary.
func (a *App) executable() (string, error) {
	if a.Executable != nil {
		return a.Executable()
	}
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
