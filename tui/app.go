package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/infra/config"
	"github.com/CrestNiraj12/gagbook/tui/comments"
	"github.com/CrestNiraj12/gagbook/tui/common"
	"github.com/CrestNiraj12/gagbook/tui/feed"
	"github.com/CrestNiraj12/gagbook/tui/thread"
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(rawURL string) error
}

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Gags         app.GagService
	Comments     app.CommentService
	Opener       Opener
	Logger       *zap.Logger
	Sections     []domain.Section
	State        config.UIState // Restored section and sorting
	StatePath    string         // Where State is saved; empty disables saving
	PageSize     int
	CommentLevel int
}

type activeView int

const (
	feedView activeView = iota
	threadView
)

type stateSavedMsg struct {
	Err error
}

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps   Deps
	logger *zap.Logger
	active activeView
	feed   feed.Model
	thread thread.Model
	keys   common.KeyMap
	state  config.UIState
	width  int
	height int
	status string // Transient status message
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return App{
		deps:   deps,
		logger: logger,
		active: feedView,
		feed: feed.New(deps.Gags, feed.Options{
			Sections: deps.Sections,
			Section:  deps.State.Section,
			PageSize: deps.PageSize,
			Opener:   deps.Opener,
			Logger:   logger.Named("feed"),
		}),
		keys:  common.DefaultKeyMap(),
		state: deps.State,
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.feed, _ = a.feed.Update(msg)
		if a.active == threadView {
			a.thread = a.thread.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.closeThread()
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Quit) {
			if a.active == feedView {
				return a, tea.Quit
			}
			a.closeThread()
			return a, nil
		}
		a.status = ""

	case feed.OpenThreadMsg:
		a.closeThread()
		a.thread = thread.New(msg.Gag, a.deps.Comments, thread.Options{
			PageSize: a.deps.PageSize,
			Level:    a.deps.CommentLevel,
			Sorting:  domain.ParseSorting(a.state.Sorting),
			Opener:   a.deps.Opener,
			Logger:   a.logger.Named("comments"),
		}).SetSize(a.width, a.height)
		a.active = threadView
		a.thread, cmd = a.thread.Load()
		return a, cmd

	case thread.BackMsg:
		a.closeThread()
		return a, nil

	case thread.SortingChangedMsg:
		a.state.Sorting = msg.Sorting.String()
		return a, a.saveState()

	case feed.SectionChangedMsg:
		a.state.Section = msg.Section.Path
		return a, a.saveState()

	case stateSavedMsg:
		if msg.Err != nil {
			a.logger.Warn("saving ui state failed", zap.Error(msg.Err))
			a.status = "Could not save settings: " + msg.Err.Error()
		}
		return a, nil

	case spinner.TickMsg:
		// Each spinner only reacts to its own ticks.
		var feedCmd, threadCmd tea.Cmd
		a.feed, feedCmd = a.feed.Update(msg)
		if a.active == threadView {
			a.thread, threadCmd = a.thread.Update(msg)
		}
		return a, tea.Batch(feedCmd, threadCmd)

	case comments.CommentsLoadedMsg, comments.CommentsErrorMsg, comments.LoadingFailureMsg:
		if a.active != threadView {
			return a, nil
		}
		a.thread, cmd = a.thread.Update(msg)
		return a, cmd

	case feed.GagsLoadedMsg, feed.GagsErrorMsg, feed.GagsPageLoadedMsg, feed.GagsPageErrorMsg:
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	}

	switch a.active {
	case threadView:
		a.thread, cmd = a.thread.Update(msg)
	default:
		a.feed, cmd = a.feed.Update(msg)
	}
	return a, cmd
}

func (a *App) closeThread() {
	if a.active != threadView {
		return
	}
	a.thread = a.thread.Close()
	a.active = feedView
}

func (a App) saveState() tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	st := a.state
	return func() tea.Msg {
		return stateSavedMsg{Err: config.SaveUIState(path, st)}
	}
}

// View renders the active sub-model.
func (a App) View() string {
	var s string
	switch a.active {
	case threadView:
		s = a.thread.View()
	default:
		s = a.feed.View()
	}
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}
	return s
}
