package thread

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/tui/comments"
	"github.com/CrestNiraj12/gagbook/tui/common"
)

// Rows left below the cursor before the next top-level page is requested.
const prefetchTrigger = 3

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(rawURL string) error
}

// BackMsg asks the parent view to close the thread.
type BackMsg struct{}

// SortingChangedMsg reports a sorting the user picked, for persistence.
type SortingChangedMsg struct {
	Sorting domain.Sorting
}

// OpenFailedMsg reports that the browser could not be started.
type OpenFailedMsg struct {
	Err error
}

// Options configures a thread view.
type Options struct {
	PageSize int
	Level    int
	Sorting  domain.Sorting
	Opener   Opener
	Logger   *zap.Logger
}

// Model shows the comments of one gag.
type Model struct {
	gag       domain.Gag
	comments  comments.Model
	layout    *layout
	opener    Opener
	keys      common.KeyMap
	spinner   spinner.Model
	width     int
	height    int
	start     int // First rendered row
	showHints bool
	notice    string
	now       func() time.Time
}

// New creates the thread view of gag. Nothing is requested until Load.
func New(gag domain.Gag, service app.CommentService, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	l := newLayout()
	cm := comments.New(service, comments.Options{
		PostURL:  gag.URL,
		PageSize: opts.PageSize,
		Level:    opts.Level,
		Sorting:  opts.Sorting,
		Logger:   opts.Logger,
	}).WithObserver(l)
	l.root = cm.Root()

	return Model{
		gag:      gag,
		comments: cm,
		layout:   l,
		opener:   opts.Opener,
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		now:      time.Now,
	}
}

// Load requests the first page of comments.
func (m Model) Load() (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.comments, cmd = m.comments.FetchMore(nil)
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// Close aborts the request in flight.
func (m Model) Close() Model {
	m.comments = m.comments.Close()
	return m
}

func (m Model) Gag() domain.Gag {
	return m.gag
}

func (m Model) Comments() comments.Model {
	return m.comments
}

// Selected returns the comment under the cursor.
func (m Model) Selected() (*domain.Comment, bool) {
	r, ok := m.layout.current()
	if !ok || r.kind != rowComment {
		return nil, false
	}
	return r.comment, true
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
	return m
}

// Update handles messages for the thread view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case comments.CommentsLoadedMsg, comments.CommentsErrorMsg:
		m.comments, cmd = m.comments.Update(msg)
		m.ensureCursorVisible()
		return m, cmd

	case comments.LoadingFailureMsg:
		if m.comments.Owns(msg) {
			m.notice = "Loading comments failed: " + msg.Err.Error()
		}
		return m, nil

	case OpenFailedMsg:
		m.notice = "Could not open browser: " + msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.layout.move(-1)
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		m.layout.move(1)
		m.ensureCursorVisible()
		return m.prefetch()

	case key.Matches(msg, m.keys.Enter):
		return m.expandSelected()

	case key.Matches(msg, m.keys.LoadMore):
		if !m.comments.CanFetchMore(nil) {
			return m, nil
		}
		return m.fetchMore(nil)

	case key.Matches(msg, m.keys.Refresh):
		m.notice = ""
		var cmd tea.Cmd
		m.comments, cmd = m.comments.Refresh(nil)
		return m, tea.Batch(cmd, m.spinner.Tick)

	case key.Matches(msg, m.keys.Sort):
		sorting := m.comments.Sorting().Toggle()
		m.comments = m.comments.SetSorting(sorting)
		m.notice = "Sorted by " + sorting.String()
		var cmd tea.Cmd
		m.comments, cmd = m.comments.Refresh(nil)
		return m, tea.Batch(cmd, m.spinner.Tick, func() tea.Msg {
			return SortingChangedMsg{Sorting: sorting}
		})

	case key.Matches(msg, m.keys.Open):
		target := m.gag.URL
		if c, ok := m.Selected(); ok && c.Permalink != "" {
			target = c.Permalink
		}
		return m, m.openURL(target)

	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints

	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

// expandSelected loads the next replies of the selected comment, or the
// next page behind a "more" row.
func (m Model) expandSelected() (Model, tea.Cmd) {
	r, ok := m.layout.current()
	if !ok {
		return m, nil
	}
	parent := r.comment
	if parent.IsRoot() {
		parent = nil
	}
	if r.kind == rowComment && r.comment.ChildCount() >= r.comment.TotalCount() {
		return m, nil
	}
	if !m.comments.CanFetchMore(parent) {
		return m, nil
	}
	return m.fetchMore(parent)
}

// prefetch requests the next top-level page when the cursor nears the end.
func (m Model) prefetch() (Model, tea.Cmd) {
	if len(m.layout.rows)-m.layout.cursor > prefetchTrigger {
		return m, nil
	}
	if m.comments.IsEmpty() || !m.comments.CanFetchMore(nil) {
		return m, nil
	}
	return m.fetchMore(nil)
}

func (m Model) fetchMore(parent *domain.Comment) (Model, tea.Cmd) {
	m.notice = ""
	var cmd tea.Cmd
	m.comments, cmd = m.comments.FetchMore(parent)
	if cmd == nil {
		return m, nil
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) openURL(rawURL string) tea.Cmd {
	op := m.opener
	if op == nil || rawURL == "" {
		return nil
	}
	return func() tea.Msg {
		if err := op.Open(rawURL); err != nil {
			return OpenFailedMsg{Err: err}
		}
		return nil
	}
}
