package comments

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

const (
	defaultPageSize = 10
	defaultLevel    = 2
)

var nextModelID atomic.Int64

// Options configures a comment Model.
type Options struct {
	PostURL  string
	PageSize int // Comments per request
	Level    int // Reply depth the server expands inline
	Sorting  domain.Sorting
	Auth     string
	Logger   *zap.Logger
}

// requestState tracks the single outstanding request.
type requestState struct {
	status  domain.LoadingStatus
	reqSeq  int
	cancel  context.CancelFunc // nil when nothing is in flight
	pending *domain.Comment    // Parent the in-flight request fills
	err     error              // Last surfaced failure
}

// Model owns a comment tree and loads it page by page. All tree mutations
// happen inside Update or the methods below, i.e. on the Bubble Tea loop.
type Model struct {
	id        int64
	service   app.CommentService
	logger    *zap.Logger
	postURL   string
	pageSize  int
	level     int
	auth      string
	sorting   domain.Sorting
	root      *domain.Comment
	observers []Observer
	requestState
}

// New creates an empty, idle comment model for a post.
func New(service app.CommentService, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	level := opts.Level
	if level <= 0 {
		level = defaultLevel
	}
	return Model{
		id:       nextModelID.Add(1),
		service:  service,
		logger:   logger.With(zap.String("post", opts.PostURL)),
		postURL:  opts.PostURL,
		pageSize: pageSize,
		level:    level,
		auth:     opts.Auth,
		sorting:  opts.Sorting,
		root:     domain.NewRootComment(),
		requestState: requestState{
			status: domain.StatusIdle,
		},
	}
}

func (m Model) PostURL() string {
	return m.postURL
}

func (m Model) LoadingStatus() domain.LoadingStatus {
	return m.status
}

// Err returns the last failure surfaced by the model.
func (m Model) Err() error {
	return m.err
}

func (m Model) Sorting() domain.Sorting {
	return m.sorting
}

// SetSorting only changes the order used by the next request.
func (m Model) SetSorting(s domain.Sorting) Model {
	m.sorting = s
	return m
}

// Refresh discards the children of n and loads them again, aborting any
// request in flight.
func (m Model) Refresh(n *domain.Comment) (Model, tea.Cmd) {
	if m.postURL == "" {
		m.logger.Warn("refresh without post url")
		return m, nil
	}
	switch m.status {
	case domain.StatusRefreshRequested:
		return m, nil
	case domain.StatusRefreshing, domain.StatusFetchMoreProcessing:
		m = m.abort()
	}
	m.status = domain.StatusRefreshRequested
	return m.FetchMore(n)
}

// CanFetchMore reports whether FetchMore(n) would issue a request.
func (m Model) CanFetchMore(n *domain.Comment) bool {
	switch m.status {
	case domain.StatusIdle, domain.StatusFetchMoreFailure:
	default:
		return false
	}

	parent := m.node(n)
	if parent == m.root {
		// The root total counts replies too, so the server flag decides.
		if parent.ChildCount() == 0 {
			return true
		}
		return parent.HasMoreTopLevel()
	}
	return parent.ChildCount() < parent.TotalCount()
}

// FetchMore requests the next page of n's children. It returns a nil command
// when the current state does not allow a request.
func (m Model) FetchMore(n *domain.Comment) (Model, tea.Cmd) {
	if m.postURL == "" {
		m.logger.Warn("fetch more without post url")
		return m, nil
	}
	parent := m.node(n)

	switch m.status {
	case domain.StatusRefreshRequested:
		m.status = domain.StatusRefreshing
		m.ResetChildren(parent)
	case domain.StatusIdle:
		if m.root.ChildCount() == 0 {
			m.status = domain.StatusRefreshing
		} else {
			m.status = domain.StatusFetchMoreProcessing
		}
	case domain.StatusFetchMoreFailure:
		m.status = domain.StatusFetchMoreProcessing
	default:
		return m, nil
	}

	return m.startRequest(parent, m.queryFor(parent))
}

// queryFor computes count and cursor for the next page of parent.
func (m Model) queryFor(parent *domain.Comment) app.CommentQuery {
	current := parent.ChildCount()
	count := m.pageSize
	if parent != m.root || current > 0 {
		count = max(min(m.pageSize, parent.TotalCount()-current), 0)
	}

	ref := ""
	if last, ok := parent.LastChild(); ok {
		if parent == m.root {
			ref = last.OrderKey
		} else {
			ref = last.ID
		}
	}

	q := app.CommentQuery{
		PostURL:   m.postURL,
		Count:     count,
		Level:     m.level,
		Reference: ref,
		Sorting:   m.sorting,
		Auth:      m.auth,
	}
	if parent != m.root {
		q.ParentID = parent.ID
	}
	return q
}

// Close aborts any outstanding request. The model must not be used afterwards.
func (m Model) Close() Model {
	return m.abort()
}

// Update applies completions of the model's own requests.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CommentsLoadedMsg:
		if msg.ModelID != m.id || msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		return m.onLoaded(msg)

	case CommentsErrorMsg:
		if msg.ModelID != m.id || msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		return m.onFailure(msg.Err)
	}
	return m, nil
}

func (m Model) onLoaded(msg CommentsLoadedMsg) (Model, tea.Cmd) {
	if m.cancel == nil {
		m.logger.Warn("dropping comments", zap.Error(domain.StateError(m.status, "success without request")))
		return m, nil
	}
	parent := m.pending
	m = m.finishRequest()

	if !m.attached(parent) {
		m.logger.Debug("parent left the tree before its comments arrived")
		m.status = domain.StatusIdle
		return m, nil
	}

	page := msg.Page
	if parent == m.root {
		m.root.SetTotalCount(page.Total)
		m.root.SetHasMoreTopLevel(page.HasNext)
		if page.OPUserID != "" {
			m.root.User.UserID = page.OPUserID
		}
	}

	m.AppendChildren(parent, page.Comments)

	if parent != m.root {
		// Keep the counters consistent with what the server actually delivered.
		if parent.ChildCount() > parent.TotalCount() {
			parent.SetTotalCount(parent.ChildCount())
		}
		if len(page.Comments) == 0 && !page.HasNext {
			parent.SetTotalCount(parent.ChildCount())
		}
	}

	m.logger.Debug("comments loaded",
		zap.Int("count", len(page.Comments)),
		zap.Bool("root", parent == m.root),
		zap.Int("children", parent.ChildCount()),
	)
	m.status = domain.StatusIdle
	m.err = nil
	return m, nil
}

func (m Model) onFailure(err error) (Model, tea.Cmd) {
	m = m.finishRequest()

	switch m.status {
	case domain.StatusFetchMoreProcessing:
		m.status = domain.StatusFetchMoreFailure
	case domain.StatusRefreshing:
		m.status = domain.StatusRefreshFailure
	default:
		m.logger.Warn("comment request failed", zap.Error(domain.StateError(m.status, "failure")))
	}

	m.logger.Info("loading comments failed", zap.Error(err))
	m.err = err
	id := m.id
	return m, func() tea.Msg {
		return LoadingFailureMsg{ModelID: id, Err: err}
	}
}
