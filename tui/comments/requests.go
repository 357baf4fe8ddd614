package comments

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

// CommentsLoadedMsg completes a successful request.
type CommentsLoadedMsg struct {
	ModelID int64
	ReqSeq  int
	Page    app.CommentPage
}

// CommentsErrorMsg completes a failed request.
type CommentsErrorMsg struct {
	ModelID int64
	ReqSeq  int
	Err     error
}

// LoadingFailureMsg is emitted once per failed request. Err.Error() is
// suitable for display.
type LoadingFailureMsg struct {
	ModelID int64
	Err     error
}

// Owns reports whether msg was produced by m.
func (m Model) Owns(msg LoadingFailureMsg) bool {
	return msg.ModelID == m.id
}

func (m Model) startRequest(parent *domain.Comment, q app.CommentQuery) (Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.reqSeq++
	m.cancel = cancel
	m.pending = parent

	m.logger.Debug("requesting comments",
		zap.Int("seq", m.reqSeq),
		zap.Int("count", q.Count),
		zap.String("ref", q.Reference),
		zap.String("parent", q.ParentID),
		zap.Stringer("status", m.status),
	)
	return m, fetchComments(ctx, m.service, m.id, m.reqSeq, q, parent)
}

func fetchComments(ctx context.Context, svc app.CommentService, id int64, seq int, q app.CommentQuery, parent *domain.Comment) tea.Cmd {
	return func() tea.Msg {
		page, err := svc.FetchComments(ctx, q, parent)
		if err != nil {
			return CommentsErrorMsg{ModelID: id, ReqSeq: seq, Err: err}
		}
		return CommentsLoadedMsg{ModelID: id, ReqSeq: seq, Page: page}
	}
}

// finishRequest releases the request context. The sequence is kept so a
// duplicate completion is still recognized as ours.
func (m Model) finishRequest() Model {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.pending = nil
	return m
}

// abort cancels the request in flight. Its completion, if any, carries an
// outdated sequence and is dropped by Update.
func (m Model) abort() Model {
	if m.cancel == nil {
		return m
	}
	m.logger.Debug("aborting comment request", zap.Int("seq", m.reqSeq))
	m.cancel()
	m.cancel = nil
	m.pending = nil
	m.reqSeq++
	return m
}
