package comments

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

type stubCall struct {
	ctx    context.Context
	q      app.CommentQuery
	parent *domain.Comment
}

// stubComments answers with page (built for the requested parent) or err.
type stubComments struct {
	calls   []stubCall
	n       int
	total   int
	hasNext bool
	opUser  string
	err     error
}

func (s *stubComments) FetchComments(ctx context.Context, q app.CommentQuery, parent *domain.Comment) (app.CommentPage, error) {
	s.calls = append(s.calls, stubCall{ctx: ctx, q: q, parent: parent})
	if s.err != nil {
		return app.CommentPage{}, s.err
	}
	prefix := "c"
	if !parent.IsRoot() {
		prefix = parent.ID + "_r"
	}
	return app.CommentPage{
		Comments: makeComments(parent, prefix, parent.ChildCount(), s.n),
		Total:    s.total,
		HasNext:  s.hasNext,
		OPUserID: s.opUser,
	}, nil
}

func (s *stubComments) last() stubCall {
	return s.calls[len(s.calls)-1]
}

func makeComments(parent *domain.Comment, prefix string, offset, n int) []*domain.Comment {
	out := make([]*domain.Comment, 0, n)
	for i := 0; i < n; i++ {
		c := domain.NewComment(parent)
		c.ID = fmt.Sprintf("%s%d", prefix, offset+i)
		c.OrderKey = fmt.Sprintf("ok_%s%d", prefix, offset+i)
		c.User = domain.User{UserID: fmt.Sprintf("u%d", offset+i)}
		out = append(out, c)
	}
	return out
}

type recorder struct {
	events []string
}

func label(c *domain.Comment) string {
	if c.IsRoot() {
		return "root"
	}
	return c.ID
}

func (r *recorder) BeginInsert(p *domain.Comment, first, last int) {
	r.events = append(r.events, fmt.Sprintf("begin-insert %s %d-%d", label(p), first, last))
}
func (r *recorder) EndInsert() { r.events = append(r.events, "end-insert") }
func (r *recorder) BeginRemove(p *domain.Comment, first, last int) {
	r.events = append(r.events, fmt.Sprintf("begin-remove %s %d-%d", label(p), first, last))
}
func (r *recorder) EndRemove()  { r.events = append(r.events, "end-remove") }
func (r *recorder) BeginReset() { r.events = append(r.events, "begin-reset") }
func (r *recorder) EndReset()   { r.events = append(r.events, "end-reset") }

func newTestModel(svc *stubComments, logger *zap.Logger) (Model, *recorder) {
	rec := &recorder{}
	m := New(svc, Options{PostURL: "http://9gag.com/gag/a1", Logger: logger}).WithObserver(rec)
	return m, rec
}

// complete runs cmd the way the Bubble Tea loop would and feeds the result back.
func complete(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a request command")
	}
	return m.Update(cmd())
}

// loadFirstPage performs the initial load with n comments.
func loadFirstPage(t *testing.T, svc *stubComments, m Model, n, total int, hasNext bool) Model {
	t.Helper()
	svc.n, svc.total, svc.hasNext = n, total, hasNext
	m, cmd := m.FetchMore(nil)
	m, _ = complete(t, m, cmd)
	if m.LoadingStatus() != domain.StatusIdle {
		t.Fatalf("expected idle after first page, got %s", m.LoadingStatus())
	}
	return m
}
