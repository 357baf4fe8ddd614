package thread

import (
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

type stubService struct {
	calls   []app.CommentQuery
	n       int // Top-level comments per page
	hasNext bool
	replies int // Reply total of every top-level comment
	op      string
	err     error
}

func (s *stubService) FetchComments(_ context.Context, q app.CommentQuery, parent *domain.Comment) (app.CommentPage, error) {
	s.calls = append(s.calls, q)
	if s.err != nil {
		return app.CommentPage{}, s.err
	}
	n, prefix := s.n, "c"
	if !parent.IsRoot() {
		n, prefix = q.Count, parent.ID+"_r"
	}
	out := make([]*domain.Comment, 0, n)
	for i := 0; i < n; i++ {
		c := domain.NewComment(parent)
		c.ID = fmt.Sprintf("%s%d", prefix, parent.ChildCount()+i)
		c.OrderKey = "ok_" + c.ID
		c.Text = "text of " + c.ID
		c.Permalink = "https://9gag.com/gag/a1#cs_comment_id=" + c.ID
		c.User = domain.User{DisplayName: "user" + c.ID, UserID: "u" + c.ID}
		if parent.IsRoot() {
			c.SetTotalCount(s.replies)
		}
		out = append(out, c)
	}
	return app.CommentPage{Comments: out, Total: 100, HasNext: s.hasNext, OPUserID: s.op}, nil
}

func (s *stubService) last() app.CommentQuery {
	return s.calls[len(s.calls)-1]
}

type stubOpener struct {
	opened []string
	err    error
}

func (o *stubOpener) Open(u string) error {
	o.opened = append(o.opened, u)
	return o.err
}

func testGag() domain.Gag {
	return domain.Gag{ID: "a1", URL: "http://9gag.com/gag/a1", Title: "Test post", Votes: 1200, Comments: 40}
}

func newTestThread(svc *stubService, op Opener) Model {
	return New(testGag(), svc, Options{PageSize: 5, Opener: op}).SetSize(100, 200)
}

// drive runs cmd the way the Bubble Tea loop would, feeding every produced
// message back into the model. Spinner ticks are skipped.
func drive(t *testing.T, m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, nil:
		default:
			out = append(out, msg)
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m, out
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, []tea.Msg) {
	t.Helper()
	m, cmd := m.Update(k)
	return drive(t, m, cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, svc *stubService, op Opener) Model {
	t.Helper()
	m, cmd := newTestThread(svc, op).Load()
	m, _ = drive(t, m, cmd)
	if m.Comments().LoadingStatus() != domain.StatusIdle {
		t.Fatalf("expected idle after load, got %s", m.Comments().LoadingStatus())
	}
	return m
}

func selectedID(m Model) string {
	c, ok := m.Selected()
	if !ok {
		return ""
	}
	return c.ID
}
