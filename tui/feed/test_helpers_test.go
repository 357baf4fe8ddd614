package feed

import (
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

// stubGags serves pages keyed by the OlderThan cursor.
type stubGags struct {
	calls []app.GagQuery
	ctxs  []context.Context
	pages map[string][]domain.Gag
	errs  map[string]error
}

func (s *stubGags) FetchGags(ctx context.Context, q app.GagQuery) ([]domain.Gag, error) {
	s.calls = append(s.calls, q)
	s.ctxs = append(s.ctxs, ctx)
	if err := s.errs[q.OlderThan]; err != nil {
		return nil, err
	}
	return s.pages[q.OlderThan], nil
}

func (s *stubGags) last() app.GagQuery {
	return s.calls[len(s.calls)-1]
}

type stubOpener struct {
	opened []string
}

func (o *stubOpener) Open(u string) error {
	o.opened = append(o.opened, u)
	return nil
}

func makeGag(id string) domain.Gag {
	return domain.Gag{
		ID:       id,
		URL:      "http://9gag.com/gag/" + id,
		Title:    "Post " + id,
		Type:     domain.GagPhoto,
		ImageURL: "https://img-9gag-fun.9cache.com/photo/" + id + "_460s.jpg",
	}
}

func makeGags(prefix string, from, n int) []domain.Gag {
	out := make([]domain.Gag, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, makeGag(fmt.Sprintf("%s%02d", prefix, i)))
	}
	return out
}

// collect runs cmd and returns every message it produces, flattening
// batches. Spinner ticks are skipped.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
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
		}
	}
	return out
}

// apply feeds msgs into m.
func apply(m Model, msgs []tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func loadedFeed(t *testing.T, svc *stubGags, opts Options) Model {
	t.Helper()
	m := New(svc, opts)
	m = apply(m, collect(t, m.Init()))
	if m.Loading() {
		t.Fatalf("expected feed to be loaded")
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
