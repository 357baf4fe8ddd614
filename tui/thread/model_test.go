package thread

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/tui/comments"
)

func TestLoad_BuildsRowsAndSelectsFirst(t *testing.T) {
	svc := &stubService{n: 3}
	m := loaded(t, svc, nil)

	if len(m.layout.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(m.layout.rows))
	}
	if selectedID(m) != "c0" {
		t.Fatalf("expected first comment selected, got %q", selectedID(m))
	}
	q := svc.calls[0]
	if q.Count != 5 || q.Reference != "" || q.PostURL != "http://9gag.com/gag/a1" {
		t.Fatalf("unexpected first query %+v", q)
	}
}

func TestSelection_StaysOnCommentWhenRowsAreInsertedAbove(t *testing.T) {
	svc := &stubService{n: 3, replies: 2}
	m := loaded(t, svc, nil)
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("j"))
	if selectedID(m) != "c2" {
		t.Fatalf("expected c2 selected, got %q", selectedID(m))
	}

	c0, _ := m.comments.ChildAt(nil, 0)
	var cmd tea.Cmd
	m.comments, cmd = m.comments.FetchMore(c0)
	m, _ = drive(t, m, cmd)

	if selectedID(m) != "c2" {
		t.Fatalf("selection moved to %q", selectedID(m))
	}
	if m.layout.cursor != 4 {
		t.Fatalf("expected cursor to follow the comment to row 4, got %d", m.layout.cursor)
	}
}

func TestEnter_LoadsRepliesPageByPage(t *testing.T) {
	svc := &stubService{n: 2, replies: 7}
	m := loaded(t, svc, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	q := svc.last()
	if q.ParentID != "c0" || q.Count != 5 {
		t.Fatalf("unexpected reply query %+v", q)
	}
	if selectedID(m) != "c0" {
		t.Fatalf("selection must stay on the expanded comment, got %q", selectedID(m))
	}
	// c0, five replies, the "more" row, c1
	if len(m.layout.rows) != 8 || m.layout.rows[6].kind != rowMore {
		t.Fatalf("unexpected rows after first reply page: %d", len(m.layout.rows))
	}

	for range 6 {
		m, _ = press(t, m, runes("j"))
	}
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected the more row to be selected")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	q = svc.last()
	if q.Count != 2 || q.Reference != "c0_r4" {
		t.Fatalf("unexpected follow-up reply query %+v", q)
	}
	c0, _ := m.comments.ChildAt(nil, 0)
	if c0.ChildCount() != 7 || len(svc.calls) != 3 {
		t.Fatalf("expected all replies loaded in 3 requests, got %d children / %d calls", c0.ChildCount(), len(svc.calls))
	}
}

func TestEnter_NoRequestWithoutReplies(t *testing.T) {
	svc := &stubService{n: 2}
	m := loaded(t, svc, nil)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(svc.calls) != 1 {
		t.Fatalf("expected no reply request, got %d calls", len(svc.calls))
	}
}

func TestLoadMore_ContinuesAfterLastOrderKey(t *testing.T) {
	svc := &stubService{n: 2, hasNext: true}
	m := loaded(t, svc, nil)
	m, _ = press(t, m, runes("m"))

	if q := svc.last(); q.Reference != "ok_c1" || q.ParentID != "" {
		t.Fatalf("unexpected paging query %+v", q)
	}
	if m.comments.ChildCount(nil) != 4 {
		t.Fatalf("expected 4 top-level comments, got %d", m.comments.ChildCount(nil))
	}
	if selectedID(m) != "c0" {
		t.Fatalf("selection moved to %q", selectedID(m))
	}
}

func TestPrefetch_NearTheEnd(t *testing.T) {
	svc := &stubService{n: 5, hasNext: true}
	m := loaded(t, svc, nil)

	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("j"))
	if len(svc.calls) != 1 {
		t.Fatalf("prefetch fired too early")
	}
	m, _ = press(t, m, runes("j"))
	if len(svc.calls) != 2 {
		t.Fatalf("expected prefetch near the end, got %d calls", len(svc.calls))
	}
	if m.comments.ChildCount(nil) != 10 {
		t.Fatalf("expected second page appended, got %d", m.comments.ChildCount(nil))
	}
}

func TestSort_TogglesAndRefreshes(t *testing.T) {
	svc := &stubService{n: 3}
	m := loaded(t, svc, nil)
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("j"))

	m, msgs := press(t, m, runes("s"))
	q := svc.last()
	if q.Sorting != domain.SortFresh || q.Reference != "" {
		t.Fatalf("expected fresh refresh query, got %+v", q)
	}
	found := false
	for _, msg := range msgs {
		if sc, ok := msg.(SortingChangedMsg); ok && sc.Sorting == domain.SortFresh {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SortingChangedMsg, got %#v", msgs)
	}
	if selectedID(m) != "c0" {
		t.Fatalf("refresh must reset the selection, got %q", selectedID(m))
	}
}

func TestFailure_IsShown(t *testing.T) {
	svc := &stubService{n: 2, hasNext: true}
	m := loaded(t, svc, nil)

	svc.err = errors.New("boom")
	m, _ = press(t, m, runes("m"))
	if m.comments.LoadingStatus() != domain.StatusFetchMoreFailure {
		t.Fatalf("expected fetch more failure, got %s", m.comments.LoadingStatus())
	}
	if !strings.Contains(m.notice, "boom") {
		t.Fatalf("expected failure notice, got %q", m.notice)
	}
	if !strings.Contains(m.View(), "Error: boom") {
		t.Fatalf("expected error in view")
	}
}

func TestFailure_FromOtherModelIgnored(t *testing.T) {
	m := loaded(t, &stubService{n: 1}, nil)
	m, _ = m.Update(comments.LoadingFailureMsg{ModelID: -1, Err: errors.New("other")})
	if m.notice != "" {
		t.Fatalf("foreign failure must be ignored, got %q", m.notice)
	}
}

func TestBack_EmitsBackMsg(t *testing.T) {
	m := loaded(t, &stubService{n: 1}, nil)
	_, msgs := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(msgs) != 1 {
		t.Fatalf("expected BackMsg, got %#v", msgs)
	}
	if _, ok := msgs[0].(BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %#v", msgs[0])
	}
}

func TestOpen_UsesPermalinkOfSelection(t *testing.T) {
	op := &stubOpener{}
	m := loaded(t, &stubService{n: 1}, op)
	m, _ = press(t, m, runes("o"))
	if len(op.opened) != 1 || !strings.HasSuffix(op.opened[0], "cs_comment_id=c0") {
		t.Fatalf("unexpected opened urls %v", op.opened)
	}

	op.err = errors.New("no browser")
	m, _ = press(t, m, runes("o"))
	if !strings.Contains(m.notice, "no browser") {
		t.Fatalf("expected open failure notice, got %q", m.notice)
	}
}

func TestClose_DropsLateCompletion(t *testing.T) {
	svc := &stubService{n: 3}
	m, cmd := newTestThread(svc, nil).Load()
	m = m.Close()
	m, _ = drive(t, m, cmd)
	if !m.comments.IsEmpty() {
		t.Fatalf("completion after close must be dropped")
	}
}

func TestView_ShowsBadgesAndReplyHints(t *testing.T) {
	svc := &stubService{n: 2, replies: 3, op: "uc1"}
	m := loaded(t, svc, nil)
	v := m.View()
	if strings.Count(v, "OP") != 1 {
		t.Fatalf("expected exactly one OP badge:\n%s", v)
	}
	if !strings.Contains(v, "3 replies (enter)") {
		t.Fatalf("expected reply hint:\n%s", v)
	}
	if !strings.Contains(v, "sorted by hot") {
		t.Fatalf("expected sorting in header:\n%s", v)
	}
}

func TestView_LoadingState(t *testing.T) {
	m, _ := newTestThread(&stubService{n: 1}, nil).Load()
	if !strings.Contains(m.View(), "Loading comments") {
		t.Fatalf("expected loading indicator")
	}
}
