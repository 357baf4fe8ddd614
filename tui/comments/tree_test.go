package comments

import (
	"strings"
	"testing"

	"github.com/CrestNiraj12/gagbook/domain"
)

func TestTree_MutationsAreBracketed(t *testing.T) {
	svc := &stubComments{}
	m, rec := newTestModel(svc, nil)
	root := m.Root()

	if !m.InsertChildren(nil, 0, makeComments(root, "c", 0, 3)) {
		t.Fatalf("insert failed")
	}
	if !m.InsertChildren(nil, 1, makeComments(root, "x", 0, 2)) {
		t.Fatalf("middle insert failed")
	}
	if m.InsertChildren(nil, 0, nil) {
		t.Fatalf("empty insert must report false")
	}
	ids := []string{}
	for i := 0; i < m.ChildCount(nil); i++ {
		c, _ := m.ChildAt(nil, i)
		ids = append(ids, c.ID)
	}
	if strings.Join(ids, ",") != "c0,x0,x1,c1,c2" {
		t.Fatalf("unexpected order %v", ids)
	}

	x1, _ := m.ChildAt(nil, 2)
	if m.IndexOf(nil, x1) != 2 || m.IndexOf(nil, nil) != -1 {
		t.Fatalf("unexpected index lookups")
	}
	if _, ok := m.ChildAt(nil, 5); ok {
		t.Fatalf("out of range child must not be found")
	}

	m.AppendChildren(x1, makeComments(x1, "x1_r", 0, 2))
	if !m.RemoveChild(x1, 0) || m.RemoveChild(x1, 7) {
		t.Fatalf("unexpected remove results")
	}
	m.ResetChildren(x1)
	m.ResetChildren(x1)
	m.ResetChildren(nil)

	want := []string{
		"begin-insert root 0-2", "end-insert",
		"begin-insert root 1-2", "end-insert",
		"begin-insert x1 0-1", "end-insert",
		"begin-remove x1 0-0", "end-remove",
		"begin-remove x1 0-0", "end-remove",
		"begin-reset", "end-reset",
	}
	if strings.Join(rec.events, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected notifications:\n got %v\nwant %v", rec.events, want)
	}
	if !m.IsEmpty() {
		t.Fatalf("reset root must leave the model empty")
	}
}

func TestTree_InsertPastEndAppends(t *testing.T) {
	m, rec := newTestModel(&stubComments{}, nil)
	m.InsertChildren(nil, 0, makeComments(m.Root(), "c", 0, 2))
	m.InsertChildren(nil, 99, makeComments(m.Root(), "c", 2, 1))
	if last, _ := m.Root().LastChild(); last.ID != "c2" {
		t.Fatalf("expected append, got %s", last.ID)
	}
	if rec.events[2] != "begin-insert root 2-2" {
		t.Fatalf("notification must report the clamped position: %v", rec.events)
	}
}

type orderObserver struct {
	duringOK bool
	checked  bool
}

func (o *orderObserver) BeginInsert(p *domain.Comment, first, last int) {
	// Rows are not inserted yet when Begin fires.
	o.checked = true
	o.duringOK = p.ChildCount() == first
}
func (o *orderObserver) EndInsert()                            {}
func (o *orderObserver) BeginRemove(*domain.Comment, int, int) {}
func (o *orderObserver) EndRemove()                            {}
func (o *orderObserver) BeginReset()                           {}
func (o *orderObserver) EndReset()                             {}

func TestTree_BeginFiresBeforeMutation(t *testing.T) {
	o := &orderObserver{}
	m := New(&stubComments{}, Options{PostURL: "u"}).WithObserver(o)
	m.AppendChildren(nil, makeComments(m.Root(), "c", 0, 3))
	if !o.checked || !o.duringOK {
		t.Fatalf("begin notification must precede the mutation")
	}
}

func TestTree_WithObserverDoesNotShareBacking(t *testing.T) {
	base := New(&stubComments{}, Options{PostURL: "u"})
	a := base.WithObserver(&recorder{})
	b := base.WithObserver(&recorder{})
	if len(a.observers) != 1 || len(b.observers) != 1 || a.observers[0] == b.observers[0] {
		t.Fatalf("observers must be independent per derived model")
	}
}
