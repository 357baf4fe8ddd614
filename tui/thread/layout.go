package thread

import "github.com/CrestNiraj12/gagbook/domain"

type rowKind int

const (
	rowComment rowKind = iota
	rowMore            // "load more" entry below the last loaded child of parent
)

type row struct {
	kind    rowKind
	comment *domain.Comment // The comment, or the parent a rowMore loads into
	depth   int
}

func (r row) same(o row) bool {
	return r.kind == o.kind && r.comment == o.comment
}

// layout flattens the comment tree into rows. It listens to tree changes so
// the selection sticks to the same comment while pages arrive above or below it.
type layout struct {
	root     *domain.Comment
	rows     []row
	cursor   int
	selected row
	hasSel   bool
}

func newLayout() *layout {
	return &layout{}
}

func (l *layout) BeginInsert(*domain.Comment, int, int) {}

func (l *layout) EndInsert() {
	l.rebuild()
}

func (l *layout) BeginRemove(parent *domain.Comment, first, last int) {
	if !l.hasSel {
		return
	}
	for i := first; i <= last; i++ {
		c, ok := parent.Child(i)
		if !ok {
			continue
		}
		if within(l.selected.comment, c) {
			// The selection goes away with the subtree.
			if parent.IsRoot() {
				l.hasSel = false
				return
			}
			l.selected = row{kind: rowComment, comment: parent}
			return
		}
	}
	if l.selected.kind == rowMore && l.selected.comment == parent {
		l.selected = row{kind: rowComment, comment: parent}
	}
}

func (l *layout) EndRemove() {
	l.rebuild()
}

func (l *layout) BeginReset() {
	l.hasSel = false
	l.cursor = 0
}

func (l *layout) EndReset() {
	l.rebuild()
}

// within reports whether c is n or one of its descendants.
func within(c, n *domain.Comment) bool {
	for p := c; p != nil; p = p.Parent() {
		if p == n {
			return true
		}
	}
	return false
}

func (l *layout) rebuild() {
	l.rows = l.rows[:0]
	if l.root != nil {
		l.appendRows(l.root, 0)
	}

	if l.hasSel {
		for i, r := range l.rows {
			if r.same(l.selected) {
				l.cursor = i
				return
			}
		}
	}
	l.cursor = min(l.cursor, len(l.rows)-1)
	l.cursor = max(l.cursor, 0)
	l.syncSelection()
}

func (l *layout) appendRows(parent *domain.Comment, depth int) {
	for _, c := range parent.Children() {
		l.rows = append(l.rows, row{kind: rowComment, comment: c, depth: depth})
		l.appendRows(c, depth+1)
	}
	if hasMore(parent) && parent.ChildCount() > 0 {
		l.rows = append(l.rows, row{kind: rowMore, comment: parent, depth: depth})
	}
}

// hasMore reports whether parent has children left on the server.
func hasMore(parent *domain.Comment) bool {
	if parent.IsRoot() {
		return parent.HasMoreTopLevel()
	}
	return parent.ChildCount() < parent.TotalCount()
}

func (l *layout) syncSelection() {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		l.hasSel = false
		return
	}
	l.selected = l.rows[l.cursor]
	l.hasSel = true
}

func (l *layout) move(delta int) {
	if len(l.rows) == 0 {
		return
	}
	l.cursor = max(0, min(len(l.rows)-1, l.cursor+delta))
	l.syncSelection()
}

func (l *layout) current() (row, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return row{}, false
	}
	return l.rows[l.cursor], true
}
