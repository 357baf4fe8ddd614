package comments

import "github.com/CrestNiraj12/gagbook/domain"

// Observer is told about every structural change of the tree. Begin* is
// called before the mutation, End* after it; the tree is never changed
// outside such a pair.
type Observer interface {
	BeginInsert(parent *domain.Comment, first, last int)
	EndInsert()
	BeginRemove(parent *domain.Comment, first, last int)
	EndRemove()
	BeginReset()
	EndReset()
}

// WithObserver registers o for tree notifications.
func (m Model) WithObserver(o Observer) Model {
	m.observers = append(m.observers[:len(m.observers):len(m.observers)], o)
	return m
}

// Root returns the synthetic root of the tree.
func (m Model) Root() *domain.Comment {
	return m.root
}

// node maps nil to the root.
func (m Model) node(n *domain.Comment) *domain.Comment {
	if n == nil {
		return m.root
	}
	return n
}

func (m Model) IsRoot(n *domain.Comment) bool {
	return m.node(n) == m.root
}

func (m Model) ChildCount(n *domain.Comment) int {
	return m.node(n).ChildCount()
}

// TotalCount is the server-reported child count of n.
func (m Model) TotalCount(n *domain.Comment) int {
	return m.node(n).TotalCount()
}

func (m Model) ChildAt(n *domain.Comment, i int) (*domain.Comment, bool) {
	return m.node(n).Child(i)
}

// IndexOf returns the position of child below n, or -1.
func (m Model) IndexOf(n, child *domain.Comment) int {
	if child == nil {
		return -1
	}
	return m.node(n).IndexOf(child)
}

// IsEmpty reports whether no top-level comment is loaded.
func (m Model) IsEmpty() bool {
	return m.root.ChildCount() == 0
}

// IsOriginalPoster reports whether c was written by the author of the post.
func (m Model) IsOriginalPoster(c *domain.Comment) bool {
	op := m.root.User.UserID
	return c != nil && op != "" && c.User.UserID == op
}

// InsertChildren splices list into n's children at position at.
func (m Model) InsertChildren(n *domain.Comment, at int, list []*domain.Comment) bool {
	parent := m.node(n)
	if len(list) == 0 {
		return false
	}
	if at < 0 || at > parent.ChildCount() {
		at = parent.ChildCount()
	}
	last := at + len(list) - 1
	for _, o := range m.observers {
		o.BeginInsert(parent, at, last)
	}
	parent.InsertChildren(at, list)
	for _, o := range m.observers {
		o.EndInsert()
	}
	return true
}

// AppendChildren adds list after n's last child.
func (m Model) AppendChildren(n *domain.Comment, list []*domain.Comment) bool {
	return m.InsertChildren(n, m.ChildCount(n), list)
}

// RemoveChild removes the i-th child of n together with its subtree.
func (m Model) RemoveChild(n *domain.Comment, i int) bool {
	parent := m.node(n)
	if _, ok := parent.Child(i); !ok {
		return false
	}
	for _, o := range m.observers {
		o.BeginRemove(parent, i, i)
	}
	parent.RemoveChild(i)
	for _, o := range m.observers {
		o.EndRemove()
	}
	return true
}

// ResetChildren removes every child of n. On the root this is a full reset.
func (m Model) ResetChildren(n *domain.Comment) {
	parent := m.node(n)
	count := parent.ChildCount()
	if count == 0 {
		return
	}
	if parent == m.root {
		for _, o := range m.observers {
			o.BeginReset()
		}
		parent.RemoveAllChildren()
		for _, o := range m.observers {
			o.EndReset()
		}
		return
	}
	for _, o := range m.observers {
		o.BeginRemove(parent, 0, count-1)
	}
	parent.RemoveAllChildren()
	for _, o := range m.observers {
		o.EndRemove()
	}
}

// attached reports whether n is still reachable from the root.
func (m Model) attached(n *domain.Comment) bool {
	for p := n; p != nil; p = p.Parent() {
		if p == m.root {
			return true
		}
		parent := p.Parent()
		if parent != nil && parent.IndexOf(p) < 0 {
			return false
		}
	}
	return false
}
