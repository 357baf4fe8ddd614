package domain

import "time"

// ContentType describes how a comment body should be presented.
type ContentType int

const (
	ContentText ContentType = iota
	ContentMedia
	ContentUserMedia
)

// Comment is a node of a comment tree. A synthetic root (no content, nil
// parent) owns the top-level comments; every other node owns its replies.
type Comment struct {
	ID        string
	CreatedAt time.Time
	Permalink string
	Text      string // Plain text, HTML stripped
	TextType  ContentType
	Media     Media
	OrderKey  string // Pagination cursor for top-level comments
	User      User
	Upvotes   int

	totalChildren   int
	hasMoreTopLevel bool

	parent   *Comment
	children []*Comment
}

// NewRootComment creates the synthetic root of a comment tree.
func NewRootComment() *Comment {
	return &Comment{}
}

// NewComment creates a comment whose parent reference points at parent.
// The comment is not attached to parent's children.
func NewComment(parent *Comment) *Comment {
	return &Comment{parent: parent}
}

// IsRoot reports whether c is the synthetic root.
func (c *Comment) IsRoot() bool {
	return c.parent == nil
}

// Parent returns the non-owning back reference, nil for the root.
func (c *Comment) Parent() *Comment {
	return c.parent
}

// ChildCount is the number of materialized children.
func (c *Comment) ChildCount() int {
	return len(c.children)
}

// TotalCount is the server-reported number of children.
func (c *Comment) TotalCount() int {
	return c.totalChildren
}

func (c *Comment) SetTotalCount(n int) {
	if n < 0 {
		n = 0
	}
	c.totalChildren = n
}

// HasMoreTopLevel is only meaningful on the root.
func (c *Comment) HasMoreTopLevel() bool {
	return c.hasMoreTopLevel
}

func (c *Comment) SetHasMoreTopLevel(v bool) {
	c.hasMoreTopLevel = v
}

// Child returns the i-th child.
func (c *Comment) Child(i int) (*Comment, bool) {
	if i < 0 || i >= len(c.children) {
		return nil, false
	}
	return c.children[i], true
}

// Children returns a copy of the materialized children.
func (c *Comment) Children() []*Comment {
	out := make([]*Comment, len(c.children))
	copy(out, c.children)
	return out
}

// LastChild returns the last materialized child, if any.
func (c *Comment) LastChild() (*Comment, bool) {
	return c.Child(len(c.children) - 1)
}

// IndexOf returns the position of child among c's children, or -1.
func (c *Comment) IndexOf(child *Comment) int {
	for i, ch := range c.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// Row is the position of c within its parent, 0 for the root.
func (c *Comment) Row() int {
	if c.parent == nil {
		return 0
	}
	return c.parent.IndexOf(c)
}

// Depth is 0 for the root, 1 for top-level comments.
func (c *Comment) Depth() int {
	d := 0
	for p := c.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// InsertChildren splices list at position at, clamped to [0, ChildCount].
// Each inserted node is re-parented to c.
func (c *Comment) InsertChildren(at int, list []*Comment) {
	if len(list) == 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(c.children) {
		at = len(c.children)
	}
	for _, ch := range list {
		ch.parent = c
	}
	merged := make([]*Comment, 0, len(c.children)+len(list))
	merged = append(merged, c.children[:at]...)
	merged = append(merged, list...)
	merged = append(merged, c.children[at:]...)
	c.children = merged
}

// AppendChildren adds list after the last child.
func (c *Comment) AppendChildren(list []*Comment) {
	c.InsertChildren(len(c.children), list)
}

// RemoveChild detaches and returns the i-th child together with its subtree.
func (c *Comment) RemoveChild(i int) (*Comment, bool) {
	ch, ok := c.Child(i)
	if !ok {
		return nil, false
	}
	c.children = append(c.children[:i], c.children[i+1:]...)
	ch.parent = nil
	return ch, true
}

// RemoveAllChildren discards every child. Server counters are kept.
func (c *Comment) RemoveAllChildren() {
	for _, ch := range c.children {
		ch.parent = nil
	}
	c.children = nil
}
