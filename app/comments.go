package app

import (
	"context"

	"github.com/CrestNiraj12/gagbook/domain"
)

// CommentQuery describes one page of comments.
type CommentQuery struct {
	PostURL   string
	Count     int
	Level     int    // Reply depth the server expands inline
	Reference string // Cursor: empty for the first page
	ParentID  string // Set when paginating replies of a comment
	Sorting   domain.Sorting
	Auth      string // Optional session token, may be empty
}

// CommentPage is a parsed response. Comments are the immediate children of
// the requested parent; nested replies are already wired to their own parent.
type CommentPage struct {
	Comments []*domain.Comment
	Total    int
	HasNext  bool
	OPUserID string
}

// CommentService fetches comment pages for a post.
type CommentService interface {
	// FetchComments returns the next page of children for parent.
	// The returned comments reference parent but are not attached to it.
	FetchComments(ctx context.Context, q CommentQuery, parent *domain.Comment) (CommentPage, error)
}
