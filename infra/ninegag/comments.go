package ninegag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the comment CDN.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

var _ app.CommentService = (*commentService)(nil)

// commentListResponse is the raw comment-list payload.
type commentListResponse struct {
	Payload *struct {
		Comments *[]commentJSON `json:"comments"`
		Total    int            `json:"total"`
		HasNext  *bool          `json:"hasNext"`
		OPUserID flexibleString `json:"opUserId"`
	} `json:"payload"`
}

type commentJSON struct {
	CommentID     string        `json:"commentId"`
	MediaText     string        `json:"mediaText"`
	Text          string        `json:"text"`
	Type          string        `json:"type"`
	Media         []mediaJSON   `json:"media"`
	Timestamp     int64         `json:"timestamp"`
	Permalink     string        `json:"permalink"`
	OrderKey      string        `json:"orderKey"`
	User          userJSON      `json:"user"`
	LikeCount     int           `json:"likeCount"`
	ChildrenTotal int           `json:"childrenTotal"`
	Children      []commentJSON `json:"children"`
}

type mediaJSON struct {
	ImageMetaByType struct {
		Image    *mediaMetaJSON `json:"image"`
		Animated *mediaMetaJSON `json:"animated"`
		Video    *mediaMetaJSON `json:"video"`
	} `json:"imageMetaByType"`
}

type mediaMetaJSON struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type userJSON struct {
	DisplayName string         `json:"displayName"`
	UserID      flexibleString `json:"userId"`
	AvatarURL   string         `json:"avatarUrl"`
	EmojiStatus string         `json:"emojiStatus"`
	Permissions []string       `json:"permissions"`
}

// flexibleString accepts both JSON strings and numbers.
type flexibleString string

func (f *flexibleString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleString(n.String())
	return nil
}

// FetchComments requests one page of children of parent.
func (s *commentService) FetchComments(ctx context.Context, q app.CommentQuery, parent *domain.Comment) (app.CommentPage, error) {
	data, err := s.client.GetComments(ctx, commentsPath, s.commentParams(q))
	if err != nil {
		return app.CommentPage{}, err
	}
	return s.parseComments(data, parent)
}

func (s *commentService) commentParams(q app.CommentQuery) url.Values {
	order, direction := q.Sorting.OrderParams()
	params := url.Values{}
	params.Set("appId", s.client.commentAppID)
	params.Set("url", q.PostURL)
	params.Set("count", strconv.Itoa(q.Count))
	params.Set("level", strconv.Itoa(q.Level))
	params.Set("order", order)
	params.Set("direction", direction)
	if q.Reference != "" {
		params.Set("ref", q.Reference)
	}
	if q.ParentID != "" {
		params.Set("commentId", q.ParentID)
	}
	if q.Auth != "" {
		params.Set("auth", q.Auth)
	}
	return params
}

func (s *commentService) parseComments(data []byte, parent *domain.Comment) (app.CommentPage, error) {
	var resp commentListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return app.CommentPage{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if resp.Payload == nil {
		return app.CommentPage{}, fmt.Errorf("%w: missing payload", domain.ErrParse)
	}
	p := resp.Payload
	if p.Comments == nil {
		return app.CommentPage{}, fmt.Errorf("%w: missing comments", domain.ErrParse)
	}
	hasNext := p.HasNext != nil && *p.HasNext
	// An empty list is only a finished thread when the server says so.
	if len(*p.Comments) == 0 && (p.HasNext == nil || hasNext) {
		return app.CommentPage{}, fmt.Errorf("%w: empty page without end of list", domain.ErrParse)
	}

	return app.CommentPage{
		Comments: mapComments(*p.Comments, parent),
		Total:    p.Total,
		HasNext:  hasNext,
		OPUserID: string(p.OPUserID),
	}, nil
}

func mapComments(raw []commentJSON, parent *domain.Comment) []*domain.Comment {
	out := make([]*domain.Comment, 0, len(raw))
	for _, r := range raw {
		if r.CommentID == "" {
			continue
		}
		c := domain.NewComment(parent)
		c.ID = r.CommentID
		c.CreatedAt = time.Unix(r.Timestamp, 0)
		c.Permalink = r.Permalink
		c.OrderKey = r.OrderKey
		c.Upvotes = r.LikeCount
		c.SetTotalCount(r.ChildrenTotal)
		c.TextType = contentType(r.Type)
		c.User = mapUser(r.User)
		c.Text = plainText(r.MediaText)
		if c.Text == "" {
			c.Text = plainText(r.Text)
		}
		if c.TextType != domain.ContentText && len(r.Media) > 0 {
			c.Media = mapMedia(r.Media[0])
		}

		if len(r.Children) > 0 {
			c.AppendChildren(mapComments(r.Children, c))
			if c.TotalCount() < c.ChildCount() {
				c.SetTotalCount(c.ChildCount())
			}
		}
		out = append(out, c)
	}
	return out
}

func contentType(t string) domain.ContentType {
	switch strings.ToLower(t) {
	case "media":
		return domain.ContentMedia
	case "usermedia":
		return domain.ContentUserMedia
	default:
		return domain.ContentText
	}
}

func mapUser(u userJSON) domain.User {
	user := domain.User{
		DisplayName: u.DisplayName,
		UserID:      string(u.UserID),
		AvatarURL:   u.AvatarURL,
		EmojiStatus: u.EmojiStatus,
	}
	for _, p := range u.Permissions {
		switch strings.ToLower(p) {
		case "pro", "9gag_pro", "pro_plus":
			user.IsPro = true
		case "staff", "9gag_staff":
			user.IsStaff = true
		}
	}
	return user
}

func mapMedia(m mediaJSON) domain.Media {
	meta := m.ImageMetaByType
	var media domain.Media
	if meta.Image != nil {
		media.ImageURL = meta.Image.URL
		media.ImageSize = domain.Size{Width: meta.Image.Width, Height: meta.Image.Height}
	}
	if meta.Animated != nil {
		media.GIFURL = meta.Animated.URL
		media.GIFSize = domain.Size{Width: meta.Animated.Width, Height: meta.Animated.Height}
	}
	if meta.Video != nil {
		media.VideoURL = meta.Video.URL
		media.VideoSize = domain.Size{Width: meta.Video.Width, Height: meta.Video.Height}
	}

	switch {
	case media.GIFURL != "" || media.VideoURL != "":
		media.Kind = domain.MediaAnimated
	case meta.Image != nil && strings.EqualFold(meta.Image.Type, "ANIMATED"):
		media.Kind = domain.MediaAnimated
	case media.ImageURL != "":
		media.Kind = domain.MediaStatic
	default:
		media.Kind = domain.MediaInvalid
	}
	return media
}
