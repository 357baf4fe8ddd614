package ninegag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

type gagService struct {
	client *Client
}

// NewGagService creates a GagService backed by the post-list endpoint.
func NewGagService(client *Client) *gagService {
	return &gagService{client: client}
}

var _ app.GagService = (*gagService)(nil)

type postListResponse struct {
	Data struct {
		Posts        []postJSON `json:"posts"`
		DidEndOfList flexBool   `json:"didEndOfList"`
	} `json:"data"`
}

type postJSON struct {
	ID               string               `json:"id"`
	URL              string               `json:"url"`
	Title            string               `json:"title"`
	TotalVoteCount   int                  `json:"totalVoteCount"`
	CommentsCount    int                  `json:"commentsCount"`
	NSFW             flexBool             `json:"nsfw"`
	Type             string               `json:"type"`
	HasLongPostCover flexBool             `json:"hasLongPostCover"`
	Images           map[string]imageJSON `json:"images"`
}

type imageJSON struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// flexBool accepts true/false as well as 0/1.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "true":
		*f = true
	case "false", "null", "0", "0.0":
		*f = false
	default:
		var n float64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("invalid boolean %s", b)
		}
		*f = n != 0
	}
	return nil
}

// FetchGags requests a page of the section feed older than q.OlderThan.
func (s *gagService) FetchGags(ctx context.Context, q app.GagQuery) ([]domain.Gag, error) {
	params := url.Values{}
	group := q.GroupID
	if group <= 0 {
		group = 1
	}
	count := q.Count
	if count <= 0 {
		count = 10
	}
	params.Set("group", strconv.Itoa(group))
	params.Set("type", q.Section)
	params.Set("itemCount", strconv.Itoa(count))
	params.Set("entryTypes", "animated,photo")
	params.Set("offset", strconv.Itoa(count))
	if q.OlderThan != "" {
		params.Set("olderThan", q.OlderThan)
	}

	data, err := s.client.Get(ctx, postsPath, params)
	if err != nil {
		return nil, err
	}
	return s.parseGags(data)
}

func (s *gagService) parseGags(data []byte) ([]domain.Gag, error) {
	var resp postListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(resp.Data.Posts) == 0 {
		if resp.Data.DidEndOfList {
			return nil, domain.ErrEndOfList
		}
		return nil, domain.ErrParse
	}

	gags := make([]domain.Gag, 0, len(resp.Data.Posts))
	for _, p := range resp.Data.Posts {
		gags = append(gags, mapGag(p))
	}
	return gags, nil
}

func mapGag(p postJSON) domain.Gag {
	g := domain.Gag{
		ID:       p.ID,
		URL:      p.URL,
		Title:    plainText(p.Title),
		Votes:    p.TotalVoteCount,
		Comments: p.CommentsCount,
		NSFW:     bool(p.NSFW),
		Type:     domain.GagType(p.Type),
	}
	full := p.Images["image700"]

	switch g.Type {
	case domain.GagPhoto:
		if p.HasLongPostCover {
			cover := p.Images["image460c"]
			g.IsPartialImage = true
			g.ImageURL = cover.URL
			g.ImageSize = domain.Size{Width: cover.Width, Height: cover.Height}
			g.FullImageURL = full.URL
		} else {
			g.ImageURL = full.URL
			g.ImageSize = domain.Size{Width: full.Width, Height: full.Height}
		}
	case domain.GagAnimated:
		// Animated posts only ship a video source.
		g.IsVideo = true
		g.ImageURL = full.URL
		g.ImageSize = domain.Size{Width: full.Width, Height: full.Height}
		g.VideoURL = p.Images["image460sv"].URL
	case domain.GagAlbum:
		g.ImageURL = full.URL
		g.ImageSize = domain.Size{Width: full.Width, Height: full.Height}
	}
	return g
}
