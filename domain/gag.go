package domain

// GagType is the post kind reported by the feed.
type GagType string

const (
	GagPhoto    GagType = "Photo"
	GagAnimated GagType = "Animated"
	GagAlbum    GagType = "Album"
	GagArticle  GagType = "Article"
)

// Gag is a single post of a section feed.
type Gag struct {
	ID             string
	URL            string // Canonical post URL, used to address its comments
	Title          string
	Votes          int
	Comments       int
	NSFW           bool
	Type           GagType
	ImageURL       string
	FullImageURL   string
	VideoURL       string
	ImageSize      Size
	IsVideo        bool
	IsPartialImage bool // Long post where ImageURL is only a cover
}

// Supported reports whether the gag has something displayable.
func (g Gag) Supported() bool {
	switch g.Type {
	case GagPhoto, GagAlbum:
		return g.ImageURL != ""
	case GagAnimated:
		return g.VideoURL != "" || g.ImageURL != ""
	default:
		return false
	}
}

// Section is a feed of gags.
type Section struct {
	Name    string
	Path    string // "hot", "trending", "fresh"
	GroupID int
}

// DefaultSections returns the built-in section list.
func DefaultSections() []Section {
	return []Section{
		{Name: "Hot", Path: "hot", GroupID: 1},
		{Name: "Trending", Path: "trending", GroupID: 1},
		{Name: "Fresh", Path: "fresh", GroupID: 1},
	}
}
