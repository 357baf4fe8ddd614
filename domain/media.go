package domain

import "fmt"

// MediaKind classifies an attached media item.
type MediaKind int

const (
	MediaInvalid MediaKind = iota
	MediaStatic
	MediaAnimated
)

func (k MediaKind) String() string {
	switch k {
	case MediaStatic:
		return "image"
	case MediaAnimated:
		return "animated"
	default:
		return "invalid"
	}
}

type Size struct {
	Width  int
	Height int
}

func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Media is the descriptor of an image, gif or video attached to a comment.
// The zero value is an invalid (absent) media item.
type Media struct {
	Kind      MediaKind
	ImageURL  string
	ImageSize Size
	GIFURL    string
	GIFSize   Size
	VideoURL  string
	VideoSize Size
}

func (m Media) IsValid() bool {
	return m.Kind != MediaInvalid
}

// PreferredURL picks the richest source available for the media kind.
func (m Media) PreferredURL() string {
	if m.Kind == MediaAnimated {
		if m.VideoURL != "" {
			return m.VideoURL
		}
		if m.GIFURL != "" {
			return m.GIFURL
		}
	}
	return m.ImageURL
}
