package app

import (
	"context"

	"github.com/CrestNiraj12/gagbook/domain"
)

type GagQuery struct {
	Section   string
	GroupID   int
	OlderThan string // ID of the last loaded gag, empty for the first page
	Count     int
}

// GagService fetches posts of a section feed.
type GagService interface {
	// FetchGags returns gags newest first. An exhausted feed yields domain.ErrEndOfList.
	FetchGags(ctx context.Context, q GagQuery) ([]domain.Gag, error)
}
