package domain

// LoadingStatus is the state of a paginated comment model.
type LoadingStatus int

const (
	StatusIdle LoadingStatus = iota
	StatusFetchMoreProcessing
	StatusFetchMoreFailure
	StatusRefreshRequested
	StatusRefreshing
	StatusRefreshFailure
)

func (s LoadingStatus) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusFetchMoreProcessing:
		return "FetchMoreProcessing"
	case StatusFetchMoreFailure:
		return "FetchMoreFailure"
	case StatusRefreshRequested:
		return "RefreshRequested"
	case StatusRefreshing:
		return "Refreshing"
	case StatusRefreshFailure:
		return "RefreshFailure"
	default:
		return "Unknown"
	}
}

// IsBusy reports whether a request is pending or about to be issued.
func (s LoadingStatus) IsBusy() bool {
	switch s {
	case StatusFetchMoreProcessing, StatusRefreshRequested, StatusRefreshing:
		return true
	default:
		return false
	}
}

// Sorting selects the server-side ordering of comments.
type Sorting int

const (
	SortHot Sorting = iota
	SortFresh
)

func (s Sorting) String() string {
	if s == SortFresh {
		return "fresh"
	}
	return "hot"
}

// OrderParams returns the vendor order/direction pair.
func (s Sorting) OrderParams() (order, direction string) {
	if s == SortFresh {
		return "ts", "desc"
	}
	return "score", "desc"
}

// Toggle switches between Hot and Fresh.
func (s Sorting) Toggle() Sorting {
	if s == SortFresh {
		return SortHot
	}
	return SortFresh
}

// ParseSorting maps a persisted name back to a Sorting, defaulting to Hot.
func ParseSorting(name string) Sorting {
	if name == "fresh" {
		return SortFresh
	}
	return SortHot
}
