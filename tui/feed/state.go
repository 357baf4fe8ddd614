package feed

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/tui/common"
)

const (
	defaultLimit    = 10
	prefetchTrigger = 3
	endOfListNotice = "Reached end of the list. There are no further posts available"
)

// GagsLoadedMsg is sent when the first page of a section arrives.
type GagsLoadedMsg struct {
	Gags     []domain.Gag
	QueryKey string
	ReqSeq   int
}

// GagsErrorMsg is sent when the first page of a section fails.
type GagsErrorMsg struct {
	Err      error
	QueryKey string
	ReqSeq   int
}

// GagsPageLoadedMsg is sent when an older page is loaded.
type GagsPageLoadedMsg struct {
	Gags     []domain.Gag
	QueryKey string
	ReqSeq   int
}

// GagsPageErrorMsg is sent when loading an older page fails.
type GagsPageErrorMsg struct {
	Err      error
	QueryKey string
	ReqSeq   int
}

// OpenThreadMsg asks the root model to show the comments of Gag.
type OpenThreadMsg struct {
	Gag domain.Gag
}

// SectionChangedMsg reports the section the user switched to.
type SectionChangedMsg struct {
	Section domain.Section
}

// OpenFailedMsg reports that the browser could not be started.
type OpenFailedMsg struct {
	Err error
}

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(rawURL string) error
}

// Options configures the feed.
type Options struct {
	Sections []domain.Section
	Section  string // Path of the initial section
	PageSize int
	Opener   Opener
	Logger   *zap.Logger
}

// Model holds the state for the section feed.
type Model struct {
	gags         app.GagService
	opener       Opener
	logger       *zap.Logger
	sections     []domain.Section
	section      int
	pageSize     int
	items        []domain.Gag
	cursor       int
	startIndex   int
	loading      bool
	loadingMore  bool
	hasMoreFeed  bool
	oldestFeedID string
	feedReqSeq   int
	reqCtx       context.Context
	cancelReq    context.CancelFunc
	err          error
	pagingNotice string
	keys         common.KeyMap
	spinner      spinner.Model
	width        int
	height       int
	showHints    bool
}

// New creates a feed model with injected dependencies.
func New(gags app.GagService, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	sections := opts.Sections
	if len(sections) == 0 {
		sections = domain.DefaultSections()
	}
	section := 0
	for i, sec := range sections {
		if sec.Path == opts.Section {
			section = i
			break
		}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		gags:      gags,
		reqCtx:    ctx,
		cancelReq: cancel,
		opener:    opts.Opener,
		logger:    logger,
		sections:  sections,
		section:   section,
		pageSize:  pageSize,
		loading:   true,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchGags(m.reqCtx, m.feedReqSeq),
		m.spinner.Tick,
	)
}

func (m Model) Items() []domain.Gag {
	return m.items
}

func (m Model) Loading() bool {
	return m.loading
}

func (m Model) Err() error {
	return m.err
}

func (m Model) Cursor() int {
	return m.cursor
}

// Section returns the active section.
func (m Model) Section() domain.Section {
	return m.sections[m.section]
}

// SelectedGag returns the currently highlighted gag, if any.
func (m Model) SelectedGag() (domain.Gag, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.Gag{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) currentFeedQueryKey() string {
	return m.Section().Path
}

// newRequest cancels the gag request in flight and returns the context of
// the next one.
func (m *Model) newRequest() context.Context {
	m.releaseRequest()
	m.reqCtx, m.cancelReq = context.WithCancel(context.Background())
	return m.reqCtx
}

func (m *Model) releaseRequest() {
	if m.cancelReq != nil {
		m.cancelReq()
	}
	m.cancelReq = nil
}
