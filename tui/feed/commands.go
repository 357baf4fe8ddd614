package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/app"
	"github.com/CrestNiraj12/gagbook/domain"
)

func (m Model) query(olderThan string) app.GagQuery {
	sec := m.Section()
	return app.GagQuery{
		Section:   sec.Path,
		GroupID:   sec.GroupID,
		OlderThan: olderThan,
		Count:     m.pageSize,
	}
}

func (m Model) fetchGags(ctx context.Context, reqSeq int) tea.Cmd {
	gags := m.gags
	q := m.query("")
	queryKey := m.currentFeedQueryKey()
	m.logger.Debug("requesting gags", zap.String("section", q.Section), zap.Int("seq", reqSeq))
	return func() tea.Msg {
		items, err := gags.FetchGags(ctx, q)
		if err != nil {
			return GagsErrorMsg{Err: err, QueryKey: queryKey, ReqSeq: reqSeq}
		}
		return GagsLoadedMsg{Gags: items, QueryKey: queryKey, ReqSeq: reqSeq}
	}
}

func (m Model) fetchOlderGags(ctx context.Context, reqSeq int) tea.Cmd {
	gags := m.gags
	q := m.query(m.oldestFeedID)
	queryKey := m.currentFeedQueryKey()
	m.logger.Debug("requesting older gags",
		zap.String("section", q.Section),
		zap.String("older_than", q.OlderThan),
		zap.Int("seq", reqSeq),
	)
	return func() tea.Msg {
		items, err := gags.FetchGags(ctx, q)
		if err != nil {
			return GagsPageErrorMsg{Err: err, QueryKey: queryKey, ReqSeq: reqSeq}
		}
		return GagsPageLoadedMsg{Gags: items, QueryKey: queryKey, ReqSeq: reqSeq}
	}
}

func (m Model) openURL(rawURL string) tea.Cmd {
	op := m.opener
	if op == nil || rawURL == "" {
		return nil
	}
	return func() tea.Msg {
		if err := op.Open(rawURL); err != nil {
			return OpenFailedMsg{Err: err}
		}
		return nil
	}
}

// maybeStartFeedPrefetch requests the next page once the cursor is close to
// the end of the loaded gags.
func (m *Model) maybeStartFeedPrefetch() tea.Cmd {
	if m.loading || m.loadingMore || len(m.items) == 0 {
		return nil
	}
	if !m.hasMoreFeed || m.oldestFeedID == "" {
		return nil
	}
	if m.cursor < len(m.items)-prefetchTrigger {
		return nil
	}
	m.loadingMore = true
	m.feedReqSeq++
	return m.fetchOlderGags(m.newRequest(), m.feedReqSeq)
}

// supported drops gags the terminal cannot present.
func supported(items []domain.Gag) []domain.Gag {
	out := make([]domain.Gag, 0, len(items))
	for _, g := range items {
		if g.Supported() {
			out = append(out, g)
		}
	}
	return out
}
