package feed

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/gagbook/domain"
)

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case GagsLoadedMsg:
		if msg.ReqSeq != m.feedReqSeq || msg.QueryKey != m.currentFeedQueryKey() {
			return m, nil
		}
		m.releaseRequest()
		m.items = supported(msg.Gags)
		m.loading = false
		m.loadingMore = false
		m.err = nil
		m.pagingNotice = ""
		m.hasMoreFeed = len(msg.Gags) > 0
		m.oldestFeedID = rawLastID(msg.Gags)
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		m.ensureFeedCursorVisible()
		return m, nil

	case GagsErrorMsg:
		if msg.ReqSeq != m.feedReqSeq || msg.QueryKey != m.currentFeedQueryKey() {
			return m, nil
		}
		m.releaseRequest()
		m.loading = false
		m.loadingMore = false
		if errors.Is(msg.Err, domain.ErrEndOfList) {
			m.hasMoreFeed = false
			m.pagingNotice = endOfListNotice
			return m, nil
		}
		m.logger.Info("loading gags failed", zap.Error(msg.Err))
		m.err = msg.Err
		return m, nil

	case GagsPageLoadedMsg:
		if msg.ReqSeq != m.feedReqSeq || msg.QueryKey != m.currentFeedQueryKey() {
			return m, nil
		}
		m.releaseRequest()
		anchorID := ""
		if g, ok := m.SelectedGag(); ok {
			anchorID = g.ID
		}
		m.loadingMore = false
		m.err = nil

		existing := make(map[string]struct{}, len(m.items))
		for _, g := range m.items {
			existing[g.ID] = struct{}{}
		}
		unseen := 0
		for _, g := range msg.Gags {
			if _, ok := existing[g.ID]; ok {
				continue
			}
			unseen++
			if g.Supported() {
				m.items = append(m.items, g)
			}
			existing[g.ID] = struct{}{}
		}
		if id := rawLastID(msg.Gags); id != "" {
			m.oldestFeedID = id
		}
		m.hasMoreFeed = unseen > 0
		if m.hasMoreFeed {
			m.pagingNotice = ""
		} else {
			m.pagingNotice = endOfListNotice
		}
		if anchorID != "" {
			m.setCursorByID(anchorID)
		}
		m.ensureFeedCursorVisible()
		return m, nil

	case GagsPageErrorMsg:
		if msg.ReqSeq != m.feedReqSeq || msg.QueryKey != m.currentFeedQueryKey() {
			return m, nil
		}
		m.releaseRequest()
		m.loadingMore = false
		if errors.Is(msg.Err, domain.ErrEndOfList) {
			m.hasMoreFeed = false
			m.pagingNotice = endOfListNotice
			return m, nil
		}
		m.logger.Info("loading older gags failed", zap.Error(msg.Err))
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func rawLastID(gags []domain.Gag) string {
	if len(gags) == 0 {
		return ""
	}
	return gags[len(gags)-1].ID
}

func (m *Model) setCursorByID(id string) {
	for i, g := range m.items {
		if g.ID == id {
			m.cursor = i
			return
		}
	}
}
