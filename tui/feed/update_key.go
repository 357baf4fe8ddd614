package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.reload()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureFeedCursorVisible()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.ensureFeedCursorVisible()
		cmd := m.maybeStartFeedPrefetch()
		return m, cmd

	case key.Matches(msg, m.keys.Enter):
		g, ok := m.SelectedGag()
		if !ok {
			break
		}
		return m, func() tea.Msg { return OpenThreadMsg{Gag: g} }

	case key.Matches(msg, m.keys.Open):
		if g, ok := m.SelectedGag(); ok {
			return m, m.openURL(g.URL)
		}

	case key.Matches(msg, m.keys.NextSection):
		return m.switchSection(1)

	case key.Matches(msg, m.keys.PrevSection):
		return m.switchSection(-1)

	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints
	}

	return m, nil
}

// reload fetches the first page again. The loaded gags stay until the new
// page replaces them; the request in flight is cancelled.
func (m Model) reload() (Model, tea.Cmd) {
	m.loading = true
	m.loadingMore = false
	m.err = nil
	m.pagingNotice = ""
	m.feedReqSeq++
	ctx := m.newRequest()
	return m, tea.Batch(m.fetchGags(ctx, m.feedReqSeq), m.spinner.Tick)
}

func (m Model) switchSection(delta int) (Model, tea.Cmd) {
	if len(m.sections) < 2 {
		return m, nil
	}
	m.section = (m.section + delta + len(m.sections)) % len(m.sections)
	m.items = nil
	m.cursor = 0
	m.startIndex = 0
	m.hasMoreFeed = false
	m.oldestFeedID = ""

	sec := m.Section()
	var cmd tea.Cmd
	m, cmd = m.reload()
	return m, tea.Batch(cmd, func() tea.Msg { return SectionChangedMsg{Section: sec} })
}
