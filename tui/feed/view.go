package feed

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/tui/common"
)

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("gagbook")
	tagline := common.TaglineStyle.Render("<9GAG in your terminal>")
	b.WriteString(title + tagline + "\n")
	b.WriteString(m.renderTabs() + "\n\n")

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.err != nil && len(m.items) == 0:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.items) == 0 && m.pagingNotice == "":
		b.WriteString("  No posts in this section.\n")
	default:
		b.WriteString(m.renderItems())
	}

	if m.loadingMore {
		b.WriteString(fmt.Sprintf("\n  %s Loading more...", m.spinner.View()))
	}
	if m.err != nil && len(m.items) > 0 {
		b.WriteString("\n" + common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}
	if m.pagingNotice != "" {
		b.WriteString("\n" + common.NoticeStyle.Render("  "+m.pagingNotice))
	}
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.sections))
	for i, sec := range m.sections {
		if i == m.section {
			tabs = append(tabs, common.SectionStyle.Render("["+sec.Name+"]"))
		} else {
			tabs = append(tabs, common.SectionInactiveStyle.Render(" "+sec.Name+" "))
		}
	}
	return "  " + strings.Join(tabs, " ")
}

func (m Model) renderItems() string {
	if len(m.items) == 0 {
		return ""
	}
	visible := m.visibleCount()
	start := max(0, min(m.startIndex, len(m.items)-1))
	end := min(start+visible, len(m.items))

	var out []string
	for i := start; i < end; i++ {
		out = append(out, m.renderItem(m.items[i], i == m.cursor))
	}
	return strings.Join(out, "\n") + "\n"
}

func (m Model) renderItem(g domain.Gag, selected bool) string {
	width := m.cardWidth()
	title := common.ContentStyle.Render(common.Truncate(g.Title, width))
	if g.NSFW {
		title += common.NSFWBadgeStyle.Render("NSFW")
	}
	kind := string(g.Type)
	if g.IsPartialImage {
		kind += " (long)"
	}
	meta := common.MetadataStyle.Render(fmt.Sprintf("▲ %s  💬 %s  %s",
		common.CompactCount(g.Votes), common.CompactCount(g.Comments), kind))

	content := title + "\n" + meta
	if selected {
		return common.SelectedStyle.Width(width + 2).Render(content)
	}
	return common.UnselectedStyle.Width(width + 2).Render(content)
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return 70
	}
	return max(m.width-8, 20)
}

func (m Model) helpView() string {
	items := []string{"j/k: focus", "enter: comments", "tab: section", "q: quit", "?: all keys"}
	if m.showHints {
		items = []string{
			"j/k: focus",
			"enter: comments",
			"o: open in browser",
			"r: refresh",
			"tab/shift+tab: section",
			"q: quit",
		}
	}
	return common.StatusBarStyle.
		Width(max(m.cardWidth(), 16)).
		Render("  " + strings.Join(items, " • "))
}

// Each card is two content lines plus its border.
const cardHeight = 4

// Header, tabs, notices and help.
const feedChromeLines = 10

func (m Model) visibleCount() int {
	if m.height <= 0 {
		return len(m.items)
	}
	return max((m.height-feedChromeLines)/cardHeight, 1)
}

func (m *Model) ensureFeedCursorVisible() {
	if len(m.items) == 0 {
		m.startIndex = 0
		return
	}
	visible := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+visible {
		m.startIndex = m.cursor - visible + 1
	}
	m.startIndex = max(0, min(m.startIndex, len(m.items)-1))
}
