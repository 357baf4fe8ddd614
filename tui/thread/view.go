package thread

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/tui/common"
)

// Header and footer lines around the comment list.
const reservedLines = 7

var (
	indicator         = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("┃ ")
	selectedIndicator = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600")).Render("┃ ")
)

// View renders the thread as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render(common.Truncate(m.gag.Title, max(m.contentWidth()-4, 10)))
	b.WriteString(title + "\n")
	meta := fmt.Sprintf("  ▲ %s  💬 %s  sorted by %s",
		common.CompactCount(m.gag.Votes),
		common.CompactCount(m.gag.Comments),
		m.comments.Sorting())
	b.WriteString(common.MetadataStyle.Render(meta) + "\n\n")

	status := m.comments.LoadingStatus()
	switch {
	case status == domain.StatusRefreshing || status == domain.StatusRefreshRequested:
		b.WriteString(fmt.Sprintf("  %s Loading comments...\n", m.spinner.View()))
	case status == domain.StatusRefreshFailure:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.comments.Err())))
		b.WriteString("\n\n  Press r to retry.\n")
	case m.comments.IsEmpty():
		b.WriteString("  No comments yet.\n")
	default:
		b.WriteString(m.renderRows())
		b.WriteString("\n")
	}

	switch status {
	case domain.StatusFetchMoreProcessing:
		b.WriteString(fmt.Sprintf("  %s Loading more...\n", m.spinner.View()))
	case domain.StatusFetchMoreFailure:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.comments.Err())) + "\n")
	}
	if m.notice != "" && status != domain.StatusFetchMoreFailure && status != domain.StatusRefreshFailure {
		b.WriteString(common.NoticeStyle.Render("  "+m.notice) + "\n")
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) helpView() string {
	items := []string{"j/k: focus", "enter: replies", "esc: back", "?: all keys"}
	if m.showHints {
		items = []string{
			"j/k: focus",
			"enter: load replies",
			"m: more comments",
			"r: refresh",
			"s: hot/fresh",
			"o: open in browser",
			"esc: back",
			"q: quit",
		}
	}
	return common.StatusBarStyle.
		Width(max(m.contentWidth(), 16)).
		Render("  " + strings.Join(items, " • "))
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width - 2
}

func (m Model) viewportHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-reservedLines, 1)
}

func (m Model) renderRows() string {
	rows := m.layout.rows
	height := m.viewportHeight()
	start := min(m.start, max(len(rows)-1, 0))

	var out []string
	used := 0
	for i := start; i < len(rows); i++ {
		block := m.renderRow(rows[i], i == m.layout.cursor)
		h := lipgloss.Height(block)
		if height > 0 && used+h > height && len(out) > 0 {
			break
		}
		out = append(out, block)
		used += h
	}
	return strings.Join(out, "\n")
}

func (m Model) renderRow(r row, selected bool) string {
	bar := indicator
	if selected {
		bar = selectedIndicator
	}
	pad := strings.Repeat("  ", r.depth)
	width := max(m.contentWidth()-len(pad)-4, 20)

	if r.kind == rowMore {
		return pad + bar + common.MetadataStyle.Render(moreLabel(r.comment))
	}

	c := r.comment
	header := common.AuthorStyle.Render(displayName(c.User))
	if m.comments.IsOriginalPoster(c) {
		header += common.OPBadgeStyle.Render("OP")
	}
	if c.User.IsPro {
		header += common.ProBadgeStyle.Render("PRO")
	}
	if c.User.IsStaff {
		header += common.StaffBadgeStyle.Render("STAFF")
	}
	header += common.TimestampStyle.Render("  " + common.RelativeTime(c.CreatedAt, m.now()))
	header += common.MetadataStyle.Render(fmt.Sprintf("  ▲ %s", common.CompactCount(c.Upvotes)))

	lines := []string{pad + bar + header}
	if text := strings.TrimSpace(c.Text); text != "" {
		for _, l := range strings.Split(common.Wrap(text, width, ""), "\n") {
			lines = append(lines, pad+bar+common.ContentStyle.Render(l))
		}
	}
	if c.TextType != domain.ContentText && c.Media.IsValid() {
		media := fmt.Sprintf("[%s] %s", c.Media.Kind, c.Media.PreferredURL())
		lines = append(lines, pad+bar+common.MediaStyle.Render(common.Truncate(media, width)))
	}
	if c.ChildCount() == 0 && c.TotalCount() > 0 {
		lines = append(lines, pad+bar+common.MetadataStyle.Render(replyLabel(c.TotalCount())))
	}
	return strings.Join(lines, "\n")
}

func displayName(u domain.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return "anonymous"
}

func replyLabel(n int) string {
	if n == 1 {
		return "↳ 1 reply (enter)"
	}
	return fmt.Sprintf("↳ %d replies (enter)", n)
}

func moreLabel(parent *domain.Comment) string {
	if parent.IsRoot() {
		return "▼ more comments (m)"
	}
	left := parent.TotalCount() - parent.ChildCount()
	return fmt.Sprintf("↳ %d more replies (enter)", left)
}

// ensureCursorVisible scrolls so the selected row is fully rendered.
func (m *Model) ensureCursorVisible() {
	cursor := m.layout.cursor
	if cursor < m.start {
		m.start = cursor
		return
	}
	height := m.viewportHeight()
	if height == 0 {
		return
	}
	for m.start < cursor {
		used := 0
		for i := m.start; i <= cursor; i++ {
			used += lipgloss.Height(m.renderRow(m.layout.rows[i], i == cursor))
		}
		if used <= height {
			return
		}
		m.start++
	}
}
