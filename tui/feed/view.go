package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillfeed/quillterm/domain"
	"github.com/quillfeed/quillterm/tui/common"
)

// View renders the feed list or the detail view.
func (m Model) View() string {
	if m.showDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("⚠ "+"Couldn't load feed: "+m.err.Error()) + "\n\n")
	}

	if m.Loading() && len(m.posts) == 0 {
		b.WriteString(m.spinner.View() + " Loading feed…\n")
		return b.String()
	}

	if len(m.posts) == 0 {
		b.WriteString(common.TimestampStyle.Render("Nothing here yet. Press n to post something.") + "\n")
		return b.String()
	}

	end := min(len(m.posts), m.startIndex+m.visibleCount())
	for i := m.startIndex; i < end; i++ {
		b.WriteString(m.renderCard(m.posts[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) renderCard(p domain.Post, selected bool) string {
	header := m.renderAuthorLine(p)

	content := common.ContentStyle.Render(common.Truncate(strings.ReplaceAll(p.Content, "\n", " "), m.contentWidth()))
	if p.Content == "" && len(p.Media) > 0 {
		content = common.TimestampStyle.Render(fmt.Sprintf("(%d media)", len(p.Media)))
	}

	card := lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderCounters(p))
	if selected {
		return common.SelectedStyle.Width(m.cardWidth()).Render(card)
	}
	return common.UnselectedStyle.Width(m.cardWidth()).Render(card)
}

func (m Model) renderAuthorLine(p domain.Post) string {
	author := common.AuthorStyle.Render(p.Author.Name())
	if p.Author.Verified {
		author += common.VerifiedStyle.Render(" ✔")
	}
	if p.IsOwner {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	ts := common.TimestampStyle.Render(" · " + common.RelativeTime(p.CreatedAt, time.Now()))
	if p.Edited {
		ts += common.TimestampStyle.Render(" (edited)")
	}
	vis := common.VisibilityStyle.Render(" [" + string(p.Visibility) + "]")
	return author + ts + vis
}

func (m Model) renderCounters(p domain.Post) string {
	likeLabel := fmt.Sprintf("♥ %d", p.LikesCount)
	like := common.CounterStyle.Render(likeLabel)
	if p.HasLiked {
		like = common.LikedStyle.Render(likeLabel)
	}
	comments := common.CounterStyle.Render(fmt.Sprintf("💬 %d", p.CommentsCount))
	media := ""
	if len(p.Media) > 0 {
		media = common.CounterStyle.Render(fmt.Sprintf("  📎 %d", len(p.Media)))
	}
	return like + "  " + comments + media
}

func (m Model) statusLine() string {
	var parts []string
	if m.Loading() {
		parts = append(parts, m.spinner.View()+" refreshing")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.confirmDelete {
		parts = append(parts, common.ConfirmStyle.Render("Delete this post? (y/n)"))
	}
	parts = append(parts, common.StatusBarStyle.Render("↑/↓ move · enter open · l like · c comment · n new · r refresh · q quit"))
	return strings.Join(parts, "\n")
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return 76
	}
	return min(m.width-2, 100)
}

func (m Model) contentWidth() int {
	return m.cardWidth() - 4
}
