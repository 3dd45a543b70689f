package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/quillfeed/quillterm/tui/common"
)

func (m Model) viewDetail() string {
	p := m.byID(m.detailID)
	if p == nil {
		return common.TimestampStyle.Render("Post no longer available. Press esc to go back.")
	}

	var b strings.Builder
	b.WriteString(m.renderAuthorLine(*p) + "\n\n")
	b.WriteString(common.ContentStyle.Width(m.contentWidth()).Render(p.Content) + "\n")

	for _, md := range p.Media {
		b.WriteString(common.CounterStyle.Render(fmt.Sprintf("📎 %s (%s, %s)", md.FileURL, md.FileType, common.FormatSize(md.FileSize))) + "\n")
	}

	b.WriteString("\n" + m.renderCounters(*p) + "\n")

	if len(p.Comments) > 0 {
		b.WriteString("\n" + common.TimestampStyle.Render(fmt.Sprintf("── comments (%d) ──", p.CommentsCount)) + "\n")
		for _, c := range p.Comments {
			prefix := ""
			if c.ParentID != "" {
				prefix = "  ↳ "
			}
			author := common.AuthorStyle.Render(c.Author.Name())
			if c.Author.Verified {
				author += common.VerifiedStyle.Render(" ✔")
			}
			ts := common.TimestampStyle.Render(" · " + common.RelativeTime(c.CreatedAt, time.Now()))
			b.WriteString(prefix + author + ts + "\n")
			b.WriteString(prefix + common.ContentStyle.Render(c.Text) + "\n")
		}
	}

	if m.commenting {
		b.WriteString("\n" + m.commentInput.View() + "\n")
		if m.commentErr != nil {
			b.WriteString(common.ErrorStyle.Render("⚠ "+m.commentErr.Error()) + "\n")
		}
		hint := "ctrl+s send · esc cancel"
		if m.commentBusy {
			hint = m.spinner.View() + " sending…"
		}
		b.WriteString(common.StatusBarStyle.Render(hint))
		return b.String()
	}

	if m.confirmDelete {
		b.WriteString("\n" + common.ConfirmStyle.Render("Delete this post? (y/n)"))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	b.WriteString("\n" + common.StatusBarStyle.Render("l like · c comment · d delete · esc back"))
	return b.String()
}
