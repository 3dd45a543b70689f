package compose

import (
	"fmt"
	"strings"

	"github.com/quillfeed/quillterm/tui/common"
)

// View renders the composer.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("New post") +
		common.VisibilityStyle.Render(" ["+string(m.visibility)+"]") + "\n\n")
	b.WriteString(m.textarea.View() + "\n")

	if len(m.attachments) > 0 {
		b.WriteString("\n")
		for i, a := range m.attachments {
			b.WriteString(m.renderAttachment(a, i == m.attachCursor) + "\n")
		}
	}

	if m.enteringPath {
		b.WriteString("\n" + m.pathInput.View() + "\n")
		b.WriteString(common.StatusBarStyle.Render("enter attach · esc cancel"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString("\n" + common.ErrorStyle.Render("⚠ "+m.err.Error()) + "\n")
	}

	hint := "ctrl+s post · ctrl+a attach · ctrl+v visibility · tab/ctrl+x manage media · esc cancel"
	if m.publishing {
		hint = m.spinner.View() + " publishing…"
	}
	b.WriteString("\n" + common.StatusBarStyle.Render(hint))
	return b.String()
}

func (m Model) renderAttachment(a Attachment, selected bool) string {
	marker := "  "
	if selected {
		marker = "› "
	}
	label := fmt.Sprintf("%s%s (%s, %s)", marker, a.Name, a.MIME, common.FormatSize(a.Size))

	switch a.Status {
	case AttachmentUploading:
		return common.UploadingStyle.Render(label + " — uploading " + m.spinner.View())
	case AttachmentUploaded:
		return common.SuccessStyle.Render(label + " — ready")
	default:
		return common.ErrorStyle.Render(label + " — failed: " + a.ErrMsg)
	}
}
