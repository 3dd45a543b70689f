package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillfeed/quillterm/domain"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.commenting {
		return m.handleCommentKey(msg)
	}

	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			if id := m.deleteTargetID(); id != "" {
				return m, m.deletePost(id)
			}
			return m, nil
		default:
			m.confirmDelete = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.showDetail {
			m.closeDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if !m.showDetail && m.cursor > 0 {
			m.cursor--
			m.clampScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if !m.showDetail && m.cursor < len(m.posts)-1 {
			m.cursor++
			m.clampScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if p := m.selected(); p != nil && !m.showDetail {
			m.showDetail = true
			m.detailID = p.ID
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		cmd := m.Load()
		return m, tea.Batch(cmd, m.spinner.Tick)

	case key.Matches(msg, m.keys.Like):
		if p := m.currentPost(); p != nil {
			wasLiked := p.HasLiked
			m.applyLikeToggle(p.ID)
			return m, m.toggleLike(p.ID, wasLiked)
		}
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		if p := m.currentPost(); p != nil {
			if !m.showDetail {
				m.showDetail = true
				m.detailID = p.ID
			}
			m.commenting = true
			m.commentErr = nil
			m.commentInput.Reset()
			cmd := m.commentInput.Focus()
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if p := m.currentPost(); p != nil && p.IsOwner {
			m.confirmDelete = true
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopCommenting()
		return m, nil
	case "ctrl+s":
		text := strings.TrimSpace(m.commentInput.Value())
		if text == "" {
			// Whitespace-only comments are silently ignored.
			return m, nil
		}
		if m.commentBusy {
			return m, nil
		}
		m.commentBusy = true
		m.commentErr = nil
		return m, tea.Batch(m.submitComment(m.detailID, text), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

// currentPost is the post actions apply to: the detail post when open,
// else the post under the cursor.
func (m *Model) currentPost() *domain.Post {
	if m.showDetail {
		return m.byID(m.detailID)
	}
	return m.selected()
}

func (m *Model) deleteTargetID() string {
	if p := m.currentPost(); p != nil {
		return p.ID
	}
	return ""
}
