package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quillfeed/quillterm/domain"
)

// applyLikeToggle flips has_liked and adjusts the count by one, before any
// request is issued. The flip is a pure boolean/count mutation; reaction
// kind is not inspected at this layer.
func (m *Model) applyLikeToggle(id string) {
	p := m.byID(id)
	if p == nil {
		return
	}
	if p.HasLiked {
		p.HasLiked = false
		if p.LikesCount > 0 {
			p.LikesCount--
		}
	} else {
		p.HasLiked = true
		p.LikesCount++
	}
}

func (m Model) handleMutationMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LikeResultMsg:
		if msg.Err != nil {
			// No precise undo: reload the whole feed so local state
			// converges on server truth even under overlapping toggles.
			m.status = "Like failed: " + msg.Err.Error()
			cmd := m.Load()
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		// Reconcile with the authoritative response rather than
		// trusting the optimistic flip.
		if p := m.byID(msg.ID); p != nil {
			p.HasLiked = msg.State.HasLiked
			p.LikesCount = msg.State.LikesCount
			if msg.State.Likes != nil {
				p.Likes = msg.State.Likes
			}
		}
		return m, nil

	case CommentResultMsg:
		m.commentBusy = false
		if msg.Err != nil {
			m.commentErr = msg.Err
			cmd := m.Load()
			return m, tea.Batch(cmd, m.spinner.Tick)
		}
		if p := m.byID(msg.PostID); p != nil {
			// Append-only by creation order; never re-sorted.
			p.Comments = append(p.Comments, msg.Comment)
			p.CommentsCount++
		}
		m.stopCommenting()
		m.status = "Comment added."
		return m, nil

	case DeleteResultMsg:
		m.confirmDelete = false
		if msg.Err != nil {
			// Deletion is not optimistic: the post is still present.
			m.status = "Delete failed: " + msg.Err.Error()
			return m, nil
		}
		m.removePost(msg.ID)
		m.status = "Post deleted."
		return m, nil

	case PublishedPostMsg:
		m.prepend(msg.Post)
		m.status = "Posted!"
		return m, nil
	}
	return m, nil
}

func (m *Model) prepend(p domain.Post) {
	m.posts = append([]domain.Post{p}, m.posts...)
	m.cursor = 0
	m.startIndex = 0
}

func (m *Model) removePost(id string) {
	for i := range m.posts {
		if m.posts[i].ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.posts) && m.cursor > 0 {
		m.cursor--
	}
	if m.showDetail && m.detailID == id {
		m.closeDetail()
	}
	m.clampScroll()
}
