package feed

import tea "github.com/charmbracelet/bubbletea"

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if m.inflight > 0 {
			m.inflight--
		}
		// Wholesale replacement: concurrent loads race and the last
		// response to arrive determines the displayed sequence.
		m.posts = msg.Posts
		m.err = nil
		if m.cursor >= len(m.posts) {
			m.cursor = max(0, len(m.posts)-1)
		}
		if m.showDetail && m.byID(m.detailID) == nil {
			// The open post vanished in the reload.
			m.closeDetail()
		}
		m.clampScroll()
		return m, nil

	case PostsErrorMsg:
		if m.inflight > 0 {
			m.inflight--
		}
		// Persistent banner slot for read failures; the existing
		// sequence stays on screen.
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) closeDetail() {
	m.showDetail = false
	m.detailID = ""
	m.confirmDelete = false
	m.stopCommenting()
}

func (m *Model) stopCommenting() {
	m.commenting = false
	m.commentErr = nil
	m.commentInput.Reset()
	m.commentInput.Blur()
}

func (m *Model) clampScroll() {
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	visible := m.visibleCount()
	if m.cursor >= m.startIndex+visible {
		m.startIndex = m.cursor - visible + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}

// visibleCount estimates how many post cards fit in the viewport.
func (m Model) visibleCount() int {
	if m.height <= 0 {
		return 5
	}
	per := 5 // bordered card: 3 content lines + 2 border lines
	n := (m.height - 6) / per
	if n < 1 {
		n = 1
	}
	return n
}
