package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillfeed/quillterm/app"
	"github.com/quillfeed/quillterm/domain"
	"github.com/quillfeed/quillterm/tui/common"
)

// PostsLoadedMsg is sent when a feed fetch completes successfully.
// Overlapping loads are allowed to race; every arrival replaces the
// sequence wholesale, so the last response to land wins.
type PostsLoadedMsg struct {
	Posts []domain.Post
}

// PostsErrorMsg is sent when a feed fetch fails.
type PostsErrorMsg struct {
	Err error
}

// LikeResultMsg carries the server's authoritative like state after a
// toggle, or the failure that triggers a reconciling reload.
type LikeResultMsg struct {
	ID    string
	State domain.LikeState
	Err   error
}

// CommentResultMsg is sent after a comment submission settles.
type CommentResultMsg struct {
	PostID  string
	Comment domain.Comment
	Err     error
}

// DeleteResultMsg is sent after a post deletion attempt.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// PublishedPostMsg prepends a freshly published post. Publishing is not
// optimistic: the post arrives here only after server confirmation.
type PublishedPostMsg struct {
	Post domain.Post
}

// Model holds the state for the feed view: the post sequence, the cursor,
// the detail view and the inline comment composer.
type Model struct {
	feed app.FeedService
	post app.PostService

	limit   int
	keys    common.KeyMap
	spinner spinner.Model

	posts    []domain.Post
	cursor   int
	inflight int   // in-flight feed loads; >0 renders the spinner
	err      error // feed-load banner; separate from action feedback
	status   string

	width      int
	height     int
	startIndex int

	showDetail    bool
	detailID      string
	confirmDelete bool

	commenting   bool
	commentInput textarea.Model
	commentBusy  bool
	commentErr   error
}

// New creates a feed model with injected dependencies.
func New(feedSvc app.FeedService, postSvc app.PostService, limit int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	ta := textarea.New()
	ta.Placeholder = "Write a comment…"
	ta.CharLimit = 500
	ta.SetWidth(64)
	ta.SetHeight(3)

	if limit <= 0 {
		limit = 20
	}

	return Model{
		feed:         feedSvc,
		post:         postSvc,
		limit:        limit,
		keys:         common.DefaultKeyMap(),
		spinner:      s,
		commentInput: ta,
	}
}

// Init starts the initial feed load. The session gate calls this exactly
// once, after identity resolves.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.Load(), m.spinner.Tick)
}

// Load returns a Cmd that fetches the feed. Callers may issue several
// concurrently; results are applied in arrival order.
func (m *Model) Load() tea.Cmd {
	m.inflight++
	return m.fetchPosts()
}

// Posts returns the current post sequence.
func (m Model) Posts() []domain.Post {
	return m.posts
}

// Loading reports whether any feed load is in flight.
func (m Model) Loading() bool {
	return m.inflight > 0
}

// Capturing reports whether the feed is consuming raw key input, such as
// while a comment draft is open or a delete confirmation is pending.
func (m Model) Capturing() bool {
	return m.commenting || m.confirmDelete
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// selected returns the post under the cursor, or nil.
func (m *Model) selected() *domain.Post {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return nil
	}
	return &m.posts[m.cursor]
}

// byID returns the post with the given ID, or nil. Lookups go through IDs
// rather than indices because loads replace the sequence wholesale.
func (m *Model) byID(id string) *domain.Post {
	for i := range m.posts {
		if m.posts[i].ID == id {
			return &m.posts[i]
		}
	}
	return nil
}
