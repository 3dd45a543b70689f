package compose

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillfeed/quillterm/app"
	"github.com/quillfeed/quillterm/domain"
)

// DoneMsg is sent to the root when composing finishes. Published is false
// when the user cancelled; publish failures stay inside the composer so the
// draft survives for a retry.
type DoneMsg struct {
	Published  bool
	Post       domain.Post
	Visibility domain.Visibility
}

// publishResultMsg settles a publish attempt.
type publishResultMsg struct {
	Post domain.Post
	Err  error
}

// Model holds the composer state: draft text, visibility, tracked
// attachments and the publish-in-progress flag.
type Model struct {
	post     app.PostService
	uploader app.Uploader

	textarea   textarea.Model
	visibility domain.Visibility
	defaultVis domain.Visibility

	attachments  []Attachment
	attachCursor int

	pathInput    textinput.Model
	enteringPath bool

	publishing bool
	err        error
	spinner    spinner.Model
}

// New creates a composer with an empty draft.
func New(post app.PostService, uploader app.Uploader, defaultVis domain.Visibility) Model {
	ta := textarea.New()
	ta.Placeholder = "What's happening?"
	ta.CharLimit = 2000
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "/path/to/file"
	ti.Prompt = "attach: "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8AADF4"))

	if !domain.ValidVisibility(defaultVis) {
		defaultVis = domain.DefaultVisibility
	}

	return Model{
		post:       post,
		uploader:   uploader,
		textarea:   ta,
		visibility: defaultVis,
		defaultVis: defaultVis,
		pathInput:  ti,
		spinner:    s,
	}
}

// Init focuses the draft textarea.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles composer messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.publishing && !m.uploadsPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case attachmentDoneMsg:
		m.applyAttachmentDone(msg)
		return m, nil

	case publishResultMsg:
		m.publishing = false
		if msg.Err != nil {
			// Draft, attachments and visibility are all preserved.
			m.err = msg.Err
			return m, nil
		}
		vis := m.visibility
		m.resetDraft()
		return m, func() tea.Msg {
			return DoneMsg{Published: true, Post: msg.Post, Visibility: vis}
		}
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.enteringPath {
		switch msg.String() {
		case "esc":
			m.enteringPath = false
			m.pathInput.Reset()
			cmd := m.textarea.Focus()
			return m, cmd
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			m.enteringPath = false
			m.pathInput.Reset()
			cmds := []tea.Cmd{m.textarea.Focus()}
			if path != "" {
				if cmd := m.beginUpload(path); cmd != nil {
					cmds = append(cmds, cmd, m.spinner.Tick)
				}
			}
			return m, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		if m.publishing {
			return m, nil
		}
		m.releaseAttachments()
		return m, func() tea.Msg { return DoneMsg{Published: false} }

	case "ctrl+s":
		return m.startPublish()

	case "ctrl+a":
		m.enteringPath = true
		m.textarea.Blur()
		cmd := m.pathInput.Focus()
		return m, cmd

	case "ctrl+v":
		m.visibility = nextVisibility(m.visibility)
		return m, nil

	case "tab":
		if len(m.attachments) > 0 {
			m.attachCursor = (m.attachCursor + 1) % len(m.attachments)
		}
		return m, nil

	case "ctrl+x":
		if m.attachCursor < len(m.attachments) {
			m.removeAttachment(m.attachments[m.attachCursor].ID)
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.enteringPath {
		m.pathInput, cmd = m.pathInput.Update(msg)
	} else {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	return m, cmd
}

// startPublish validates the draft locally, then issues the request.
// Validation failures never reach the network.
func (m Model) startPublish() (Model, tea.Cmd) {
	if m.publishing {
		return m, nil
	}

	text := strings.TrimSpace(m.textarea.Value())

	if !m.mediaReady() {
		m.err = domain.ErrMediaNotReady
		return m, nil
	}
	if text == "" && len(m.attachments) == 0 {
		m.err = domain.ErrEmptyPost
		return m, nil
	}

	m.err = nil
	m.publishing = true

	post := m.post
	visibility := m.visibility
	refs := m.mediaRefs()
	return m, tea.Batch(func() tea.Msg {
		p, err := post.Publish(context.Background(), text, visibility, refs)
		return publishResultMsg{Post: p, Err: err}
	}, m.spinner.Tick)
}

// resetDraft clears the composer after a confirmed publish: text, tracked
// attachments and visibility all return to their defaults.
func (m *Model) resetDraft() {
	m.textarea.Reset()
	m.releaseAttachments()
	m.visibility = m.defaultVis
	m.err = nil
}

func (m Model) uploadsPending() bool {
	for _, a := range m.attachments {
		if a.Status == AttachmentUploading {
			return true
		}
	}
	return false
}

func nextVisibility(v domain.Visibility) domain.Visibility {
	switch v {
	case domain.VisibilityPublic:
		return domain.VisibilityFriends
	case domain.VisibilityFriends:
		return domain.VisibilityPrivate
	default:
		return domain.VisibilityPublic
	}
}
