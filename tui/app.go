package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillfeed/quillterm/app"
	"github.com/quillfeed/quillterm/domain"
	"github.com/quillfeed/quillterm/infra/config"
	"github.com/quillfeed/quillterm/tui/common"
	"github.com/quillfeed/quillterm/tui/compose"
	"github.com/quillfeed/quillterm/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Session  app.SessionService
	Feed     app.FeedService
	Post     app.PostService
	Uploader app.Uploader

	FeedLimit         int
	DefaultVisibility domain.Visibility
	StatePath         string
}

type gateState int

const (
	// gateResolving: identity unknown; the feed must not load or render.
	gateResolving gateState = iota
	// gateDenied: resolved without an identity; the feed stays locked.
	gateDenied
	// gateReady: identity resolved; the feed was started exactly once.
	gateReady
)

type activeView int

const (
	feedView activeView = iota
	composeView
)

// sessionResolvedMsg settles the auth resolution the gate waits on.
type sessionResolvedMsg struct {
	Profile domain.ProfileSummary
	Err     error
}

// App is the root Bubble Tea model. Until the session resolves it shows a
// spinner and holds the feed back; once an identity is known it starts the
// feed load exactly once and routes keys between the feed and the composer.
type App struct {
	deps Deps
	keys common.KeyMap

	gate        gateState
	gateErr     error
	profile     domain.ProfileSummary
	feedStarted bool

	active     activeView
	feed       feed.Model
	compose    compose.Model
	defaultVis domain.Visibility

	spinner spinner.Model
	width   int
	height  int
}

func NewApp(deps Deps) App {
	s := spinner.New()
	s.Spinner = spinner.Dot

	vis := deps.DefaultVisibility
	if !domain.ValidVisibility(vis) {
		vis = domain.DefaultVisibility
	}

	return App{
		deps:       deps,
		keys:       common.DefaultKeyMap(),
		gate:       gateResolving,
		active:     feedView,
		feed:       feed.New(deps.Feed, deps.Post, deps.FeedLimit),
		defaultVis: vis,
		spinner:    s,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.resolveSession(), a.spinner.Tick)
}

func (a App) resolveSession() tea.Cmd {
	svc := a.deps.Session
	return func() tea.Msg {
		profile, err := svc.CurrentProfile(context.Background())
		return sessionResolvedMsg{Profile: profile, Err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		fm, _ := a.feed.Update(msg)
		a.feed = fm
		if a.active == composeView {
			cm, _ := a.compose.Update(msg)
			a.compose = cm
		}
		return a, nil

	case sessionResolvedMsg:
		return a.handleSessionResolved(msg)

	case spinner.TickMsg:
		if a.gate == gateResolving {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a.routeToActive(msg)

	case compose.DoneMsg:
		return a.handleComposeDone(msg)

	case feed.PostsLoadedMsg, feed.PostsErrorMsg, feed.LikeResultMsg,
		feed.CommentResultMsg, feed.DeleteResultMsg:
		// Feed results apply even while the composer is on screen.
		fm, cmd := a.feed.Update(msg)
		a.feed = fm
		return a, cmd

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)
	}

	return a.routeToActive(msg)
}

func (a App) handleSessionResolved(msg sessionResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.gate = gateDenied
		a.gateErr = msg.Err
		return a, nil
	}

	a.gate = gateReady
	a.profile = msg.Profile
	if a.feedStarted {
		return a, nil
	}
	a.feedStarted = true
	cmd := a.feed.Init()
	return a, cmd
}

func (a App) handleComposeDone(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	a.active = feedView
	if !msg.Published {
		return a, nil
	}

	fm, cmd := a.feed.Update(feed.PublishedPostMsg{Post: msg.Post})
	a.feed = fm
	a.defaultVis = msg.Visibility
	return a, tea.Batch(cmd, a.savePrefs(msg.Visibility))
}

// savePrefs persists the last used visibility as the new composer default.
func (a App) savePrefs(vis domain.Visibility) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		// Best effort. A failed save never interrupts the session.
		_ = config.SaveUIState(path, config.UIState{DefaultVisibility: string(vis)})
		return nil
	}
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.gate {
	case gateResolving:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil

	case gateDenied:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Refresh):
			a.gate = gateResolving
			a.gateErr = nil
			return a, tea.Batch(a.resolveSession(), a.spinner.Tick)
		}
		return a, nil
	}

	if a.active == feedView {
		if key.Matches(msg, a.keys.Quit) && !a.feed.Capturing() {
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Compose) && !a.feed.Capturing() {
			a.active = composeView
			a.compose = compose.New(a.deps.Post, a.deps.Uploader, a.defaultVis)
			return a, a.compose.Init()
		}
	}

	return a.routeToActive(msg)
}

func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.active == composeView {
		cm, cmd := a.compose.Update(msg)
		a.compose = cm
		return a, cmd
	}
	fm, cmd := a.feed.Update(msg)
	a.feed = fm
	return a, cmd
}

func (a App) View() string {
	switch a.gate {
	case gateResolving:
		return lipgloss.JoinVertical(lipgloss.Left,
			common.AppTitleStyle.Render("QuillFeed"),
			"",
			a.spinner.View()+" checking session...",
		)
	case gateDenied:
		body := "You are signed out."
		if a.gateErr != nil && !errors.Is(a.gateErr, domain.ErrUnauthorized) {
			body = "Could not verify your session: " + a.gateErr.Error()
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			common.AppTitleStyle.Render("QuillFeed"),
			"",
			common.ErrorStyle.Render(body),
			"",
			"Sign in with the web app to refresh your token, then press r to retry.",
			common.StatusBarStyle.Render("r retry • q quit"),
		)
	}

	header := common.AppTitleStyle.Render("QuillFeed") +
		"  " + common.ProfileStyle.Render("@"+a.profile.Username)

	var body string
	if a.active == composeView {
		body = a.compose.View()
	} else {
		body = a.feed.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}
