package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/quillfeed/quillterm/infra/auth"
	"github.com/quillfeed/quillterm/infra/config"
	"github.com/quillfeed/quillterm/infra/quill"
	"github.com/quillfeed/quillterm/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: quillterm [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// newLogger builds the debug logger. With no log path configured all output
// is discarded; the TUI owns the terminal, so nothing may write to stderr
// while the program runs.
func newLogger(path, level string) (*logrus.Logger, func()) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	closeFn := func() {}

	if path == "" {
		return logger, closeFn
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v (logging disabled)\n", err)
		return logger, closeFn
	}

	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, func() { _ = f.Close() }
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("quillterm %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from file and environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg.LogPath, cfg.LogLevel)
	defer closeLog()

	// 2. Build infrastructure. An expired token is only a warning here;
	// the server is authoritative and the session gate handles rejection.
	tokenProvider := auth.NewFileTokenProvider(cfg.TokenPath)
	if raw, err := tokenProvider.AccessToken(); err == nil {
		if claims, err := auth.PeekClaims(raw); err == nil && claims.Expired(time.Now()) {
			fmt.Fprintln(os.Stderr, "warning: access token looks expired; sign in again if the session is rejected")
		}
	}

	client := quill.NewClient(cfg.BaseURL, tokenProvider, logger)

	// 3. Build services (concrete types satisfy app.* interfaces).
	sessionSvc := quill.NewSessionService(client)
	feedSvc := quill.NewFeedService(client, sessionSvc)
	postSvc := quill.NewPostService(client, sessionSvc)
	uploader := quill.NewUploader(client)

	uiState, _ := config.LoadUIState(cfg.StatePath)

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Session:           sessionSvc,
		Feed:              feedSvc,
		Post:              postSvc,
		Uploader:          uploader,
		FeedLimit:         cfg.FeedLimit,
		DefaultVisibility: uiState.Visibility(),
		StatePath:         cfg.StatePath,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "quillterm: %v\n", err)
		os.Exit(1)
	}
}
