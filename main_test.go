package main

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cliMode
		msg  string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus"},
		{name: "invalid flags joined", args: []string{"--bogus", "--pogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus --pogus"},
		{name: "extra args after version", args: []string{"--version", "extra"}, mode: cliVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, msg := parseCLIArgs(tc.args)
			if mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", mode, tc.mode)
			}
			if tc.msg != "" && msg != tc.msg {
				t.Fatalf("msg mismatch: got %q want %q", msg, tc.msg)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	settings := map[string]string{
		"vcs.revision": "0123456789abcdef0123",
		"vcs.time":     "2026-03-01T10:00:00Z",
	}

	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.4.0", settings)
	if v != "v1.4.0" {
		t.Fatalf("version = %q, want module version", v)
	}
	if c != "0123456789ab" {
		t.Fatalf("commit = %q, want truncated revision", c)
	}
	if d != "2026-03-01T10:00:00Z" {
		t.Fatalf("date = %q, want vcs time", d)
	}

	// Linker-injected values win over build info.
	v, c, d = resolveVersionInfo("v2.0.0", "deadbeef", "2026-01-01", "v1.4.0", settings)
	if v != "v2.0.0" || c != "deadbeef" || d != "2026-01-01" {
		t.Fatalf("injected values overridden: %q %q %q", v, c, d)
	}

	// "(devel)" module version is not a release.
	v, _, _ = resolveVersionInfo("dev", "none", "unknown", "(devel)", nil)
	if v != "dev" {
		t.Fatalf("version = %q, want dev", v)
	}
}

func TestBuildSettingsMap(t *testing.T) {
	in := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc"},
		{Key: "vcs.time", Value: "t"},
	}
	out := buildSettingsMap(in)
	if out["vcs.revision"] != "abc" || out["vcs.time"] != "t" {
		t.Fatalf("settings map = %v", out)
	}
}

func TestNewLogger_Disabled(t *testing.T) {
	logger, closeFn := newLogger("", "debug")
	defer closeFn()
	// Must not panic and must not touch the filesystem.
	logger.Debug("noop")
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, closeFn := newLogger(path, "debug")
	logger.Debug("hello")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file empty after a debug write")
	}
}
