package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/atomicstack/shell-popup/internal/app"
	"github.com/atomicstack/shell-popup/internal/config"
	"github.com/atomicstack/shell-popup/internal/shell"
)

func TestProbeTerminalOnPlainFiles(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()
	info := probeTerminal(f, f)
	if info.InputTTY || info.OutputTTY {
		t.Fatalf("expected a regular file not to be a terminal, got %#v", info)
	}
	if info.Width != 0 || info.Height != 0 || info.Error != "" {
		t.Fatalf("expected no size for a regular file, got %#v", info)
	}
}

func TestPanelSizeFollowsTerminalUnlessFixed(t *testing.T) {
	tty := terminal{OutputTTY: true, Width: 120, Height: 40}
	if w, h, fixed := panelSize(app.Config{}, tty); w != 120 || h != 40 || fixed {
		t.Fatalf("expected terminal size, got %dx%d fixed=%v", w, h, fixed)
	}
	if w, h, fixed := panelSize(app.Config{Width: 60}, tty); w != 60 || h != 40 || fixed {
		t.Fatalf("expected width flag with terminal height, got %dx%d fixed=%v", w, h, fixed)
	}
	if w, h, fixed := panelSize(app.Config{Width: 60, Height: 10}, tty); w != 60 || h != 10 || !fixed {
		t.Fatalf("expected fixed size, got %dx%d fixed=%v", w, h, fixed)
	}
}

func TestStartupTracePayloadDescribesPanel(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
			Open:       "user:status",
			UserName:   "alice",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"open":  "user:status",
			"width": "80",
		},
		Args: []string{"-open", "user:status"},
	}

	payload := startupTracePayload(cfg, terminal{})

	panel, ok := payload["panel"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected panel map in payload")
	}
	if panel["open"] != "user:status" {
		t.Fatalf("expected open path %q, got %v", "user:status", panel["open"])
	}
	if panel["user"] != "alice" {
		t.Fatalf("expected user alice, got %v", panel["user"])
	}
	if !reflect.DeepEqual(panel["menus"], shell.MenuNames()) {
		t.Fatalf("expected panel menus %v, got %v", shell.MenuNames(), panel["menus"])
	}
	if panel["width"] != 80 || panel["height"] != 24 || panel["fixed"] != true {
		t.Fatalf("expected fixed 80x24, got %v", panel)
	}
	if flags, ok := payload["flags"].(map[string]string); !ok || flags["open"] != "user:status" {
		t.Fatalf("expected flags carried through, got %v", payload["flags"])
	}
	logInfo, ok := payload["log"].(map[string]interface{})
	if !ok || logInfo["file"] != "trace.log" || logInfo["trace"] != true {
		t.Fatalf("expected log settings, got %v", payload["log"])
	}
	if _, ok := payload["terminal"].(terminal); !ok {
		t.Fatalf("expected terminal details in payload")
	}
}

func TestStartupTracePayloadOmitsEmptyOpen(t *testing.T) {
	payload := startupTracePayload(config.Config{}, terminal{Width: 100, Height: 30})
	panel := payload["panel"].(map[string]interface{})
	if _, ok := panel["open"]; ok {
		t.Fatalf("expected no open path, got %v", panel["open"])
	}
	if panel["width"] != 100 || panel["fixed"] != false {
		t.Fatalf("expected terminal-following size, got %v", panel)
	}
}
