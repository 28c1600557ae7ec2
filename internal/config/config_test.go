package config

import (
	"strings"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"USER=alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 || cfg.App.ShowFooter || cfg.App.Verbose {
		t.Fatalf("expected zero defaults, got %#v", cfg.App)
	}
	if cfg.App.UserName != "alice" {
		t.Fatalf("expected user name from $USER, got %q", cfg.App.UserName)
	}
	if cfg.Logging.Trace || cfg.Logging.FilePath != "" {
		t.Fatalf("expected logging off, got %#v", cfg.Logging)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"SHELL_POPUP_WIDTH=100",
		"SHELL_POPUP_FOOTER=true",
		"SHELL_POPUP_OPEN=network",
		"SHELL_POPUP_USER=bob",
		"SHELL_POPUP_TRACE=1",
	}
	cfg, err := LoadArgs([]string{"-width", "60", "-open", " user:status ", "-verbose"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 60 {
		t.Fatalf("expected width flag to win, got %d", cfg.App.Width)
	}
	if !cfg.App.ShowFooter || !cfg.App.Verbose || !cfg.Features.Verbose {
		t.Fatalf("expected footer and verbose enabled, got %#v", cfg.App)
	}
	if cfg.App.Open != "user:status" {
		t.Fatalf("expected trimmed open path, got %q", cfg.App.Open)
	}
	if cfg.App.UserName != "bob" {
		t.Fatalf("expected user from environment, got %q", cfg.App.UserName)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from environment")
	}
	if cfg.Flags["width"] != "60" || cfg.Flags["user"] != "bob" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"SHELL_POPUP_HEIGHT=tall", "SHELL_POPUP_VERBOSE=maybe", "garbage", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Height != 0 || cfg.App.Verbose {
		t.Fatalf("expected malformed values to fall back, got %#v", cfg.App)
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"-height", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
	if _, err := LoadArgs([]string{"-nope"}, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestValidateOpenPath(t *testing.T) {
	for _, open := range []string{"", "places", "user:status", "network:more"} {
		cfg, err := LoadArgs([]string{"-open", open}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := Validate(cfg); err != nil {
			t.Fatalf("expected %q to validate, got %v", open, err)
		}
	}
	cfg, _ := LoadArgs([]string{"-open", "clock:calendar"}, nil)
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), `"clock"`) {
		t.Fatalf("expected unknown menu error, got %v", err)
	}
}
