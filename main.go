package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/shell-popup/internal/app"
	"github.com/atomicstack/shell-popup/internal/config"
	"github.com/atomicstack/shell-popup/internal/logging"
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/shell"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg, probeTerminal(os.Stdin, os.Stdout)))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminal describes the descriptors the panel reads input from and draws to.
type terminal struct {
	InputTTY  bool   `json:"input_tty"`
	OutputTTY bool   `json:"output_tty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Error     string `json:"error,omitempty"`
}

func probeTerminal(in, out *os.File) terminal {
	info := terminal{
		InputTTY:  term.IsTerminal(int(in.Fd())),
		OutputTTY: term.IsTerminal(int(out.Fd())),
	}
	if !info.OutputTTY {
		return info
	}
	width, height, err := term.GetSize(int(out.Fd()))
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Width, info.Height = width, height
	return info
}

// panelSize resolves the frame the panel will draw: fixed flags win over the
// terminal, which the program keeps following otherwise.
func panelSize(cfg app.Config, tty terminal) (width, height int, fixed bool) {
	width, height = cfg.Width, cfg.Height
	fixed = width > 0 && height > 0
	if width == 0 {
		width = tty.Width
	}
	if height == 0 {
		height = tty.Height
	}
	return width, height, fixed
}

// startupTracePayload records what the panel is about to build.
func startupTracePayload(cfg config.Config, tty terminal) map[string]interface{} {
	width, height, fixed := panelSize(cfg.App, tty)
	panel := map[string]interface{}{
		"menus":   shell.MenuNames(),
		"user":    cfg.App.UserName,
		"footer":  cfg.App.ShowFooter,
		"verbose": cfg.App.Verbose,
		"width":   width,
		"height":  height,
		"fixed":   fixed,
	}
	if cfg.App.Open != "" {
		panel["open"] = cfg.App.Open
	}
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    cfg.Flags,
		"panel":    panel,
		"terminal": tty,
		"log": map[string]interface{}{
			"file":  cfg.Logging.FilePath,
			"trace": cfg.Logging.Trace,
		},
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	return payload
}
