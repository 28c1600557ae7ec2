package events

import "github.com/atomicstack/shell-popup/internal/logging"

type ShellTracer struct{}

var Shell = ShellTracer{}

func (ShellTracer) Action(menu, id, label string) {
	logging.Trace("shell.action", map[string]interface{}{"menu": menu, "id": id, "label": label})
}

func (ShellTracer) Focus(button string, fromKeyboard bool) {
	logging.Trace("shell.focus", map[string]interface{}{"button": button, "keyboard": fromKeyboard})
}

func (ShellTracer) OpenPath(id string, found bool) {
	logging.Trace("shell.open-path", map[string]interface{}{"id": id, "found": found})
}
