package events

import "github.com/atomicstack/shell-popup/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key, target string, handled bool) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "target": target, "handled": handled})
}

func (UITracer) Mouse(kind, target string, x, y int, handled bool) {
	logging.Trace("ui.mouse", map[string]interface{}{"kind": kind, "target": target, "x": x, "y": y, "handled": handled})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) TypeAhead(menu, query string, index int) {
	logging.Trace("ui.type-ahead", map[string]interface{}{"menu": menu, "query": query, "index": index})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (UITracer) Surface(menu, action, anim string) {
	logging.Trace("ui.surface", map[string]interface{}{"menu": menu, "action": action, "anim": anim})
}

func (UITracer) Scroll(menu string, offset int, drag bool) {
	logging.Trace("ui.scroll", map[string]interface{}{"menu": menu, "offset": offset, "drag": drag})
}
