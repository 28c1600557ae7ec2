package ui

import (
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/stage"
	tea "github.com/charmbracelet/bubbletea"
)

// Scroll event buttons, numbered the way X11 reports the wheel.
const (
	wheelUp   = 4
	wheelDown = 5
)

// scrollDrag tracks a scrollbar drag. While it lasts the active menu passes
// pointer events through, so moving off the popup does not dismiss it.
type scrollDrag struct {
	menu   *menu.Menu
	passed *menu.Menu
	actor  *stage.Actor
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	ev := tea.MouseEvent(mouse)
	st := m.panel.Stage()
	l := m.layout()

	if m.drag != nil {
		m.continueDrag(ev, l)
		return nil
	}

	target := l.hitTest(ev.X, ev.Y, m.panel.Desktop())
	kind := "motion"
	var handled bool
	switch {
	case ev.IsWheel():
		kind = "scroll"
		handled = m.scroll(ev, l, target)
	case ev.Action == tea.MouseActionMotion:
		handled = st.MovePointer(target, ev.X, ev.Y)
	case ev.Action == tea.MouseActionPress:
		kind = "press"
		st.MovePointer(target, ev.X, ev.Y)
		if l.popup != nil && target == m.scrollbars[l.popup.menu] {
			m.startDrag(l.popup, target)
		}
		handled = st.Dispatch(stage.Event{Type: stage.ButtonPress, Target: target, X: ev.X, Y: ev.Y, Button: mouseButton(ev.Button)})
		if m.drag != nil {
			m.dragTo(l, ev.Y)
		}
	case ev.Action == tea.MouseActionRelease:
		kind = "release"
		handled = st.Dispatch(stage.Event{Type: stage.ButtonRelease, Target: target, X: ev.X, Y: ev.Y, Button: mouseButton(ev.Button)})
	}
	events.UI.Mouse(kind, actorName(target), ev.X, ev.Y, handled)
	return nil
}

// scroll routes a wheel event to the actor under the pointer and scrolls the
// popup when nothing consumes it.
func (m *Model) scroll(ev tea.MouseEvent, l *screenLayout, target *stage.Actor) bool {
	button, delta := wheelDown, 1
	if ev.Button == tea.MouseButtonWheelUp {
		button, delta = wheelUp, -1
	}
	if ev.Button == tea.MouseButtonWheelLeft || ev.Button == tea.MouseButtonWheelRight {
		return false
	}
	if m.panel.Stage().Dispatch(stage.Event{Type: stage.Scroll, Target: target, X: ev.X, Y: ev.Y, Button: button}) {
		return true
	}
	p := l.popup
	if p == nil || !p.box.contains(ev.X, ev.Y) {
		return false
	}
	moved := p.level.ScrollBy(delta, p.end-p.start)
	if moved {
		events.UI.Scroll(p.menu.Name(), p.level.ViewportOffset, false)
	}
	return moved
}

func (m *Model) startDrag(p *popupLayout, bar *stage.Actor) {
	drag := &scrollDrag{menu: p.menu, actor: bar}
	if active := m.panel.Manager().ActiveMenu(); active != nil && !active.PassEvents() {
		active.SetPassEvents(true)
		drag.passed = active
	}
	m.drag = drag
}

func (m *Model) continueDrag(ev tea.MouseEvent, l *screenLayout) {
	st := m.panel.Stage()
	drag := m.drag
	switch ev.Action {
	case tea.MouseActionMotion:
		st.Dispatch(stage.Event{Type: stage.Motion, Target: drag.actor, X: ev.X, Y: ev.Y})
		m.dragTo(l, ev.Y)
	case tea.MouseActionRelease:
		st.Dispatch(stage.Event{Type: stage.ButtonRelease, Target: drag.actor, X: ev.X, Y: ev.Y, Button: mouseButton(ev.Button)})
		m.endDrag()
	}
}

func (m *Model) dragTo(l *screenLayout, y int) {
	p := l.popup
	if p == nil || m.drag == nil || p.menu != m.drag.menu {
		return
	}
	if p.level.ScrollTo(p.offsetAt(y), p.end-p.start) {
		events.UI.Scroll(p.menu.Name(), p.level.ViewportOffset, true)
	}
}

func (m *Model) endDrag() {
	if m.drag == nil {
		return
	}
	if m.drag.passed != nil {
		m.drag.passed.SetPassEvents(false)
	}
	m.drag = nil
}

func mouseButton(b tea.MouseButton) int {
	switch b {
	case tea.MouseButtonLeft:
		return 1
	case tea.MouseButtonMiddle:
		return 2
	case tea.MouseButtonRight:
		return 3
	}
	return 0
}
