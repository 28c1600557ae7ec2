package shell

import (
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// Button is a panel entry that opens a popup menu.
type Button struct {
	panel *Panel
	name  string
	label string
	actor *stage.Actor
	menu  *menu.Menu
	reg   signal.Registration
}

func newButton(p *Panel, name, label string) *Button {
	b := &Button{
		panel: p,
		name:  name,
		label: label,
		actor: stage.NewActor("button:" + name),
	}
	b.actor.SetReactive(true)
	b.actor.SetDelegate(b)
	signal.OnHook(&b.reg, &b.actor.Events, b.handleEvent)
	return b
}

func (b *Button) Name() string          { return b.name }
func (b *Button) Label() string         { return b.label }
func (b *Button) SetLabel(label string) { b.label = label }
func (b *Button) Actor() *stage.Actor   { return b.actor }
func (b *Button) Menu() *menu.Menu      { return b.menu }
func (b *Button) HasKeyFocus() bool     { return b.actor.HasKeyFocus() }
func (b *Button) IsOpen() bool          { return b.menu != nil && b.menu.IsOpen() }

func (b *Button) handleEvent(ev stage.Event) bool {
	if ev.Target != b.actor {
		return false
	}
	switch ev.Type {
	case stage.ButtonPress:
		b.menu.Toggle()
		return true
	case stage.ButtonRelease:
		return true
	}
	return false
}

// openFromKeyboard toggles the menu and, when it opens, highlights its first
// item.
func (b *Button) openFromKeyboard() {
	if b.menu.IsOpen() {
		b.menu.Close(menu.AnimationFull)
		return
	}
	b.panel.FocusButton(b)
	b.menu.Open(menu.AnimationFull)
	if b.menu.IsOpen() {
		b.menu.FocusFirst()
	}
}

func (b *Button) destroy() {
	b.menu.Destroy()
	b.reg.Dispose()
	b.actor.Destroy()
}
