// Package menu implements the popup menu tree (items, sections, submenus),
// the per-menu open/close state machine, and the Manager that owns the input
// grab while a chain of menus is open.
package menu

import (
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// Option configures a menu at construction time.
type Option func(*Menu)

// WithSurface sets the renderer.
func WithSurface(s Surface) Option {
	return func(m *Menu) { m.SetSurface(s) }
}

// WithBlockSourceEvents controls whether events on the source actor are
// swallowed while another menu holds the grab.
func WithBlockSourceEvents(block bool) Option {
	return func(m *Menu) { m.blockSourceEvents = block }
}

// Menu is an openable list of entries.
type Menu struct {
	container
	name       string
	source     *stage.Actor
	sourceItem *Item
	surface    Surface

	open              bool
	submenu           bool
	scrollable        bool
	passEvents        bool
	blockSourceEvents bool
	destroyed         bool

	reg signal.Registration

	Destroyed signal.Signal[*Menu]
}

func newMenu(name string, source *stage.Actor, opts []Option) *Menu {
	m := &Menu{
		container: newContainer("menu:" + name),
		name:      name,
		source:    source,
		surface:   nopSurface{},
	}
	m.menu = m
	m.actor.SetDelegate(m)
	m.actor.Hide()
	for _, opt := range opts {
		opt(m)
	}
	signal.OnHook(&m.reg, &m.actor.Events, m.handleKey)
	return m
}

// NewMenu creates a popup menu opened from source. source may be nil.
func NewMenu(name string, source *stage.Actor, opts ...Option) *Menu {
	return newMenu(name, source, opts)
}

// NewSubmenu creates a menu opened from an item of another menu. At open time
// it asks its surface whether the contents need scrolling.
func NewSubmenu(name string, source *Item, opts ...Option) *Menu {
	var actor *stage.Actor
	if source != nil {
		actor = source.actor
	}
	m := newMenu(name, actor, opts)
	m.submenu = true
	m.sourceItem = source
	return m
}

func (m *Menu) Name() string                { return m.name }
func (m *Menu) SourceActor() *stage.Actor   { return m.source }
func (m *Menu) SourceItem() *Item           { return m.sourceItem }
func (m *Menu) IsOpen() bool                { return m.open }
func (m *Menu) IsSubmenu() bool             { return m.submenu }
func (m *Menu) IsDestroyed() bool           { return m.destroyed }
func (m *Menu) Surface() Surface            { return m.surface }
func (m *Menu) PassEvents() bool            { return m.passEvents }
func (m *Menu) SetPassEvents(pass bool)     { m.passEvents = pass }
func (m *Menu) BlockSourceEvents() bool     { return m.blockSourceEvents }
func (m *Menu) SetBlockSourceEvents(b bool) { m.blockSourceEvents = b }

func (m *Menu) sourceAlive() bool {
	if m.destroyed || m.source == nil || m.source.IsDestroyed() {
		return false
	}
	return m.sourceItem == nil || !m.sourceItem.destroyed
}

// Scrollable reports whether the last open of a submenu needed scrolling.
func (m *Menu) Scrollable() bool { return m.scrollable }

// SetSurface replaces the renderer. nil restores the no-op surface.
func (m *Menu) SetSurface(s Surface) {
	if s == nil {
		s = nopSurface{}
	}
	m.surface = s
}

// TopMenu returns the popup a submenu hangs off, following source items
// upwards. A popup returns itself.
func (m *Menu) TopMenu() *Menu {
	cur := m
	for cur.submenu && cur.sourceItem != nil {
		parent := cur.sourceItem.Menu()
		if parent == nil {
			break
		}
		cur = parent
	}
	return cur
}

// Open shows the menu. Opening an open, empty or destroyed menu does nothing.
func (m *Menu) Open(anim Animation) {
	if m.open || m.destroyed {
		return
	}
	if m.IsEmpty() {
		events.Menu.OpenEmpty(m.name)
		return
	}
	if m.submenu {
		m.scrollable = m.surface.NeedsScroll()
		if m.scrollable {
			anim = AnimationNone
		}
	}
	m.open = true
	m.actor.Show()
	m.updateSeparatorVisibility()
	events.Menu.Open(m.name, anim.String(), m.Length())
	m.surface.Show(anim)
	m.OpenStateChanged.Emit(true)
}

// Close hides the menu and drops its highlighted item. Registered child menus
// close with it.
func (m *Menu) Close(anim Animation) {
	if !m.open {
		return
	}
	if m.active != nil {
		m.active.SetActive(false)
	}
	m.open = false
	m.actor.Hide()
	m.updateSeparatorVisibility()
	events.Menu.Close(m.name, anim.String())
	m.surface.Hide(anim)
	m.OpenStateChanged.Emit(false)
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle() {
	if m.open {
		m.Close(AnimationFull)
		return
	}
	m.Open(AnimationFull)
}

func (m *Menu) itemActivated(item *Item) {
	events.Menu.Activate(m.name, item.label)
	top := m.TopMenu()
	top.Close(AnimationFull)
	m.Close(AnimationFull)
}

func (m *Menu) handleKey(ev stage.Event) bool {
	if ev.Type != stage.KeyPress || !m.open {
		return false
	}
	switch ev.Key {
	case stage.KeyUp, stage.KeyShiftTab:
		m.MoveFocus(-1)
	case stage.KeyDown, stage.KeyTab:
		m.MoveFocus(1)
	case stage.KeyHome:
		m.FocusFirst()
	case stage.KeyEnd:
		m.FocusLast()
	case stage.KeyLeft:
		if !m.submenu {
			return false
		}
		m.Close(AnimationFull)
		if m.sourceItem != nil {
			m.sourceItem.SetActive(true)
		}
	case stage.KeyEscape:
		m.Close(AnimationFull)
	default:
		return false
	}
	return true
}

// Destroy destroys every entry and the menu actor, then emits Destroyed.
// A manager watching the menu unregisters it and releases the grab if the
// menu was the last one open.
func (m *Menu) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.RemoveAll()
	for _, child := range m.ChildMenus() {
		m.RemoveChildMenu(child)
	}
	m.reg.Dispose()
	m.actor.Destroy()
	events.Menu.Destroy(m.name)
	m.Destroyed.Emit(m)
}
