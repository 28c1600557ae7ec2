package menu

import (
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// ItemKind enumerates the item variants a menu can hold.
type ItemKind int

const (
	KindPlain ItemKind = iota
	KindSwitch
	KindSubmenu
	KindSeparator
)

func (k ItemKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindSwitch:
		return "switch"
	case KindSubmenu:
		return "submenu"
	case KindSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Entry is anything a menu can contain: an *Item or a *Section.
type Entry interface {
	Actor() *stage.Actor
	Destroy()
	IsDestroyed() bool
	parentContainer() *container
}

// ItemOption configures an item at construction time.
type ItemOption func(*Item)

// WithReactive controls whether the item responds to input at all.
func WithReactive(reactive bool) ItemOption {
	return func(i *Item) { i.reactive = reactive }
}

// WithActivate controls whether the item can be activated.
func WithActivate(activate bool) ItemOption {
	return func(i *Item) { i.activate = activate }
}

// WithSensitive sets the initial sensitivity.
func WithSensitive(sensitive bool) ItemOption {
	return func(i *Item) { i.wantSensitive = sensitive }
}

// WithHover makes the pointer entering the item activate it.
func WithHover(hover bool) ItemOption {
	return func(i *Item) { i.hover = hover }
}

// Item is a single menu row.
type Item struct {
	kind   ItemKind
	label  string
	status string
	actor  *stage.Actor
	owner  *container

	reactive      bool
	activate      bool
	wantSensitive bool
	hover         bool
	active        bool
	toggled       bool
	destroyed     bool
	submenu       *Menu

	reg signal.Registration

	ActiveChanged    signal.Signal[bool]
	SensitiveChanged signal.Signal[bool]
	Activated        signal.Signal[stage.Event]
	Toggled          signal.Signal[bool]
	Destroyed        signal.Signal[*Item]
}

func newItem(kind ItemKind, label string, opts []ItemOption) *Item {
	item := &Item{
		kind:          kind,
		label:         label,
		actor:         stage.NewActor("item:" + label),
		reactive:      true,
		activate:      true,
		wantSensitive: true,
		hover:         true,
	}
	if kind == KindSeparator {
		item.reactive = false
		item.activate = false
		item.hover = false
	}
	for _, opt := range opts {
		opt(item)
	}
	item.actor.SetDelegate(item)
	item.actor.SetReactive(item.reactive)
	signal.On(&item.reg, &item.actor.FocusIn, func(*stage.Actor) { item.SetActive(true) })
	signal.On(&item.reg, &item.actor.FocusOut, func(*stage.Actor) { item.SetActive(false) })
	signal.OnHook(&item.reg, &item.actor.Events, item.handleEvent)
	return item
}

// NewItem creates a plain item.
func NewItem(label string, opts ...ItemOption) *Item {
	return newItem(KindPlain, label, opts)
}

// NewSwitchItem creates an on/off item.
func NewSwitchItem(label string, on bool, opts ...ItemOption) *Item {
	item := newItem(KindSwitch, label, opts)
	item.toggled = on
	return item
}

// NewSeparator creates a separator row, optionally carrying a label.
func NewSeparator(label string) *Item {
	return newItem(KindSeparator, label, nil)
}

// NewSubmenuItem creates an item owning a child menu. Activating the item
// opens the child; closing the item's menu closes the child.
func NewSubmenuItem(label string, opts ...ItemOption) *Item {
	item := newItem(KindSubmenu, label, opts)
	item.submenu = NewSubmenu(label, item)
	return item
}

func (i *Item) Kind() ItemKind      { return i.kind }
func (i *Item) Label() string       { return i.label }
func (i *Item) SetLabel(l string)   { i.label = l }
func (i *Item) Status() string      { return i.status }
func (i *Item) SetStatus(s string)  { i.status = s }
func (i *Item) Actor() *stage.Actor { return i.actor }
func (i *Item) Active() bool        { return i.active }
func (i *Item) IsDestroyed() bool   { return i.destroyed }

// Submenu returns the owned child menu of a submenu item.
func (i *Item) Submenu() *Menu { return i.submenu }

// State returns the toggle state of a switch item.
func (i *Item) State() bool { return i.toggled }

// Activatable reports whether the item is reactive and allowed to activate.
func (i *Item) Activatable() bool {
	return i.reactive && i.activate
}

// Sensitive reports the effective sensitivity.
func (i *Item) Sensitive() bool {
	return i.Activatable() && i.wantSensitive
}

// CanFocus reports whether keyboard navigation may land on the item.
func (i *Item) CanFocus() bool {
	return !i.destroyed && i.kind != KindSeparator && i.Sensitive() && i.actor.Visible()
}

// Menu returns the menu the item ultimately belongs to.
func (i *Item) Menu() *Menu {
	if i.owner == nil {
		return nil
	}
	return i.owner.root().menu
}

func (i *Item) parentContainer() *container { return i.owner }

// SetActive changes the highlighted state. Activating an item deactivates the
// one previously active in the same menu first and moves key focus to it.
// Insensitive items cannot become active.
func (i *Item) SetActive(active bool) {
	if active == i.active || i.destroyed {
		return
	}
	if active {
		if !i.Sensitive() {
			return
		}
		if i.owner != nil {
			i.owner.willActivate(i)
		}
	}
	i.active = active
	i.ActiveChanged.Emit(active)
	if i.owner != nil {
		i.owner.itemActiveChanged(i, active)
	}
	if active && i.active {
		i.actor.GrabKeyFocus()
	}
}

// SetSensitive updates sensitivity. An active item losing sensitivity hands
// focus to the next focusable sibling, or to the menu itself.
func (i *Item) SetSensitive(sensitive bool) {
	before := i.Sensitive()
	i.wantSensitive = sensitive
	after := i.Sensitive()
	if before == after {
		return
	}
	i.actor.SetReactive(i.reactive && sensitive)
	i.SensitiveChanged.Emit(after)
	if i.owner != nil {
		i.owner.itemSensitiveChanged(i, after)
	}
}

// Show makes the item visible.
func (i *Item) Show() {
	i.actor.Show()
	if i.owner != nil {
		i.owner.updateSeparatorVisibility()
	}
}

// Hide hides the item and drops its highlight.
func (i *Item) Hide() {
	i.SetActive(false)
	i.actor.Hide()
	if i.owner != nil {
		i.owner.updateSeparatorVisibility()
	}
}

// SetToggleState sets a switch item's state, emitting Toggled on change.
func (i *Item) SetToggleState(on bool) {
	if i.kind != KindSwitch || i.toggled == on {
		return
	}
	i.toggled = on
	i.Toggled.Emit(on)
}

// Toggle flips a switch item.
func (i *Item) Toggle() {
	i.SetToggleState(!i.toggled)
}

// Activate runs the item's action. Submenu items open their child; switch
// items toggle, and a space key press keeps the menu open. Everything else
// emits Activated and lets the owning menu close.
func (i *Item) Activate(ev stage.Event) {
	if i.destroyed || !i.Sensitive() {
		return
	}
	switch i.kind {
	case KindSubmenu:
		i.submenu.Open(AnimationFull)
		if ev.Type.IsKey() {
			i.submenu.FocusFirst()
		}
		return
	case KindSwitch:
		i.Toggle()
		if ev.Type == stage.KeyPress && ev.Key == stage.KeySpace {
			return
		}
	}
	i.Activated.Emit(ev)
	if i.owner != nil && !i.destroyed {
		i.owner.itemActivated(i)
	}
}

func (i *Item) handleEvent(ev stage.Event) bool {
	if ev.Target != i.actor {
		return false
	}
	switch ev.Type {
	case stage.Enter:
		if i.hover && i.CanFocus() {
			i.SetActive(true)
		}
	case stage.Leave:
		if i.hover {
			i.SetActive(false)
		}
	case stage.ButtonRelease:
		if !i.Sensitive() {
			return false
		}
		if i.kind == KindSubmenu {
			i.submenu.Toggle()
			return true
		}
		i.Activate(ev)
		return true
	case stage.KeyPress:
		if !i.Sensitive() {
			return false
		}
		switch ev.Key {
		case stage.KeyEnter, stage.KeySpace:
			i.Activate(ev)
			return true
		case stage.KeyRight:
			if i.kind == KindSubmenu {
				i.Activate(ev)
				return true
			}
		}
	}
	return false
}

// Destroy detaches the item, destroys its submenu and actor, and emits
// Destroyed.
func (i *Item) Destroy() {
	if i.destroyed {
		return
	}
	i.SetActive(false)
	i.destroyed = true
	owner := i.owner
	if owner != nil {
		owner.detach(i)
	}
	if i.submenu != nil {
		if owner != nil {
			owner.RemoveChildMenu(i.submenu)
		}
		i.submenu.Destroy()
	}
	i.reg.Dispose()
	i.actor.Destroy()
	i.owner = nil
	i.Destroyed.Emit(i)
}
