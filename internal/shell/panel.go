// Package shell builds the top panel: a row of buttons, each the source of a
// popup menu, wired to a single menu manager.
package shell

import (
	"github.com/atomicstack/shell-popup/internal/grab"
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// Menu names understood by Open.
const (
	MenuPlaces  = "places"
	MenuNetwork = "network"
	MenuUser    = "user"
)

// MenuNames lists the top-level menus in panel order.
func MenuNames() []string {
	return []string{MenuPlaces, MenuNetwork, MenuUser}
}

// Action is raised when a leaf item is chosen or a switch flips.
type Action struct {
	Menu  string
	ID    string
	Label string
	// Switch marks actions raised by a switch item; On carries its new state.
	Switch bool
	On     bool
	// Quit asks the application to exit after handling the action.
	Quit bool
}

// Options seeds the panel content.
type Options struct {
	UserName string
	Networks []string
	Devices  []string
}

// Panel owns the stage layout, its menus and the manager routing their input.
type Panel struct {
	stage   *stage.Stage
	modal   *grab.ModalStack
	manager *menu.Manager

	desktop *stage.Actor
	bar     *stage.Actor
	layer   *stage.Actor

	buttons  []*Button
	onAction func(Action)
	reg      signal.Registration

	places  *placesMenu
	network *networkMenu
	user    *userMenu
}

// New lays out a panel on st. Menus are built and registered immediately.
func New(st *stage.Stage, opts Options) *Panel {
	if opts.UserName == "" {
		opts.UserName = "user"
	}
	if opts.Networks == nil {
		opts.Networks = DefaultNetworks()
	}
	if opts.Devices == nil {
		opts.Devices = DefaultDevices()
	}

	modal := grab.NewModalStack(st)
	p := &Panel{
		stage:   st,
		modal:   modal,
		manager: menu.NewManager(st, grab.NewArbiter(modal, st.Root())),
		desktop: stage.NewActor("desktop"),
		bar:     stage.NewActor("panel"),
		layer:   stage.NewActor("popups"),
	}
	p.desktop.SetReactive(true)
	p.bar.SetReactive(true)
	st.Root().AddChild(p.desktop)
	st.Root().AddChild(p.bar)
	st.Root().AddChild(p.layer)
	signal.OnHook(&p.reg, &p.layer.Events, p.handleMenuKey)
	signal.OnHook(&p.reg, &p.bar.Events, p.handleBarKey)

	p.places = newPlacesMenu(p, opts.Devices)
	p.network = newNetworkMenu(p, opts.Networks)
	p.user = newUserMenu(p, opts.UserName)
	return p
}

func (p *Panel) Stage() *stage.Stage      { return p.stage }
func (p *Panel) Manager() *menu.Manager   { return p.manager }
func (p *Panel) Modal() *grab.ModalStack  { return p.modal }
func (p *Panel) Desktop() *stage.Actor    { return p.desktop }
func (p *Panel) Bar() *stage.Actor        { return p.bar }
func (p *Panel) Layer() *stage.Actor      { return p.layer }
func (p *Panel) OnAction(fn func(Action)) { p.onAction = fn }

// Buttons returns the panel buttons left to right.
func (p *Panel) Buttons() []*Button {
	dup := make([]*Button, len(p.buttons))
	copy(dup, p.buttons)
	return dup
}

// Button finds a button by menu name.
func (p *Panel) Button(name string) *Button {
	for _, b := range p.buttons {
		if b.name == name {
			return b
		}
	}
	return nil
}

// Registry indexes every live menu by path.
func (p *Panel) Registry() *menu.Registry {
	roots := make(map[string]*menu.Menu, len(p.buttons))
	for _, b := range p.buttons {
		roots[b.name] = b.menu
	}
	return menu.BuildRegistry(roots)
}

// Open opens the menu at id the way keyboard navigation would: focus moves
// to the owning button, each menu on the path opens in turn and the first
// item of the last one is highlighted.
func (p *Panel) Open(id string) bool {
	path, ok := p.Registry().Path(id)
	events.Shell.OpenPath(id, ok)
	if !ok {
		return false
	}
	button := p.buttonFor(path[0])
	if button == nil {
		return false
	}
	p.FocusButton(button)
	for _, m := range path {
		m.Open(menu.AnimationFull)
		if !m.IsOpen() {
			return false
		}
	}
	path[len(path)-1].FocusFirst()
	return true
}

// CloseAll dismisses whatever menu chain is open.
func (p *Panel) CloseAll() {
	chain := append(p.manager.MenuStack(), p.manager.ActiveMenu())
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i] != nil {
			chain[i].Close(menu.AnimationFull)
		}
	}
}

// FocusButton moves keyboard focus onto b and puts the stage into focused
// input mode.
func (p *Panel) FocusButton(b *Button) {
	if b == nil {
		return
	}
	if p.stage.InputMode() == stage.InputNormal {
		p.stage.SetInputMode(stage.InputFocused)
	}
	events.Shell.Focus(b.name, true)
	b.actor.GrabKeyFocus()
}

// Unfocus drops keyboard navigation when no menu is open.
func (p *Panel) Unfocus() {
	if p.manager.Grabbed() {
		return
	}
	p.stage.SetKeyFocus(nil)
	if p.stage.InputMode() == stage.InputFocused {
		p.stage.SetInputMode(stage.InputNormal)
	}
}

// Destroy tears down every menu; the manager releases the grab if needed.
func (p *Panel) Destroy() {
	for _, b := range p.Buttons() {
		b.destroy()
	}
	p.buttons = nil
	p.reg.Dispose()
}

func (p *Panel) newButton(name, label string) *Button {
	b := newButton(p, name, label)
	p.buttons = append(p.buttons, b)
	p.bar.AddChild(b.actor)
	return b
}

func (p *Panel) attach(b *Button, m *menu.Menu) {
	b.menu = m
	p.layer.AddChild(m.Actor())
	p.manager.AddMenu(m)
}

func (p *Panel) buttonFor(m *menu.Menu) *Button {
	for _, b := range p.buttons {
		if b.menu == m {
			return b
		}
	}
	return nil
}

func (p *Panel) neighbour(b *Button, dir int) *Button {
	n := len(p.buttons)
	for i, cur := range p.buttons {
		if cur == b {
			return p.buttons[((i+dir)%n+n)%n]
		}
	}
	return nil
}

func (p *Panel) emit(a Action) {
	events.Shell.Action(a.Menu, a.ID, a.Label)
	if p.onAction != nil {
		p.onAction(a)
	}
}

// handleMenuKey moves between neighbouring popups with left/right while a
// top-level popup is active.
func (p *Panel) handleMenuKey(ev stage.Event) bool {
	if ev.Type != stage.KeyPress || (ev.Key != stage.KeyLeft && ev.Key != stage.KeyRight) {
		return false
	}
	active := p.manager.ActiveMenu()
	if active == nil || active.IsSubmenu() {
		return false
	}
	current := p.buttonFor(active)
	if current == nil {
		return false
	}
	dir := 1
	if ev.Key == stage.KeyLeft {
		dir = -1
	}
	next := p.neighbour(current, dir)
	if next == nil || next == current {
		return false
	}
	next.openFromKeyboard()
	return true
}

// handleBarKey runs keyboard navigation along the panel.
func (p *Panel) handleBarKey(ev stage.Event) bool {
	if ev.Type != stage.KeyPress {
		return false
	}
	b, ok := ev.Target.Delegate().(*Button)
	if !ok {
		return false
	}
	switch ev.Key {
	case stage.KeyLeft, stage.KeyShiftTab:
		p.FocusButton(p.neighbour(b, -1))
	case stage.KeyRight, stage.KeyTab:
		p.FocusButton(p.neighbour(b, 1))
	case stage.KeyEnter, stage.KeySpace, stage.KeyDown:
		b.openFromKeyboard()
	case stage.KeyEscape:
		p.Unfocus()
	default:
		return false
	}
	return true
}
