package menu

import (
	"github.com/atomicstack/shell-popup/internal/grab"
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithEventFilter installs a hook that sees every captured event first while
// the grab is held. Returning true consumes the event.
func WithEventFilter(fn func(stage.Event) bool) ManagerOption {
	return func(m *Manager) { m.filter = fn }
}

type managedMenu struct {
	menu *Menu
	reg  *signal.Registration
}

// Manager coordinates a set of menus sharing one input grab. While any
// managed menu is open it routes pointer events, follows key focus, switches
// between sibling menus on hover, and releases the grab once the open chain
// is gone.
type Manager struct {
	stage   *stage.Stage
	arbiter *grab.Arbiter
	filter  func(stage.Event) bool

	menus  []*managedMenu
	active *Menu
	stack  []*Menu

	grabbed           bool
	grabReg           *signal.Registration
	didPop            bool
	preGrabInputMode  stage.InputMode
	grabbedFromKeynav bool
}

// NewManager creates a manager for menus shown on st. A nil arbiter grabs the
// stage root through a fresh modal stack.
func NewManager(st *stage.Stage, arbiter *grab.Arbiter, opts ...ManagerOption) *Manager {
	if arbiter == nil {
		arbiter = grab.NewArbiter(grab.NewModalStack(st), st.Root())
	}
	mgr := &Manager{stage: st, arbiter: arbiter}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

// ActiveMenu returns the open menu receiving input, if any.
func (mgr *Manager) ActiveMenu() *Menu { return mgr.active }

// Grabbed reports whether the manager holds the grab.
func (mgr *Manager) Grabbed() bool { return mgr.grabbed }

// MenuStack returns the open ancestors of the active menu, outermost first.
func (mgr *Manager) MenuStack() []*Menu {
	dup := make([]*Menu, len(mgr.stack))
	copy(dup, mgr.stack)
	return dup
}

// Menus returns the managed menus in registration order.
func (mgr *Manager) Menus() []*Menu {
	out := make([]*Menu, 0, len(mgr.menus))
	for _, entry := range mgr.menus {
		out = append(out, entry.menu)
	}
	return out
}

// IsManaged reports whether m was added and not removed since.
func (mgr *Manager) IsManaged(m *Menu) bool {
	return mgr.find(m) >= 0
}

func (mgr *Manager) find(m *Menu) int {
	for i, entry := range mgr.menus {
		if entry.menu == m {
			return i
		}
	}
	return -1
}

// AddMenu manages m and every child menu it already has.
func (mgr *Manager) AddMenu(m *Menu) {
	mgr.InsertMenu(m, -1)
}

// InsertMenu manages m at position in the registration order. Managing a menu
// twice does nothing.
func (mgr *Manager) InsertMenu(m *Menu, position int) {
	if m == nil || m.destroyed || mgr.IsManaged(m) {
		return
	}
	reg := &signal.Registration{}
	signal.On(reg, &m.OpenStateChanged, func(open bool) {
		if open {
			mgr.menuOpened(m)
		} else {
			mgr.menuClosed(m)
		}
	})
	signal.On(reg, &m.ChildMenuAdded, mgr.AddMenu)
	signal.On(reg, &m.ChildMenuRemoved, mgr.RemoveMenu)
	signal.On(reg, &m.Destroyed, mgr.RemoveMenu)
	if src := m.source; src != nil {
		signal.On(reg, &src.Entered, func(*stage.Actor) { mgr.sourceEntered(m) })
		signal.On(reg, &src.FocusIn, func(*stage.Actor) { mgr.sourceEntered(m) })
	}

	entry := &managedMenu{menu: m, reg: reg}
	if position < 0 || position > len(mgr.menus) {
		position = len(mgr.menus)
	}
	mgr.menus = append(mgr.menus, nil)
	copy(mgr.menus[position+1:], mgr.menus[position:])
	mgr.menus[position] = entry
	events.Manager.Register(m.name, len(mgr.menus))

	for _, child := range m.ChildMenus() {
		mgr.AddMenu(child)
	}
}

// RemoveMenu stops managing m, closing it first when it is active. Unknown
// menus are ignored.
func (mgr *Manager) RemoveMenu(m *Menu) {
	idx := mgr.find(m)
	if idx < 0 {
		events.Manager.Unmanaged("remove", menuName(m))
		return
	}
	if m == mgr.active {
		if m.IsOpen() {
			m.Close(AnimationFull)
		} else {
			// Already closed, e.g. destroyed from inside its own close
			// notification before ours ran.
			mgr.menuClosed(m)
		}
	} else if pos := mgr.stackIndex(m); pos >= 0 {
		if m.IsOpen() {
			m.Close(AnimationFull)
		} else {
			mgr.menuClosed(m)
		}
	}

	// Closing may have re-entered RemoveMenu through ChildMenuRemoved.
	if idx = mgr.find(m); idx >= 0 {
		mgr.menus[idx].reg.Dispose()
		mgr.menus = append(mgr.menus[:idx], mgr.menus[idx+1:]...)
		events.Manager.Unregister(m.name, len(mgr.menus))
	}
	mgr.settle()
}

// Toggle toggles a managed menu.
func (mgr *Manager) Toggle(m *Menu) {
	if !mgr.IsManaged(m) {
		events.Manager.Unmanaged("toggle", menuName(m))
		return
	}
	m.Toggle()
}

func (mgr *Manager) stackIndex(m *Menu) int {
	for i, entry := range mgr.stack {
		if entry == m {
			return i
		}
	}
	return -1
}

// chain returns the stack followed by the active menu.
func (mgr *Manager) chain() []*Menu {
	out := make([]*Menu, 0, len(mgr.stack)+1)
	out = append(out, mgr.stack...)
	if mgr.active != nil {
		out = append(out, mgr.active)
	}
	return out
}

func menuContains(m *Menu, actor *stage.Actor) bool {
	if m == nil || actor == nil {
		return false
	}
	return m.actor.Contains(actor) || (m.source != nil && m.source.Contains(actor))
}

func (mgr *Manager) activeContains(actor *stage.Actor) bool {
	return menuContains(mgr.active, actor)
}

func (mgr *Manager) chainContains(actor *stage.Actor) bool {
	for _, m := range mgr.chain() {
		if menuContains(m, actor) {
			return true
		}
	}
	return false
}

// menuOpened and menuClosed skip notifications that a nested transition has
// already overtaken.
func (mgr *Manager) menuOpened(m *Menu) {
	if m == mgr.active || !m.IsOpen() {
		return
	}
	chain := mgr.chain()
	parent := -1
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].IsChildMenu(m) {
			parent = i
			break
		}
	}
	switch {
	case parent >= 0:
		// Opening a submenu of the chain: everything above its parent goes,
		// the parent joins the stack.
		victims := chain[parent+1:]
		mgr.stack = append([]*Menu(nil), chain[:parent+1]...)
		mgr.active = m
		closeAll(victims, AnimationFade)
		events.Manager.Push(chain[parent].name, m.name, len(mgr.stack))
		m.actor.GrabKeyFocus()
	case mgr.active != nil:
		// Unrelated menu: it replaces the chain without dropping the grab.
		events.Manager.Switch(mgr.active.name, m.name)
		mgr.active = m
		mgr.stack = nil
		closeAll(chain, AnimationFade)
	default:
		mgr.active = m
	}
	if mgr.active != m {
		// A close triggered above already replaced the chain.
		return
	}

	focus := mgr.stage.KeyFocus()
	hadFocus := focus != nil && mgr.activeContains(focus)
	if !mgr.grabbed {
		mgr.preGrabInputMode = mgr.stage.InputMode()
		mgr.grabbedFromKeynav = hadFocus
		if !mgr.grab() {
			mgr.active = nil
			mgr.stack = nil
			m.Close(AnimationNone)
			return
		}
	}
	if hadFocus {
		focus.GrabKeyFocus()
	} else {
		m.actor.GrabKeyFocus()
	}
	mgr.settle()
}

func (mgr *Manager) menuClosed(m *Menu) {
	if m.IsOpen() {
		return
	}
	if m == mgr.active {
		focus := mgr.stage.KeyFocus()
		hadFocus := focus != nil && mgr.activeContains(focus)
		root := mgr.chain()[0]
		if parent := mgr.popOpen(); parent != nil {
			mgr.active = parent
			events.Manager.Pop(m.name, parent.name, len(mgr.stack))
			restoreFocus(m, parent)
			mgr.didPop = true
			return
		}
		mgr.release(root, focus, hadFocus)
		return
	}

	pos := mgr.stackIndex(m)
	if pos < 0 {
		return
	}
	chain := mgr.chain()
	victims := chain[pos+1:]
	root := chain[0]
	focus := mgr.stage.KeyFocus()
	hadFocus := focus != nil && mgr.chainContains(focus)
	mgr.stack = append([]*Menu(nil), mgr.stack[:pos]...)
	parent := mgr.popOpen()
	if parent == nil {
		mgr.release(root, focus, hadFocus)
		closeAll(victims, AnimationFade)
		return
	}
	mgr.active = parent
	closeAll(victims, AnimationFade)
	events.Manager.Pop(m.name, parent.name, len(mgr.stack))
	restoreFocus(m, parent)
	mgr.didPop = true
}

// restoreFocus moves focus back to the control closed opened from, falling
// back to parent itself when that control is going away.
func restoreFocus(closed, parent *Menu) {
	if closed.sourceAlive() {
		closed.source.GrabKeyFocus()
		return
	}
	parent.actor.GrabKeyFocus()
}

// popOpen pops stack entries until it finds one still open.
func (mgr *Manager) popOpen() *Menu {
	for len(mgr.stack) > 0 {
		top := mgr.stack[len(mgr.stack)-1]
		mgr.stack = mgr.stack[:len(mgr.stack)-1]
		if top.IsOpen() {
			return top
		}
	}
	return nil
}

// closeAll closes menus innermost first.
func closeAll(menus []*Menu, anim Animation) {
	for i := len(menus) - 1; i >= 0; i-- {
		menus[i].Close(anim)
	}
}

// closeChain closes every open menu of the chain and releases the grab.
func (mgr *Manager) closeChain(reason string) {
	if mgr.active == nil {
		return
	}
	chain := mgr.chain()
	focus := mgr.stage.KeyFocus()
	hadFocus := focus != nil && mgr.chainContains(focus)
	events.Manager.CloseChain(reason, mgr.active.name, len(mgr.stack))
	mgr.release(chain[0], focus, hadFocus)
	closeAll(chain, AnimationFull)
}

func (mgr *Manager) sourceEntered(m *Menu) {
	if !mgr.grabbed || m == mgr.active || !m.sourceAlive() {
		return
	}
	if mgr.active != nil && mgr.active.IsChildMenu(m) {
		return
	}
	if mgr.stackIndex(m) >= 0 {
		return
	}
	if len(mgr.stack) > 0 && mgr.stack[0].IsChildMenu(m) {
		return
	}
	mgr.changeMenu(m)
}

// changeMenu swaps the open chain for m while keeping the grab. A hovered
// menu with nothing to show dismisses the chain instead.
func (mgr *Manager) changeMenu(m *Menu) {
	if m.IsEmpty() {
		mgr.closeChain("switch-empty")
		return
	}
	m.Open(AnimationFade)
}

func (mgr *Manager) grab() bool {
	if !mgr.arbiter.Acquire() {
		return false
	}
	mgr.grabbed = true
	reg := &signal.Registration{}
	signal.OnHook(reg, &mgr.stage.Captured, mgr.capture)
	signal.On(reg, &mgr.stage.KeyFocusChanged, mgr.keyFocusChanged)
	mgr.grabReg = reg
	events.Grab.Acquire(actorName(mgr.arbiter.Region()), mgr.preGrabInputMode.String(), mgr.grabbedFromKeynav)
	return true
}

func (mgr *Manager) ungrab() {
	if mgr.grabReg != nil {
		mgr.grabReg.Dispose()
		mgr.grabReg = nil
	}
	if mgr.grabbed {
		mgr.grabbed = false
		mgr.arbiter.Release()
	}
}

// release empties the chain and drops the grab. When the grab was entered
// from the keyboard, focus goes back to root's source actor if it was inside
// the chain, and otherwise stays where it was.
func (mgr *Manager) release(root *Menu, focus *stage.Actor, hadFocus bool) {
	mgr.active = nil
	mgr.stack = nil
	mgr.didPop = false
	mgr.ungrab()
	if mgr.grabbedFromKeynav {
		if mgr.preGrabInputMode == stage.InputFocused {
			mgr.stage.SetInputMode(stage.InputFocused)
		}
		switch {
		case hadFocus && root != nil && root.source != nil:
			root.source.GrabKeyFocus()
		case !hadFocus && focus != nil:
			focus.GrabKeyFocus()
		}
	}
	mgr.grabbedFromKeynav = false
}

// settle drops a grab left without an open menu, for paths that may have
// emptied the chain without a close notification reaching us.
func (mgr *Manager) settle() {
	if mgr.active != nil && !mgr.active.IsOpen() {
		mgr.menuClosed(mgr.active)
	}
	if mgr.active == nil && mgr.grabbed {
		mgr.release(nil, nil, false)
	}
}

func (mgr *Manager) keyFocusChanged(focus *stage.Actor) {
	if !mgr.grabbed || mgr.active == nil {
		return
	}
	if focus != nil {
		if mgr.chainContains(focus) {
			return
		}
		if item, ok := focus.Delegate().(*Item); ok && item.submenu != nil && mgr.IsManaged(item.submenu) {
			return
		}
	}
	mgr.closeChain("focus-escape")
}

func (mgr *Manager) capture(ev stage.Event) bool {
	if !mgr.grabbed {
		return false
	}
	if mgr.filter != nil && mgr.filter(ev) {
		events.Manager.Capture(ev.Type.String(), actorName(ev.Target), "filtered")
		return true
	}
	if !ev.Type.IsPointer() {
		// Keys go to the focus; they still use up the post-pop slot.
		mgr.didPop = false
		return false
	}
	if mgr.active != nil && mgr.active.passEvents {
		return false
	}
	if mgr.didPop {
		mgr.didPop = false
		events.Manager.Capture(ev.Type.String(), actorName(ev.Target), "post-pop")
		return true
	}

	inside := mgr.activeContains(ev.Target)
	switch {
	case ev.Type == stage.ButtonRelease:
		if inside {
			return false
		}
		mgr.closeChain("release-outside")
		return true
	case ev.Type == stage.ButtonPress && !inside:
		mgr.closeChain("press-outside")
		return true
	case !mgr.shouldBlock(ev.Target):
		return false
	}
	events.Manager.Capture(ev.Type.String(), actorName(ev.Target), "blocked")
	return true
}

func (mgr *Manager) shouldBlock(target *stage.Actor) bool {
	if mgr.active != nil && mgr.active.actor.Contains(target) {
		return false
	}
	for _, entry := range mgr.menus {
		m := entry.menu
		if m.source != nil && !m.blockSourceEvents && m.source.Contains(target) {
			return false
		}
	}
	return true
}

func menuName(m *Menu) string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

func actorName(a *stage.Actor) string {
	if a == nil {
		return "<nil>"
	}
	return a.Name()
}
