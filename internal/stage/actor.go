package stage

import "github.com/atomicstack/shell-popup/internal/signal"

// Actor is a node in the stage's actor tree. Menus, items and panel buttons
// each own one; the tree answers containment questions for event routing.
type Actor struct {
	name      string
	parent    *Actor
	children  []*Actor
	stage     *Stage
	delegate  any
	reactive  bool
	visible   bool
	destroyed bool

	Entered   signal.Signal[*Actor]
	Left      signal.Signal[*Actor]
	FocusIn   signal.Signal[*Actor]
	FocusOut  signal.Signal[*Actor]
	Destroyed signal.Signal[*Actor]
	// Events receives events bubbling up from the target. A handler returning
	// true stops propagation.
	Events signal.Hook[Event]
}

// NewActor creates a detached, visible, non-reactive actor.
func NewActor(name string) *Actor {
	return &Actor{name: name, visible: true}
}

func (a *Actor) Name() string { return a.name }

func (a *Actor) Parent() *Actor { return a.parent }

// Children returns a copy of the child list.
func (a *Actor) Children() []*Actor {
	dup := make([]*Actor, len(a.children))
	copy(dup, a.children)
	return dup
}

// Delegate returns the non-owning back-reference set by the actor's owner.
func (a *Actor) Delegate() any { return a.delegate }

func (a *Actor) SetDelegate(d any) { a.delegate = d }

func (a *Actor) Reactive() bool { return a.reactive }

func (a *Actor) SetReactive(reactive bool) { a.reactive = reactive }

func (a *Actor) Visible() bool { return a.visible }

func (a *Actor) Show() { a.visible = true }

func (a *Actor) Hide() { a.visible = false }

func (a *Actor) IsDestroyed() bool { return a.destroyed }

// Mapped reports whether the actor and all its ancestors are visible and the
// actor is attached to a stage.
func (a *Actor) Mapped() bool {
	for cur := a; cur != nil; cur = cur.parent {
		if !cur.visible {
			return false
		}
		if cur.stage != nil {
			return true
		}
	}
	return false
}

// AddChild appends child, detaching it from any previous parent.
func (a *Actor) AddChild(child *Actor) {
	a.InsertChild(child, len(a.children))
}

// InsertChild inserts child at index, clamped to the child range.
func (a *Actor) InsertChild(child *Actor, index int) {
	if child == nil || child == a || child.Contains(a) {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	if index < 0 {
		index = 0
	}
	if index > len(a.children) {
		index = len(a.children)
	}
	a.children = append(a.children, nil)
	copy(a.children[index+1:], a.children[index:])
	a.children[index] = child
	child.parent = a
}

// IndexOf returns the position of child, or -1.
func (a *Actor) IndexOf(child *Actor) int {
	for i, c := range a.children {
		if c == child {
			return i
		}
	}
	return -1
}

// RemoveChild detaches child. Focus and hover held inside the removed subtree
// are dropped.
func (a *Actor) RemoveChild(child *Actor) {
	idx := a.IndexOf(child)
	if idx < 0 {
		return
	}
	st := a.Stage()
	a.children = append(a.children[:idx], a.children[idx+1:]...)
	child.parent = nil
	if st != nil {
		st.forget(child)
	}
}

// Contains reports whether other is a itself or one of its descendants.
func (a *Actor) Contains(other *Actor) bool {
	if a == nil || other == nil {
		return false
	}
	for cur := other; cur != nil; cur = cur.parent {
		if cur == a {
			return true
		}
	}
	return false
}

// Stage returns the stage the actor is attached to, if any.
func (a *Actor) Stage() *Stage {
	for cur := a; cur != nil; cur = cur.parent {
		if cur.stage != nil {
			return cur.stage
		}
	}
	return nil
}

// GrabKeyFocus makes the actor the stage's key focus. Detached actors are
// ignored.
func (a *Actor) GrabKeyFocus() {
	if a == nil || a.destroyed {
		return
	}
	if st := a.Stage(); st != nil {
		st.SetKeyFocus(a)
	}
}

// HasKeyFocus reports whether the actor currently holds key focus.
func (a *Actor) HasKeyFocus() bool {
	st := a.Stage()
	return st != nil && st.KeyFocus() == a
}

// Destroy tears down the subtree bottom-up, detaches the actor and emits
// Destroyed. Calling it twice is a no-op.
func (a *Actor) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	for _, child := range a.Children() {
		child.Destroy()
	}
	if a.parent != nil {
		a.parent.RemoveChild(a)
	}
	a.Destroyed.Emit(a)
}
