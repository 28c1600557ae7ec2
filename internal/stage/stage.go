// Package stage models the shell's input surface: a tree of actors, the global
// keyboard focus, the stage input mode, and two-phase event dispatch (a
// captured phase that a modal owner can hook, then bubbling from the target
// actor to the root).
package stage

import "github.com/atomicstack/shell-popup/internal/signal"

// InputMode mirrors how much input the shell stage takes from other clients.
type InputMode int

const (
	InputNormal InputMode = iota
	InputFocused
	InputFullscreen
)

func (m InputMode) String() string {
	switch m {
	case InputNormal:
		return "normal"
	case InputFocused:
		return "focused"
	case InputFullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// Stage is the root of an actor tree.
type Stage struct {
	root      *Actor
	keyFocus  *Actor
	hovered   *Actor
	inputMode InputMode
	current   *Event

	// KeyFocusChanged fires after every key focus change with the focus
	// current at emission time.
	KeyFocusChanged signal.Signal[*Actor]
	// Captured sees every dispatched event before the target does.
	Captured signal.Hook[Event]
}

// New creates an empty stage.
func New() *Stage {
	s := &Stage{}
	s.root = NewActor("stage")
	s.root.stage = s
	s.root.reactive = true
	return s
}

// Root returns the stage actor.
func (s *Stage) Root() *Actor { return s.root }

func (s *Stage) KeyFocus() *Actor { return s.keyFocus }

func (s *Stage) Hovered() *Actor { return s.hovered }

func (s *Stage) InputMode() InputMode { return s.inputMode }

func (s *Stage) SetInputMode(mode InputMode) { s.inputMode = mode }

// CurrentEvent returns the event being dispatched, if any.
func (s *Stage) CurrentEvent() (Event, bool) {
	if s.current == nil {
		return Event{}, false
	}
	return *s.current, true
}

// SetKeyFocus moves key focus to a, which must be attached to this stage or
// nil.
func (s *Stage) SetKeyFocus(a *Actor) {
	if a != nil && (a.destroyed || a.Stage() != s) {
		return
	}
	if a == s.keyFocus {
		return
	}
	old := s.keyFocus
	s.keyFocus = a
	if old != nil {
		old.FocusOut.Emit(old)
	}
	if a != nil && s.keyFocus == a {
		a.FocusIn.Emit(a)
	}
	s.KeyFocusChanged.Emit(s.keyFocus)
}

// Dispatch routes ev through the captured phase and then bubbles it from the
// target towards the root. Key events without a target go to the key focus.
// It reports whether anything consumed the event.
func (s *Stage) Dispatch(ev Event) bool {
	if ev.Target == nil {
		if ev.Type.IsKey() {
			ev.Target = s.keyFocus
		}
		if ev.Target == nil {
			ev.Target = s.root
		}
	}
	prev := s.current
	s.current = &ev
	defer func() { s.current = prev }()

	if s.Captured.Run(ev) {
		return true
	}
	for cur := ev.Target; cur != nil; cur = cur.parent {
		if cur.Events.Run(ev) {
			return true
		}
	}
	return false
}

// MovePointer records the actor under the pointer. Crossing from one actor to
// another emits Left/Entered notifications followed by leave/enter events;
// staying on the same actor dispatches a motion event. It reports whether the
// last dispatched event was consumed.
func (s *Stage) MovePointer(target *Actor, x, y int) bool {
	if target != nil && target.Stage() != s {
		target = nil
	}
	if target == s.hovered {
		if target == nil {
			return false
		}
		return s.Dispatch(Event{Type: Motion, Target: target, X: x, Y: y})
	}
	old := s.hovered
	s.hovered = target
	handled := false
	if old != nil && !old.destroyed {
		old.Left.Emit(old)
		handled = s.Dispatch(Event{Type: Leave, Target: old, X: x, Y: y})
	}
	if target != nil && s.hovered == target {
		target.Entered.Emit(target)
		handled = s.Dispatch(Event{Type: Enter, Target: target, X: x, Y: y})
	}
	return handled
}

// forget drops focus and hover references into a subtree leaving the stage.
func (s *Stage) forget(subtree *Actor) {
	if s.hovered != nil && subtree.Contains(s.hovered) {
		s.hovered = nil
	}
	if s.keyFocus != nil && subtree.Contains(s.keyFocus) {
		s.SetKeyFocus(nil)
	}
}
