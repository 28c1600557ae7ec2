package menu

import "github.com/atomicstack/shell-popup/internal/signal"

// Section groups items inline within a menu. It is always open as far as
// callers can tell and follows its parent's open state.
type Section struct {
	container
	destroyed bool

	Destroyed signal.Signal[*Section]
}

// NewSection creates an empty section.
func NewSection(name string) *Section {
	s := &Section{container: newContainer("section:" + name)}
	s.section = s
	s.actor.SetDelegate(s)
	return s
}

// IsOpen always reports true.
func (s *Section) IsOpen() bool { return true }

func (s *Section) IsDestroyed() bool { return s.destroyed }

func (s *Section) parentContainer() *container { return s.parent }

// Open is driven by the parent menu opening.
func (s *Section) Open() {
	s.updateSeparatorVisibility()
	s.OpenStateChanged.Emit(true)
}

// Close is driven by the parent menu closing.
func (s *Section) Close() {
	if s.active != nil {
		s.active.SetActive(false)
	}
	s.OpenStateChanged.Emit(false)
}

// Destroy destroys the section's items, detaches it and emits Destroyed.
func (s *Section) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.RemoveAll()
	for _, child := range s.ChildMenus() {
		s.RemoveChildMenu(child)
	}
	if s.parent != nil {
		s.parent.detach(s)
	}
	s.actor.Destroy()
	s.Destroyed.Emit(s)
}
