package grab

import (
	"testing"

	"github.com/atomicstack/shell-popup/internal/stage"
)

type countingModal struct {
	pushes, pops int
	refuse       bool
}

func (c *countingModal) PushModal(*stage.Actor) bool {
	if c.refuse {
		return false
	}
	c.pushes++
	return true
}

func (c *countingModal) PopModal(*stage.Actor) { c.pops++ }

func TestArbiterIsIdempotent(t *testing.T) {
	modal := &countingModal{}
	a := NewArbiter(modal, stage.NewActor("panel"))
	if !a.Acquire() || !a.Acquire() {
		t.Fatalf("expected acquire to succeed")
	}
	if modal.pushes != 1 {
		t.Fatalf("expected a single push, got %d", modal.pushes)
	}
	a.Release()
	a.Release()
	if modal.pops != 1 {
		t.Fatalf("expected a single pop, got %d", modal.pops)
	}
	if a.Held() {
		t.Fatalf("expected grab released")
	}
}

func TestArbiterRefused(t *testing.T) {
	modal := &countingModal{refuse: true}
	a := NewArbiter(modal, nil)
	if a.Acquire() {
		t.Fatalf("expected refused acquire")
	}
	a.Release()
	if modal.pops != 0 {
		t.Fatalf("expected no pop without a push, got %d", modal.pops)
	}
	if NewArbiter(nil, nil).Acquire() {
		t.Fatalf("expected acquire without a modal to fail")
	}
}

func TestModalStackRestoresFocusAndInputMode(t *testing.T) {
	st := stage.New()
	button := stage.NewActor("button")
	menu := stage.NewActor("menu")
	st.Root().AddChild(button)
	st.Root().AddChild(menu)
	button.GrabKeyFocus()

	modal := NewModalStack(st)
	region := stage.NewActor("panel")
	if !modal.PushModal(region) {
		t.Fatalf("expected push to succeed")
	}
	if st.InputMode() != stage.InputFullscreen {
		t.Fatalf("expected fullscreen input, got %v", st.InputMode())
	}
	menu.GrabKeyFocus()
	modal.PopModal(region)
	if st.KeyFocus() != button {
		t.Fatalf("expected focus restored to button")
	}
	if st.InputMode() != stage.InputNormal {
		t.Fatalf("expected normal input, got %v", st.InputMode())
	}
	if modal.Depth() != 0 {
		t.Fatalf("expected empty stack, got %d", modal.Depth())
	}
}

func TestModalStackIgnoresUnknownPopAndRefusal(t *testing.T) {
	st := stage.New()
	modal := NewModalStack(st)
	modal.PopModal(stage.NewActor("stranger"))
	modal.SetRefuse(true)
	if modal.PushModal(nil) {
		t.Fatalf("expected refused push")
	}
	if modal.Depth() != 0 {
		t.Fatalf("expected nothing pushed, got %d", modal.Depth())
	}
}

func TestModalStackOutOfOrderPopKeepsOuterFocus(t *testing.T) {
	st := stage.New()
	first := stage.NewActor("first")
	st.Root().AddChild(first)
	first.GrabKeyFocus()
	modal := NewModalStack(st)
	outer := stage.NewActor("outer")
	inner := stage.NewActor("inner")
	modal.PushModal(outer)
	st.SetKeyFocus(nil)
	modal.PushModal(inner)

	modal.PopModal(outer)
	if modal.Depth() != 1 {
		t.Fatalf("expected inner entry left, got %d", modal.Depth())
	}
	if st.InputMode() != stage.InputFullscreen {
		t.Fatalf("expected stage to stay fullscreen while a region is pushed")
	}
	modal.PopModal(inner)
	if st.KeyFocus() != first {
		t.Fatalf("expected focus restored to the original holder")
	}
}
