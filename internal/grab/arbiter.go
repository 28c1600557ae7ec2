package grab

import (
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// Arbiter holds at most one modal grab on behalf of its owner. Acquire and
// Release are idempotent and always reach the Modal in pairs.
type Arbiter struct {
	modal  Modal
	region *stage.Actor
	held   bool
}

// NewArbiter creates an arbiter grabbing region through modal.
func NewArbiter(modal Modal, region *stage.Actor) *Arbiter {
	return &Arbiter{modal: modal, region: region}
}

// Held reports whether the grab is currently held.
func (a *Arbiter) Held() bool {
	return a.held
}

// Region returns the actor the grab is taken for.
func (a *Arbiter) Region() *stage.Actor {
	return a.region
}

// Acquire takes the grab if not already held and reports whether it is held
// afterwards.
func (a *Arbiter) Acquire() bool {
	if a.held {
		return true
	}
	if a.modal == nil || !a.modal.PushModal(a.region) {
		events.Grab.Refused(regionName(a.region))
		return false
	}
	a.held = true
	return true
}

// Release drops the grab if held.
func (a *Arbiter) Release() {
	if !a.held {
		return
	}
	a.held = false
	a.modal.PopModal(a.region)
	events.Grab.Release(regionName(a.region))
}
