// Package grab implements the shell's exclusive input capture: a process-wide
// modal stack and the Arbiter the menu manager uses to hold it.
package grab

import (
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/stage"
)

// Modal is the process-wide modal-grab primitive.
type Modal interface {
	PushModal(region *stage.Actor) bool
	PopModal(region *stage.Actor)
}

type modalEntry struct {
	region     *stage.Actor
	savedFocus *stage.Actor
}

// ModalStack is the stage's modal primitive. Each push saves the key focus
// and takes the stage fullscreen; popping the top entry restores the saved
// focus, and popping the last entry returns the stage to normal input.
type ModalStack struct {
	stage   *stage.Stage
	entries []modalEntry
	// refuse makes PushModal fail, e.g. while another client holds the
	// pointer. Tests flip it through SetRefuse.
	refuse bool
}

// NewModalStack creates a modal stack bound to st.
func NewModalStack(st *stage.Stage) *ModalStack {
	return &ModalStack{stage: st}
}

// SetRefuse makes subsequent pushes fail.
func (m *ModalStack) SetRefuse(refuse bool) {
	m.refuse = refuse
}

// Depth returns the number of active modal regions.
func (m *ModalStack) Depth() int {
	return len(m.entries)
}

// PushModal pushes region. It reports false when the grab cannot be taken.
func (m *ModalStack) PushModal(region *stage.Actor) bool {
	if m.refuse {
		return false
	}
	m.entries = append(m.entries, modalEntry{region: region, savedFocus: m.stage.KeyFocus()})
	m.stage.SetInputMode(stage.InputFullscreen)
	events.Grab.ModalPush(regionName(region), len(m.entries))
	return true
}

// PopModal removes the most recent entry for region. Unknown regions are
// ignored.
func (m *ModalStack) PopModal(region *stage.Actor) {
	idx := -1
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].region == region {
			idx = i
			break
		}
	}
	if idx < 0 {
		events.Grab.ModalPopUnknown(regionName(region))
		return
	}
	entry := m.entries[idx]
	top := idx == len(m.entries)-1
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	if top {
		if focus := entry.savedFocus; focus == nil || !focus.IsDestroyed() {
			m.stage.SetKeyFocus(focus)
		}
	} else {
		// Entries above inherit the popped entry's saved focus.
		m.entries[idx].savedFocus = entry.savedFocus
	}
	if len(m.entries) == 0 {
		m.stage.SetInputMode(stage.InputNormal)
	}
	events.Grab.ModalPop(regionName(region), len(m.entries))
}

func regionName(region *stage.Actor) string {
	if region == nil {
		return "<nil>"
	}
	return region.Name()
}
