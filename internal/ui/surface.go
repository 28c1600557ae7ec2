package ui

import (
	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
	uistate "github.com/atomicstack/shell-popup/internal/ui/state"
)

// popupSurface draws a menu into the terminal frame. The frame is rebuilt on
// every View, so Show and Hide only record what the next frame needs.
type popupSurface struct {
	model *Model
	menu  *menu.Menu
	shown bool
	anim  menu.Animation
}

func (s *popupSurface) Show(anim menu.Animation) {
	s.shown = true
	s.anim = anim
	events.UI.Surface(s.menu.Name(), "show", anim.String())
}

func (s *popupSurface) Hide(anim menu.Animation) {
	s.shown = false
	s.anim = anim
	if !s.menu.IsSubmenu() {
		delete(s.model.levels, s.menu)
	}
	events.UI.Surface(s.menu.Name(), "hide", anim.String())
}

// NeedsScroll reports whether expanding the menu inside its popup would push
// rows past the bottom of the screen.
func (s *popupSurface) NeedsScroll() bool {
	if !s.menu.IsSubmenu() {
		return len(flattenRows(s.menu, 0)) > s.model.maxVisibleRows()
	}
	top := s.menu.TopMenu()
	rows := len(flattenRows(top, 0))
	for _, item := range s.menu.Items() {
		if item.Actor().Visible() {
			rows++
		}
	}
	return rows > s.model.maxVisibleRows()
}

// ensureSurfaces attaches a surface to every live menu and a scrollbar to
// every popup that lacks one.
func (m *Model) ensureSurfaces() {
	reg := m.panel.Registry()
	for _, id := range reg.IDs() {
		node, ok := reg.Find(id)
		if !ok || node.Menu == nil {
			continue
		}
		mn := node.Menu
		if _, ok := m.surfaces[mn]; ok {
			continue
		}
		surface := &popupSurface{model: m, menu: mn}
		mn.SetSurface(surface)
		m.surfaces[mn] = surface
		signal.On(&m.reg, &mn.Destroyed, m.forgetMenu)
	}
}

func (m *Model) forgetMenu(mn *menu.Menu) {
	delete(m.surfaces, mn)
	delete(m.levels, mn)
	delete(m.scrollbars, mn)
	if m.drag != nil && m.drag.menu == mn {
		m.drag = nil
	}
}

func (m *Model) levelFor(mn *menu.Menu) *uistate.Level {
	if level, ok := m.levels[mn]; ok {
		return level
	}
	level := uistate.NewLevel(mn.Name(), mn.Name(), nil)
	m.levels[mn] = level
	return level
}

// scrollbarFor returns the popup's scrollbar actor. It lives inside the menu
// actor so the manager counts it as part of the menu.
func (m *Model) scrollbarFor(mn *menu.Menu) *stage.Actor {
	if bar, ok := m.scrollbars[mn]; ok {
		return bar
	}
	bar := stage.NewActor("scrollbar:" + mn.Name())
	bar.SetReactive(true)
	signal.OnHook(&m.reg, &bar.Events, func(ev stage.Event) bool {
		return ev.Target == bar
	})
	mn.Actor().AddChild(bar)
	m.scrollbars[mn] = bar
	return bar
}
