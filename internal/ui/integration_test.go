package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/shell"
	"github.com/atomicstack/shell-popup/internal/stage"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestHarness(t *testing.T, width, height int, open string) *Harness {
	t.Helper()
	m := NewModel(width, height, false, true, shell.Options{UserName: "alice"}, open)
	h := NewHarness(m)
	h.Start()
	return h
}

func findItem(m *menu.Menu, label string) *menu.Item {
	for _, item := range m.Items() {
		if item.Label() == label {
			return item
		}
		if sub := item.Submenu(); sub != nil {
			if found := findItem(sub, label); found != nil {
				return found
			}
		}
	}
	return nil
}

func popupMenu(h *Harness, name string) *menu.Menu {
	return h.Model().Panel().Button(name).Menu()
}

func clickButton(t *testing.T, h *Harness, name string) {
	t.Helper()
	area, ok := h.Model().layout().buttonArea(name)
	if !ok {
		t.Fatalf("expected button %s in layout", name)
	}
	h.Click(area.x+1, area.y)
}

func clickItem(t *testing.T, h *Harness, item *menu.Item) {
	t.Helper()
	l := h.Model().layout()
	y, ok := l.rowFor(item)
	if !ok {
		t.Fatalf("expected %s to be on screen", item.Label())
	}
	h.Click(l.popup.box.x+2, y)
}

func TestClickButtonOpensPopup(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	clickButton(t, h, shell.MenuPlaces)

	places := popupMenu(h, shell.MenuPlaces)
	if !places.IsOpen() {
		t.Fatalf("expected places to open on click")
	}
	if h.Model().Panel().Manager().ActiveMenu() != places {
		t.Fatalf("expected places to be the active menu")
	}
	view := h.View()
	if !strings.Contains(view, "Home Folder") || !strings.Contains(view, "Browse Network") {
		t.Fatalf("expected popup rows in view, got:\n%s", view)
	}

	clickButton(t, h, shell.MenuPlaces)
	if places.IsOpen() || h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected a second click to close the popup and release the grab")
	}
}

func TestClickItemRunsActionAndCloses(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	clickButton(t, h, shell.MenuPlaces)
	places := popupMenu(h, shell.MenuPlaces)
	clickItem(t, h, findItem(places, "Downloads"))

	if places.IsOpen() {
		t.Fatalf("expected activation to close the popup")
	}
	if h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected the grab to be released")
	}
	if info := h.Model().currentInfo(); info != "Downloads" {
		t.Fatalf("expected action info, got %q", info)
	}
	if h.Quit() {
		t.Fatalf("expected a place action not to quit")
	}
}

func TestClickDesktopDismisses(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	clickButton(t, h, shell.MenuUser)
	user := popupMenu(h, shell.MenuUser)
	if !user.IsOpen() {
		t.Fatalf("expected user menu open")
	}
	h.Click(40, 20)
	if user.IsOpen() || h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected a click on the desktop to dismiss the popup")
	}
	if len(h.Model().pending) != 0 {
		t.Fatalf("expected no actions from a dismissal, got %#v", h.Model().pending)
	}
}

func TestHoverSwitchesBetweenPopups(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	clickButton(t, h, shell.MenuPlaces)
	area, _ := h.Model().layout().buttonArea(shell.MenuNetwork)
	h.Move(area.x+1, area.y)

	places := popupMenu(h, shell.MenuPlaces)
	network := popupMenu(h, shell.MenuNetwork)
	if places.IsOpen() || !network.IsOpen() {
		t.Fatalf("expected hovering the network button to switch popups")
	}
	if !h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected the grab to be kept across the switch")
	}
	if !strings.Contains(h.View(), "Network Settings") {
		t.Fatalf("expected network popup in view")
	}
}

func TestHoverHighlightsItem(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	clickButton(t, h, shell.MenuPlaces)
	places := popupMenu(h, shell.MenuPlaces)
	desktop := findItem(places, "Desktop")
	l := h.Model().layout()
	y, _ := l.rowFor(desktop)
	h.Move(l.popup.box.x+3, y)
	if !desktop.Active() {
		t.Fatalf("expected hovered item to be highlighted")
	}
	if places.ActiveItem() != desktop {
		t.Fatalf("expected menu to track the hovered item")
	}
}

func TestKeyboardNavigationFromPanel(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	h.Key("f10")
	places := popupMenu(h, shell.MenuPlaces)
	if !places.IsOpen() {
		t.Fatalf("expected f10 to open the first popup")
	}
	if active := places.ActiveItem(); active == nil || active.Label() != "Home Folder" {
		t.Fatalf("expected first item highlighted, got %v", active)
	}
	h.Key("down")
	if active := places.ActiveItem(); active == nil || active.Label() != "Desktop" {
		t.Fatalf("expected down to move to Desktop, got %v", active)
	}
	h.Key("enter")
	if places.IsOpen() {
		t.Fatalf("expected enter to activate and close")
	}
	if info := h.Model().currentInfo(); info != "Desktop" {
		t.Fatalf("expected Desktop action info, got %q", info)
	}
	st := h.Model().Panel().Stage()
	if !h.Model().Panel().Button(shell.MenuPlaces).HasKeyFocus() {
		t.Fatalf("expected focus back on the places button")
	}
	if st.InputMode() != stage.InputFocused {
		t.Fatalf("expected focused input mode, got %s", st.InputMode())
	}
	h.Key("esc")
	if st.KeyFocus() != nil || st.InputMode() != stage.InputNormal {
		t.Fatalf("expected esc on the panel to drop keyboard navigation")
	}
}

func TestRightMovesToNeighbouringPopup(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	h.Key("f10")
	h.Key("right")
	if !popupMenu(h, shell.MenuNetwork).IsOpen() || popupMenu(h, shell.MenuPlaces).IsOpen() {
		t.Fatalf("expected right to open the network popup instead")
	}
	h.Key("f10")
	if h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected f10 to dismiss the open chain")
	}
}

func TestTypeAheadHighlightsMatch(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	h.Key("f10")
	places := popupMenu(h, shell.MenuPlaces)

	h.Key("d")
	if active := places.ActiveItem(); active == nil || active.Label() != "Desktop" {
		t.Fatalf("expected d to pick Desktop, got %v", active)
	}
	h.Key("ow")
	if active := places.ActiveItem(); active == nil || active.Label() != "Downloads" {
		t.Fatalf("expected dow to pick Downloads, got %v", active)
	}
	if !strings.Contains(h.View(), "search: dow") {
		t.Fatalf("expected query in footer, got:\n%s", h.View())
	}
	h.Key("backspace")
	if active := places.ActiveItem(); active == nil || active.Label() != "Documents" {
		t.Fatalf("expected do to pick Documents, got %v", active)
	}

	h.Model().typeAhead.expire = time.Now().Add(-time.Second)
	if query := h.Model().currentQuery(); query != "" {
		t.Fatalf("expected expired query to be dropped, got %q", query)
	}
	if !places.IsOpen() {
		t.Fatalf("expected type-ahead to keep the menu open")
	}
}

func TestOpenPathAtStart(t *testing.T) {
	h := newTestHarness(t, 80, 24, "user:status")
	user := popupMenu(h, shell.MenuUser)
	status := findItem(user, "Status").Submenu()
	if !user.IsOpen() || !status.IsOpen() {
		t.Fatalf("expected user menu and status submenu open")
	}
	if h.Model().Panel().Manager().ActiveMenu() != status {
		t.Fatalf("expected status submenu to be active")
	}
	view := h.View()
	if !strings.Contains(view, "Unavailable") || !strings.Contains(view, submenuOpen) {
		t.Fatalf("expected expanded status submenu in view, got:\n%s", view)
	}
	h.Key("down")
	h.Key("enter")
	if user.IsOpen() || status.IsOpen() {
		t.Fatalf("expected choosing a presence to close the chain")
	}
	if got := findItem(user, "Status").Status(); got != shell.StatusBusy {
		t.Fatalf("expected presence Busy, got %q", got)
	}
}

func TestOpenUnknownPathReportsError(t *testing.T) {
	h := newTestHarness(t, 80, 24, "user:nope")
	if h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected nothing to open")
	}
	if !strings.Contains(h.View(), `Error: unknown menu "user:nope"`) {
		t.Fatalf("expected error in footer, got:\n%s", h.View())
	}
}

func TestQuitActionStopsProgram(t *testing.T) {
	h := newTestHarness(t, 80, 24, "user")
	h.Key("log")
	if active := popupMenu(h, shell.MenuUser).ActiveItem(); active == nil || active.Label() != "Log Out" {
		t.Fatalf("expected type-ahead to reach Log Out, got %v", active)
	}
	h.Key("enter")
	if !h.Quit() {
		t.Fatalf("expected log out to quit")
	}
}

func TestQuitKeys(t *testing.T) {
	h := newTestHarness(t, 80, 24, "")
	h.Key("f10")
	h.Key("q")
	if h.Quit() {
		t.Fatalf("expected q to be typed into an open menu")
	}
	h.Key("ctrl+c")
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}

	h = newTestHarness(t, 80, 24, "")
	h.Key("q")
	if !h.Quit() {
		t.Fatalf("expected q to quit when nothing is open")
	}
}

func TestWheelScrollsTallPopup(t *testing.T) {
	h := newTestHarness(t, 80, 8, "")
	clickButton(t, h, shell.MenuPlaces)
	places := popupMenu(h, shell.MenuPlaces)
	l := h.Model().layout()
	if l.popup == nil || l.popup.scrollbar.empty() {
		t.Fatalf("expected a scrollable popup")
	}
	h.Send(tea.MouseMsg{X: l.popup.box.x + 2, Y: l.popup.box.y + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if offset := h.Model().levels[places].ViewportOffset; offset != 1 {
		t.Fatalf("expected wheel to scroll one row, got %d", offset)
	}
	if !places.IsOpen() {
		t.Fatalf("expected scrolling to keep the popup open")
	}
	h.Send(tea.MouseMsg{X: l.popup.box.x + 2, Y: l.popup.box.y + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if offset := h.Model().levels[places].ViewportOffset; offset != 0 {
		t.Fatalf("expected wheel up to scroll back, got %d", offset)
	}
}

func TestScrollbarDragPassesEvents(t *testing.T) {
	h := newTestHarness(t, 80, 8, "places:usb-stick")
	places := popupMenu(h, shell.MenuPlaces)
	usb := findItem(places, "USB Stick").Submenu()
	if !usb.IsOpen() || !usb.Scrollable() {
		t.Fatalf("expected usb submenu open and scrollable")
	}
	l := h.Model().layout()
	bar := l.popup.scrollbar
	if bar.empty() {
		t.Fatalf("expected a scrollbar")
	}
	if l.popup.level.ViewportOffset == 0 {
		t.Fatalf("expected the viewport to follow the focused submenu item")
	}

	h.Send(tea.MouseMsg{X: bar.x, Y: bar.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !usb.PassEvents() {
		t.Fatalf("expected drag to pass events through the active menu")
	}
	if offset := h.Model().levels[places].ViewportOffset; offset != 0 {
		t.Fatalf("expected press at the top of the track to scroll up, got %d", offset)
	}
	h.Send(tea.MouseMsg{X: bar.x, Y: bar.y + bar.h - 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	level := h.Model().levels[places]
	if level.ViewportOffset != level.MaxOffset(bar.h) {
		t.Fatalf("expected drag to the bottom to reach the last page, got %d", level.ViewportOffset)
	}
	h.Send(tea.MouseMsg{X: 60, Y: 6, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	h.Send(tea.MouseMsg{X: 60, Y: 6, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if !usb.IsOpen() || !h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected releasing a drag off the popup to keep it open")
	}
	if usb.PassEvents() || h.Model().drag != nil {
		t.Fatalf("expected drag state cleared on release")
	}

	h.Click(60, 6)
	if usb.IsOpen() || places.IsOpen() {
		t.Fatalf("expected a plain click outside to dismiss the chain")
	}
}

func TestCloseReleasesGrab(t *testing.T) {
	h := newTestHarness(t, 80, 24, "network")
	if !h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected network popup to hold the grab")
	}
	h.Model().Close()
	if h.Model().Panel().Manager().Grabbed() {
		t.Fatalf("expected close to release the grab")
	}
}
