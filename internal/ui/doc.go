// Package ui contains the Bubble Tea program that draws the shell panel and
// its popup menus in a terminal. The Model owns no menu state of its own: it
// translates terminal input into stage events, lets the menu core decide what
// opens and closes, and renders whatever is open afterwards.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, routed through a
//     typed handler registry so each tea.Msg is handled by a focused function.
//   - Key presses (keys.go) are matched against the KeyMap first; anything the
//     model does not claim is dispatched to the stage key focus, except
//     printable runes while a menu is active, which feed type-ahead search.
//   - Mouse messages (mouse.go) are hit-tested against the last layout and
//     become pointer motion, button and scroll events on the actor underneath.
//     A scrollbar drag marks the active menu as passing events through until
//     the button is released.
//   - Actions raised by menu items are queued while the stage handles an
//     event, then run through the internal/ui/command bus once the event has
//     been fully dispatched.
//
// Rendering:
//   - layout.go computes a pure description of the frame: the panel bar, the
//     open popup with any expanded submenus nested below their source item,
//     and the hit boxes used for pointer picking.
//   - Each menu's popupSurface records show/hide transitions and answers
//     whether a submenu would overflow the screen. Per-popup viewport state
//     lives in internal/ui/state.Level.
package ui
