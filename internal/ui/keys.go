package ui

import (
	"time"

	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/stage"
	uistate "github.com/atomicstack/shell-popup/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// typeAheadTimeout is how long a type-ahead query survives without input.
const typeAheadTimeout = 1500 * time.Millisecond

// KeyMap defines the key bindings handled by the model itself. Everything
// else is routed to the stage.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// Global
	Panel key.Binding
	Help  key.Binding
	Close key.Binding
	Quit  key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Panel, k.Select, k.Back, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Panel, k.Help, k.Close, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "activate"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Panel: key.NewBinding(
			key.WithKeys("f10"),
			key.WithHelp("f10", "panel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// typeAhead is the search buffer of the active menu.
type typeAhead struct {
	menu   *menu.Menu
	level  *uistate.Level
	seq    int
	expire time.Time
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.clearInfo()
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Panel):
		m.togglePanel()
		return nil
	}

	st := m.panel.Stage()
	if !m.panel.Manager().Grabbed() && st.KeyFocus() == nil {
		switch {
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return nil
		case key.Matches(keyMsg, m.keys.Close):
			return tea.Quit
		}
	}
	if m.handleTypeAhead(keyMsg) {
		return nil
	}
	focus := st.KeyFocus()
	handled := st.Dispatch(keyEvent(keyMsg))
	events.UI.Key(keyMsg.String(), actorName(focus), handled)
	return nil
}

// togglePanel opens the first popup from the keyboard, or dismisses the open
// chain.
func (m *Model) togglePanel() {
	if m.panel.Manager().Grabbed() {
		m.panel.CloseAll()
		return
	}
	buttons := m.panel.Buttons()
	if len(buttons) == 0 {
		return
	}
	m.panel.Open(buttons[0].Name())
}

func keyEvent(msg tea.KeyMsg) stage.Event {
	ev := stage.Event{Type: stage.KeyPress}
	switch msg.Type {
	case tea.KeySpace:
		ev.Key = stage.KeySpace
		ev.Text = " "
	case tea.KeyRunes:
		ev.Text = string(msg.Runes)
	default:
		ev.Key = stage.Key(msg.String())
	}
	return ev
}

// handleTypeAhead moves the highlight of the active menu to the item that
// best matches what has been typed so far.
func (m *Model) handleTypeAhead(msg tea.KeyMsg) bool {
	active := m.panel.Manager().ActiveMenu()
	if active == nil {
		return false
	}
	var text string
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return false
		}
		text = string(msg.Runes)
	case tea.KeyBackspace:
		if m.currentQuery() == "" {
			return false
		}
	default:
		return false
	}

	rows := flattenRows(active, 0)
	items := make([]*menu.Item, 0, len(rows))
	for _, row := range rows {
		if row.depth == 0 {
			items = append(items, row.item)
		}
	}
	level := m.typeAheadLevel(active)
	level.UpdateRows(levelRows(rowsOf(items)))

	var idx int
	if text != "" {
		idx = level.AppendQuery(text)
	} else {
		idx = level.DeleteQueryRune()
	}
	m.typeAhead.seq = level.QuerySeq
	m.typeAhead.expire = time.Now().Add(typeAheadTimeout)
	if idx >= 0 && idx < len(items) {
		items[idx].SetActive(true)
	}
	events.UI.TypeAhead(active.Name(), level.Query, idx)
	return true
}

func (m *Model) typeAheadLevel(active *menu.Menu) *uistate.Level {
	if m.typeAhead.menu != active || m.typeAhead.level == nil {
		m.typeAhead = typeAhead{menu: active, level: uistate.NewLevel(active.Name(), active.Name(), nil)}
	}
	m.currentQuery()
	return m.typeAhead.level
}

// currentQuery returns the live type-ahead query, dropping it once it has
// expired or its menu is no longer active.
func (m *Model) currentQuery() string {
	ta := &m.typeAhead
	if ta.level == nil {
		return ""
	}
	if ta.menu != m.panel.Manager().ActiveMenu() {
		*ta = typeAhead{}
		return ""
	}
	if ta.level.Query != "" && !ta.expire.IsZero() && time.Now().After(ta.expire) {
		ta.level.ResetQuery(ta.seq)
	}
	return ta.level.Query
}

func rowsOf(items []*menu.Item) []popupRow {
	rows := make([]popupRow, len(items))
	for i, item := range items {
		rows[i] = popupRow{item: item}
	}
	return rows
}

func actorName(a *stage.Actor) string {
	if a == nil {
		return "<nil>"
	}
	return a.Name()
}
