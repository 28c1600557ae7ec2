package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/shell"
	"github.com/atomicstack/shell-popup/internal/signal"
	"github.com/atomicstack/shell-popup/internal/stage"
	"github.com/atomicstack/shell-popup/internal/theme"
	"github.com/atomicstack/shell-popup/internal/ui/command"
	uistate "github.com/atomicstack/shell-popup/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// openMenuMsg opens a menu by registry path once the program has started.
type openMenuMsg struct {
	id string
}

// Model implements the Bubble Tea model for the shell panel and its popups.
type Model struct {
	panel       *shell.Panel
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	openPath    string
	errMsg      string
	infoMsg     string
	infoExpire  time.Time

	keys    KeyMap
	help    help.Model
	bus     *command.Bus
	pending []shell.Action

	surfaces   map[*menu.Menu]*popupSurface
	levels     map[*menu.Menu]*uistate.Level
	scrollbars map[*menu.Menu]*stage.Actor
	drag       *scrollDrag
	typeAhead  typeAhead
	reg        signal.Registration

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the panel and wraps it in a Bubble Tea model. A width or
// height of zero follows the terminal size. openPath, when set, names the
// menu to open at start, e.g. "user:status".
func NewModel(width, height int, showFooter, verbose bool, opts shell.Options, openPath string) *Model {
	m := &Model{
		panel:      shell.New(stage.New(), opts),
		width:      defaultWidth,
		height:     defaultHeight,
		showFooter: showFooter,
		verbose:    verbose,
		openPath:   openPath,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		bus:        command.New(),
		surfaces:   make(map[*menu.Menu]*popupSurface),
		levels:     make(map[*menu.Menu]*uistate.Level),
		scrollbars: make(map[*menu.Menu]*stage.Actor),
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.panel.OnAction(m.queueAction)
	m.ensureSurfaces()
	m.registerHandlers()
	return m
}

// Panel exposes the panel the model drives.
func (m *Model) Panel() *shell.Panel { return m.panel }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.openPath == "" {
		return nil
	}
	id := m.openPath
	return func() tea.Msg { return openMenuMsg{id: id} }
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Close tears the panel down, releasing any grab still held.
func (m *Model) Close() {
	m.endDrag()
	m.panel.Destroy()
	m.reg.Dispose()
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(openMenuMsg{}):       m.handleOpenMenuMsg,
		reflect.TypeOf(actionResultMsg{}):   m.handleActionResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.flushActions()...)
	m.ensureSurfaces()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) handleOpenMenuMsg(msg tea.Msg) tea.Cmd {
	open, ok := msg.(openMenuMsg)
	if !ok {
		return nil
	}
	if !m.panel.Open(open.id) {
		m.errMsg = fmt.Sprintf("unknown menu %q", open.id)
		return nil
	}
	m.errMsg = ""
	return nil
}

func (m *Model) buttonName(top *menu.Menu) string {
	for _, b := range m.panel.Buttons() {
		if b.Menu() == top {
			return b.Name()
		}
	}
	return ""
}
