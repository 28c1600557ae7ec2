package ui

import (
	"fmt"

	"github.com/atomicstack/shell-popup/internal/logging/events"
	"github.com/atomicstack/shell-popup/internal/shell"
	"github.com/atomicstack/shell-popup/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// actionResultMsg reports a panel action back to the model once the command
// bus has run it.
type actionResultMsg struct {
	action shell.Action
}

// queueAction collects actions raised while the stage handles an event. They
// run once the event has been fully dispatched.
func (m *Model) queueAction(a shell.Action) {
	m.pending = append(m.pending, a)
}

func (m *Model) flushActions() []tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, a := range m.pending {
		action := a
		cmds = append(cmds, m.bus.Execute(command.Request{
			ID:    action.Menu + ":" + action.ID,
			Label: action.Label,
			Handler: func() tea.Msg {
				return actionResultMsg{action: action}
			},
		}))
	}
	m.pending = nil
	return cmds
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResultMsg)
	if !ok {
		return nil
	}
	info := actionInfo(result.action)
	events.Action.Success(info)
	if result.action.Quit {
		m.forceClearInfo()
		return tea.Quit
	}
	if m.verbose {
		m.setInfo(info)
	}
	return nil
}

func actionInfo(a shell.Action) string {
	if a.Switch {
		state := "off"
		if a.On {
			state = "on"
		}
		return fmt.Sprintf("%s %s", a.Label, state)
	}
	switch a.ID {
	case "connect":
		return fmt.Sprintf("Connected to %s", a.Label)
	case "presence":
		return fmt.Sprintf("Status set to %s", a.Label)
	case "device:eject":
		return fmt.Sprintf("Ejected %s", a.Label)
	}
	return a.Label
}
