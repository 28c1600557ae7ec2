package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ id string }

func TestExecuteRunsHandler(t *testing.T) {
	bus := New()
	cmd := bus.Execute(Request{ID: "user:lock", Label: "Lock", Handler: func() tea.Msg {
		return doneMsg{id: "user:lock"}
	}})
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.id != "user:lock" {
		t.Fatalf("expected handler result, got %#v", msg)
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	cmd := New().Execute(Request{ID: "places:open", Label: "Home"})
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message without a handler, got %#v", msg)
	}
	cmd = New().Execute(Request{ID: "places:open", Label: "Home", Handler: func() tea.Msg { return nil }})
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message from a no-op handler, got %#v", msg)
	}
}
