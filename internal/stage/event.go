package stage

import "fmt"

// EventType classifies an input event.
type EventType int

const (
	EventNone EventType = iota
	ButtonPress
	ButtonRelease
	Motion
	Enter
	Leave
	KeyPress
	KeyRelease
	Scroll
)

var eventTypeNames = map[EventType]string{
	EventNone:     "none",
	ButtonPress:   "button-press",
	ButtonRelease: "button-release",
	Motion:        "motion",
	Enter:         "enter",
	Leave:         "leave",
	KeyPress:      "key-press",
	KeyRelease:    "key-release",
	Scroll:        "scroll",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// IsKey reports whether the event originates from the keyboard.
func (t EventType) IsKey() bool {
	return t == KeyPress || t == KeyRelease
}

// IsPointer reports whether the event originates from the pointer.
func (t EventType) IsPointer() bool {
	switch t {
	case ButtonPress, ButtonRelease, Motion, Enter, Leave, Scroll:
		return true
	}
	return false
}

// Key names a keyboard key. Values follow Bubble Tea's key strings.
type Key string

const (
	KeyEscape    Key = "esc"
	KeyEnter     Key = "enter"
	KeySpace     Key = "space"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyTab       Key = "tab"
	KeyShiftTab  Key = "shift+tab"
	KeyHome      Key = "home"
	KeyEnd       Key = "end"
	KeyBackspace Key = "backspace"
)

// Event is a pointer or keyboard event routed through a Stage.
type Event struct {
	Type   EventType
	Target *Actor
	X, Y   int
	Button int
	Key    Key
	// Text carries the printable runes of a key press, if any.
	Text string
}

func (e Event) String() string {
	target := "<nil>"
	if e.Target != nil {
		target = e.Target.Name()
	}
	if e.Type.IsKey() {
		return fmt.Sprintf("%s %s on %s", e.Type, e.Key, target)
	}
	return fmt.Sprintf("%s (%d,%d) on %s", e.Type, e.X, e.Y, target)
}
