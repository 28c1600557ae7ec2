package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Panel          *lipgloss.Style
	Button         *lipgloss.Style
	ButtonOpen     *lipgloss.Style
	ButtonFocused  *lipgloss.Style
	Popup          *lipgloss.Style
	Item           *lipgloss.Style
	SelectedItem   *lipgloss.Style
	InactiveItem   *lipgloss.Style
	Separator      *lipgloss.Style
	Scrollbar      *lipgloss.Style
	ScrollbarThumb *lipgloss.Style
	TypeAhead      *lipgloss.Style
	Info           *lipgloss.Style
	Error          *lipgloss.Style
}

var defaultStyles = Styles{
	Panel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")),
	),
	ButtonOpen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	ButtonFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Underline(true),
	),
	Popup: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	InactiveItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Scrollbar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	ScrollbarThumb: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	TypeAhead: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
