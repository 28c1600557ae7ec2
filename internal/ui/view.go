package ui

import (
	"strings"
	"time"

	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/shell"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	separatorRune = "─"
	thumbRune     = "█"
	trackRune     = "│"
)

type footerLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries ANSI styling
}

// View implements tea.Model.
func (m *Model) View() string {
	l := m.layout()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderBar(l))

	popup := renderPopup(l.popup)
	body := m.height - barRows - len(l.footer)
	for y := barRows; y < barRows+body; y++ {
		line := ""
		if p := l.popup; p != nil && y >= p.box.y && y-p.box.y < len(popup) {
			line = strings.Repeat(" ", p.box.x) + popup[y-p.box.y]
		}
		lines = append(lines, line)
	}
	for _, f := range l.footer {
		lines = append(lines, renderFooter(f, m.width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBar(l *screenLayout) string {
	var b strings.Builder
	x := 0
	for _, box := range l.buttons {
		if box.area.x < x {
			continue
		}
		if gap := box.area.x - x; gap > 0 {
			b.WriteString(styles.Panel.Render(strings.Repeat(" ", gap)))
		}
		b.WriteString(buttonStyle(box.button).Render(box.text))
		x = box.area.x + box.area.w
	}
	if gap := m.width - x; gap > 0 {
		b.WriteString(styles.Panel.Render(strings.Repeat(" ", gap)))
	}
	return ansi.Truncate(b.String(), m.width, "")
}

func buttonStyle(b *shell.Button) *lipgloss.Style {
	switch {
	case b.IsOpen():
		return styles.ButtonOpen
	case b.HasKeyFocus():
		return styles.ButtonFocused
	default:
		return styles.Button
	}
}

// renderPopup draws the bordered popup box, one string per screen row.
func renderPopup(p *popupLayout) []string {
	if p == nil {
		return nil
	}
	scrollable := !p.scrollbar.empty()
	rowW := p.innerW
	if scrollable {
		rowW--
	}
	thumbPos, thumbLen := p.thumb()
	inner := make([]string, 0, p.end-p.start)
	for i := p.start; i < p.end; i++ {
		line := renderRow(p.rows[i], rowW)
		if scrollable {
			rel := i - p.start
			if rel >= thumbPos && rel < thumbPos+thumbLen {
				line += styles.ScrollbarThumb.Render(thumbRune)
			} else {
				line += styles.Scrollbar.Render(trackRune)
			}
		}
		inner = append(inner, line)
	}
	return strings.Split(styles.Popup.Render(strings.Join(inner, "\n")), "\n")
}

func renderRow(row popupRow, width int) string {
	item := row.item
	if item.Kind() == menu.KindSeparator {
		text := strings.Repeat(separatorRune, width)
		if label := item.Label(); label != "" {
			prefix := separatorRune + separatorRune + " " + label + " "
			text = prefix + strings.Repeat(separatorRune, max(0, width-ansi.StringWidth(prefix)))
		}
		return styles.Separator.Render(ansi.Truncate(text, width, ""))
	}
	style := styles.Item
	switch {
	case item.Active():
		style = styles.SelectedItem
	case !item.Sensitive():
		style = styles.InactiveItem
	}
	return style.Width(width).Render(truncateText(row.text, width))
}

func (m *Model) footerLines() []footerLine {
	var lines []footerLine
	if m.errMsg != "" {
		lines = append(lines, footerLine{text: "Error: " + m.errMsg, style: styles.Error})
	}
	if query := m.currentQuery(); query != "" {
		lines = append(lines, footerLine{text: "search: " + query, style: styles.TypeAhead})
	} else if info := m.currentInfo(); info != "" {
		lines = append(lines, footerLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		m.help.Width = m.width
		for _, text := range strings.Split(m.help.View(m.keys), "\n") {
			lines = append(lines, footerLine{text: text, raw: true})
		}
	}
	return lines
}

func renderFooter(f footerLine, width int) string {
	if f.raw {
		return ansi.Truncate(f.text, width, "")
	}
	text := truncateText(f.text, width)
	if f.style != nil {
		return f.style.Render(text)
	}
	return text
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
