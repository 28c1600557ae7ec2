package ui

import (
	"strings"

	"github.com/atomicstack/shell-popup/internal/format/table"
	"github.com/atomicstack/shell-popup/internal/menu"
	"github.com/atomicstack/shell-popup/internal/shell"
	"github.com/atomicstack/shell-popup/internal/stage"
	uistate "github.com/atomicstack/shell-popup/internal/ui/state"
	"github.com/charmbracelet/x/ansi"
)

const (
	barRows        = 1
	popupBorder    = 1
	minPopupWidth  = 18
	depthIndent    = "  "
	submenuClosed  = "▸"
	submenuOpen    = "▾"
	switchOnLabel  = "[on]"
	switchOffLabel = "[off]"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

type hitBox struct {
	area  rect
	actor *stage.Actor
}

type buttonBox struct {
	button *shell.Button
	area   rect
	text   string
}

// popupRow is one line of a popup: an item of the popup itself or of an
// expanded submenu nested below its source item.
type popupRow struct {
	item  *menu.Item
	depth int
	text  string
}

type popupLayout struct {
	menu      *menu.Menu
	level     *uistate.Level
	box       rect
	rows      []popupRow
	start     int
	end       int
	innerW    int
	scrollbar rect
}

type screenLayout struct {
	width   int
	height  int
	buttons []buttonBox
	popup   *popupLayout
	hits    []hitBox
	footer  []footerLine
}

// hitTest returns the reactive actor drawn at x,y. Anything not covered by
// the bar or a popup is desktop.
func (l *screenLayout) hitTest(x, y int, desktop *stage.Actor) *stage.Actor {
	for i := len(l.hits) - 1; i >= 0; i-- {
		if l.hits[i].area.contains(x, y) {
			return pickable(l.hits[i].actor)
		}
	}
	return desktop
}

func (l *screenLayout) buttonArea(name string) (rect, bool) {
	for _, b := range l.buttons {
		if b.button.Name() == name {
			return b.area, true
		}
	}
	return rect{}, false
}

// rowFor returns the screen row of item, if it is inside the viewport.
func (l *screenLayout) rowFor(item *menu.Item) (int, bool) {
	if l.popup == nil {
		return 0, false
	}
	for i := l.popup.start; i < l.popup.end; i++ {
		if l.popup.rows[i].item == item {
			return l.popup.box.y + popupBorder + i - l.popup.start, true
		}
	}
	return 0, false
}

// pickable walks up to the nearest reactive actor, the way a stage pick skips
// actors that do not take input.
func pickable(a *stage.Actor) *stage.Actor {
	for cur := a; cur != nil; cur = cur.Parent() {
		if cur.Reactive() {
			return cur
		}
	}
	return a
}

// flattenRows lists the visible items of m with open submenus expanded in
// place below their source item.
func flattenRows(m *menu.Menu, depth int) []popupRow {
	var rows []popupRow
	add := func(item *menu.Item) {
		if !item.Actor().Visible() {
			return
		}
		rows = append(rows, popupRow{item: item, depth: depth})
		if sub := item.Submenu(); sub != nil && sub.IsOpen() {
			rows = append(rows, flattenRows(sub, depth+1)...)
		}
	}
	for _, entry := range m.Entries() {
		switch e := entry.(type) {
		case *menu.Item:
			add(e)
		case *menu.Section:
			if !e.Actor().Visible() {
				continue
			}
			for _, item := range e.Items() {
				add(item)
			}
		}
	}
	return rows
}

func rowDecoration(item *menu.Item) string {
	parts := make([]string, 0, 2)
	if status := item.Status(); status != "" {
		parts = append(parts, status)
	}
	switch item.Kind() {
	case menu.KindSwitch:
		if item.State() {
			parts = append(parts, switchOnLabel)
		} else {
			parts = append(parts, switchOffLabel)
		}
	case menu.KindSubmenu:
		if sub := item.Submenu(); sub != nil && sub.IsOpen() {
			parts = append(parts, submenuOpen)
		} else {
			parts = append(parts, submenuClosed)
		}
	}
	return strings.Join(parts, " ")
}

// formatRows lays labels and decorations out in two aligned columns.
// Separators keep an empty text and are drawn across the full width.
func formatRows(rows []popupRow) int {
	cells := make([][]string, 0, len(rows))
	index := make([]int, 0, len(rows))
	for i, row := range rows {
		if row.item.Kind() == menu.KindSeparator {
			continue
		}
		label := " " + strings.Repeat(depthIndent, row.depth) + row.item.Label()
		cells = append(cells, []string{label, rowDecoration(row.item) + " "})
		index = append(index, i)
	}
	width := 0
	for i, text := range table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight}) {
		rows[index[i]].text = text
		if w := ansi.StringWidth(text); w > width {
			width = w
		}
	}
	for _, row := range rows {
		if row.item.Kind() != menu.KindSeparator || row.item.Label() == "" {
			continue
		}
		if w := ansi.StringWidth(row.item.Label()) + 6; w > width {
			width = w
		}
	}
	return width
}

func levelRows(rows []popupRow) []uistate.Row {
	out := make([]uistate.Row, len(rows))
	for i, row := range rows {
		out[i] = uistate.Row{ID: row.item.Label(), Label: row.item.Label(), Focusable: row.item.CanFocus()}
	}
	return out
}

// layout computes where everything is drawn for the current state. It syncs
// the popup viewport so the focused row stays visible.
func (m *Model) layout() *screenLayout {
	l := &screenLayout{width: m.width, height: m.height}
	l.footer = m.footerLines()
	l.hits = append(l.hits, hitBox{area: rect{x: 0, y: 0, w: m.width, h: barRows}, actor: m.panel.Bar()})
	m.layoutButtons(l)
	if top := m.openPopup(); top != nil {
		l.popup = m.layoutPopup(top, l)
	}
	return l
}

func (m *Model) layoutButtons(l *screenLayout) {
	buttons := m.panel.Buttons()
	if len(buttons) == 0 {
		return
	}
	boxes := make([]buttonBox, len(buttons))
	for i, b := range buttons {
		text := " " + b.Label() + " "
		boxes[i] = buttonBox{button: b, text: text, area: rect{y: 0, w: ansi.StringWidth(text), h: barRows}}
	}
	// The first button sits on the left edge, the rest are right-aligned.
	x := m.width
	for i := len(boxes) - 1; i > 0; i-- {
		x -= boxes[i].area.w
		boxes[i].area.x = x
	}
	boxes[0].area.x = 0
	for _, box := range boxes {
		l.hits = append(l.hits, hitBox{area: box.area, actor: box.button.Actor()})
	}
	l.buttons = boxes
}

// openPopup returns the open top-level popup, if any.
func (m *Model) openPopup() *menu.Menu {
	if active := m.panel.Manager().ActiveMenu(); active != nil {
		return active.TopMenu()
	}
	for _, b := range m.panel.Buttons() {
		if b.IsOpen() {
			return b.Menu()
		}
	}
	return nil
}

// maxVisibleRows is the number of popup rows that fit between the bar and the
// footer.
func (m *Model) maxVisibleRows() int {
	rows := m.height - barRows - 2*popupBorder - len(m.footerLines())
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *Model) layoutPopup(top *menu.Menu, l *screenLayout) *popupLayout {
	rows := flattenRows(top, 0)
	contentW := formatRows(rows)
	if contentW < minPopupWidth {
		contentW = minPopupWidth
	}
	maxVisible := m.maxVisibleRows()
	level := m.levelFor(top)
	level.UpdateRows(levelRows(rows))
	// Follow the focus only when it moves, so wheel and drag scrolling stick.
	if cursor := focusedRow(rows, m.panel.Stage().KeyFocus()); cursor != level.Cursor {
		level.Cursor = cursor
		level.EnsureCursorVisible(maxVisible)
	} else {
		level.ScrollTo(level.ViewportOffset, maxVisible)
	}
	start, end := level.VisibleRange(maxVisible)

	scrollable := level.NeedsScroll(maxVisible)
	innerW := contentW
	if scrollable {
		innerW++
	}
	if limit := m.width - 2*popupBorder; limit > 0 && innerW > limit {
		innerW = limit
	}
	boxW := innerW + 2*popupBorder
	boxH := end - start + 2*popupBorder

	x := 0
	if area, ok := l.buttonArea(m.buttonName(top)); ok {
		x = area.x
	}
	if x+boxW > m.width {
		x = m.width - boxW
	}
	if x < 0 {
		x = 0
	}
	p := &popupLayout{
		menu:   top,
		level:  level,
		box:    rect{x: x, y: barRows, w: boxW, h: boxH},
		rows:   rows,
		start:  start,
		end:    end,
		innerW: innerW,
	}
	l.hits = append(l.hits, hitBox{area: p.box, actor: top.Actor()})
	rowW := innerW
	if scrollable {
		rowW--
		p.scrollbar = rect{x: x + popupBorder + rowW, y: barRows + popupBorder, w: 1, h: end - start}
	}
	for i := start; i < end; i++ {
		area := rect{x: x + popupBorder, y: barRows + popupBorder + i - start, w: rowW, h: 1}
		l.hits = append(l.hits, hitBox{area: area, actor: rows[i].item.Actor()})
	}
	if !p.scrollbar.empty() {
		l.hits = append(l.hits, hitBox{area: p.scrollbar, actor: m.scrollbarFor(top)})
	}
	return p
}

func focusedRow(rows []popupRow, focus *stage.Actor) int {
	if focus == nil {
		return -1
	}
	for i, row := range rows {
		if row.item.Actor() == focus {
			return i
		}
	}
	return -1
}

// thumb returns the scrollbar thumb as an offset into the track and a length.
func (p *popupLayout) thumb() (int, int) {
	total := len(p.rows)
	track := p.end - p.start
	if total <= track || track <= 0 {
		return 0, track
	}
	length := track * track / total
	if length < 1 {
		length = 1
	}
	span := total - track
	pos := p.level.ViewportOffset * (track - length) / span
	return pos, length
}

// offsetAt maps a y coordinate on the scrollbar track to a viewport offset.
func (p *popupLayout) offsetAt(y int) int {
	track := p.end - p.start
	span := len(p.rows) - track
	if track <= 1 || span <= 0 {
		return 0
	}
	rel := y - p.scrollbar.y
	if rel < 0 {
		rel = 0
	}
	if rel > track-1 {
		rel = track - 1
	}
	return rel * span / (track - 1)
}
