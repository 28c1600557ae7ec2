package state

// Row is one rendered line of a popup.
type Row struct {
	ID        string
	Label     string
	Focusable bool
}

// Level holds the per-popup view state the menu core does not own: the
// scroll offset, the highlighted row as last rendered, and the type-ahead
// buffer.
type Level struct {
	ID             string
	Title          string
	Rows           []Row
	Cursor         int
	ViewportOffset int
	Query          string
	// QuerySeq increases on every type-ahead keystroke so a stale expiry can
	// be told apart from the current one.
	QuerySeq int
}

// NewLevel constructs a Level with no highlighted row.
func NewLevel(id, title string, rows []Row) *Level {
	l := &Level{
		ID:     id,
		Title:  title,
		Cursor: -1,
	}
	l.UpdateRows(rows)
	return l
}

// IndexOf returns the row index for a given identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, row := range l.Rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// UpdateRows refreshes the rows while keeping the viewport where it was if
// it still fits.
func (l *Level) UpdateRows(rows []Row) {
	prevOffset := l.ViewportOffset
	l.Rows = append([]Row(nil), rows...)
	if l.Cursor >= len(l.Rows) {
		l.Cursor = -1
	}
	if len(l.Rows) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Rows)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
