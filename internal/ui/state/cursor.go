package state

// MaxOffset returns the largest viewport offset for maxVisible rows.
func (l *Level) MaxOffset(maxVisible int) int {
	if maxVisible <= 0 {
		return 0
	}
	maxOffset := len(l.Rows) - maxVisible
	if maxOffset < 0 {
		return 0
	}
	return maxOffset
}

// NeedsScroll reports whether the rows overflow maxVisible.
func (l *Level) NeedsScroll(maxVisible int) bool {
	return maxVisible > 0 && len(l.Rows) > maxVisible
}

// ScrollBy moves the viewport by delta rows and reports whether it moved.
func (l *Level) ScrollBy(delta, maxVisible int) bool {
	return l.ScrollTo(l.ViewportOffset+delta, maxVisible)
}

// ScrollTo places the viewport at offset, clamped to the valid range.
func (l *Level) ScrollTo(offset, maxVisible int) bool {
	old := l.ViewportOffset
	if offset > l.MaxOffset(maxVisible) {
		offset = l.MaxOffset(maxVisible)
	}
	if offset < 0 {
		offset = 0
	}
	l.ViewportOffset = offset
	return old != l.ViewportOffset
}

// VisibleRange returns the half-open row range inside the viewport.
func (l *Level) VisibleRange(maxVisible int) (int, int) {
	if maxVisible <= 0 || len(l.Rows) <= maxVisible {
		return 0, len(l.Rows)
	}
	start := l.ViewportOffset
	if start > l.MaxOffset(maxVisible) {
		start = l.MaxOffset(maxVisible)
	}
	if start < 0 {
		start = 0
	}
	return start, start + maxVisible
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays
// visible. A level without a highlighted row only has its offset clamped.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Rows) == 0 {
		l.Cursor = -1
		l.ViewportOffset = 0
		return
	}
	if l.Cursor >= len(l.Rows) {
		l.Cursor = len(l.Rows) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := l.MaxOffset(maxVisible)
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < 0 {
		return
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
