package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// AppendQuery adds text to the type-ahead buffer and returns the best
// matching focusable row, or -1.
func (l *Level) AppendQuery(text string) int {
	if text == "" {
		return -1
	}
	l.Query += text
	l.QuerySeq++
	return BestMatchIndex(l.Rows, l.Query)
}

// DeleteQueryRune drops the last rune of the buffer and returns the new
// match.
func (l *Level) DeleteQueryRune() int {
	runes := []rune(l.Query)
	if len(runes) == 0 {
		return -1
	}
	l.Query = string(runes[:len(runes)-1])
	l.QuerySeq++
	if l.Query == "" {
		return -1
	}
	return BestMatchIndex(l.Rows, l.Query)
}

// ResetQuery clears the buffer. An expiry for seq only clears the query it
// was scheduled for.
func (l *Level) ResetQuery(seq int) bool {
	if seq >= 0 && seq != l.QuerySeq {
		return false
	}
	if l.Query == "" {
		return false
	}
	l.Query = ""
	return true
}

// BestMatchIndex returns the focusable row that best matches query: an exact
// label first, then a prefix, then a substring, then the closest fuzzy match.
func BestMatchIndex(rows []Row, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i, row := range rows {
		if row.Focusable && strings.EqualFold(row.Label, trimmed) {
			return i
		}
	}
	for i, row := range rows {
		if row.Focusable && strings.HasPrefix(strings.ToLower(row.Label), lower) {
			return i
		}
	}
	for i, row := range rows {
		if row.Focusable && strings.Contains(strings.ToLower(row.Label), lower) {
			return i
		}
	}

	labels := make([]string, 0, len(rows))
	index := make([]int, 0, len(rows))
	for i, row := range rows {
		if !row.Focusable {
			continue
		}
		labels = append(labels, row.Label)
		index = append(index, i)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(index) {
		return -1
	}
	return index[best.OriginalIndex]
}
