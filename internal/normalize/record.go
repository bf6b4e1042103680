package normalize

import (
	"strconv"
	"strings"
)

// ParseRecord splits a "W-L" summary. Both halves must parse or both are nil.
func ParseRecord(summary string) (wins, losses *int) {
	parts := strings.Split(strings.TrimSpace(summary), "-")
	if len(parts) != 2 {
		return nil, nil
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	l, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil || w < 0 || l < 0 {
		return nil, nil
	}
	return &w, &l
}

// RecordPair accepts separate numeric fields; the pair is dropped unless both are
// non-negative numbers.
func RecordPair(wins, losses any) (*int, *int) {
	w, okW := AsCount(wins)
	l, okL := AsCount(losses)
	if !okW || !okL {
		return nil, nil
	}
	return &w, &l
}

// RecordFields resolves a team's record from a summary chain, falling back to separate
// wins/losses chains.
type RecordFields struct {
	Summary Chain
	Wins    Chain
	Losses  Chain
}

// Resolve returns the record for node, or nil/nil when unknown.
func (f RecordFields) Resolve(node any) (*int, *int) {
	if summary, ok := First(f.Summary, node, AsString); ok {
		if w, l := ParseRecord(summary); w != nil {
			return w, l
		}
	}
	w, okW := f.Wins.Resolve(node)
	l, okL := f.Losses.Resolve(node)
	if !okW || !okL {
		return nil, nil
	}
	return RecordPair(w, l)
}
