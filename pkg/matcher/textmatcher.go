// Package matcher implements the cursors that drive rule patterns
// across a text buffer: TextMatcher, a region-aware wrapper around a
// compiled pattern, and RuleMatcher, which pairs the before and
// after patterns of one rule.
//
// All positions are rune offsets; the engine reports match indices
// in runes, so advancing by one is always code-point safe.
package matcher

import "github.com/dlclark/regexp2"

// TextMatcher finds successive matches of one pattern inside a
// region of the text. With opaque bounds (the default) the pattern
// sees only the region, and anchors bind to the region edges. With
// transparent bounds lookaround may consult up to maxLookaround
// runes before the region start while matches themselves stay
// inside the region.
//
// After every successful find the region start moves past the
// match, one rune further for a zero-width match, so repeated calls
// always make progress.
type TextMatcher struct {
	re   *regexp2.Regexp
	text []rune

	regionStart int
	regionEnd   int
	transparent bool

	// maxLookaround caps how many runes outside the region start a
	// transparent lookbehind may consult, and how far past the
	// region start an anchored match may extend.
	maxLookaround int

	start int
	end   int
	err   error
}

// NewTextMatcher creates a matcher over text with the region set to
// the whole text.
func NewTextMatcher(re *regexp2.Regexp, text []rune, maxLookaround int) *TextMatcher {
	return &TextMatcher{
		re:            re,
		text:          text,
		regionEnd:     len(text),
		maxLookaround: maxLookaround,
	}
}

// Region confines subsequent searches to [start, end).
func (m *TextMatcher) Region(start, end int) {
	m.regionStart = start
	m.regionEnd = end
}

// UseTransparentBounds controls whether lookaround may read before
// the region start.
func (m *TextMatcher) UseTransparentBounds(transparent bool) {
	m.transparent = transparent
}

// Find searches for the next match inside the region and advances
// the region past it. Returns false when the region is exhausted or
// a match error occurred (see Err).
func (m *TextMatcher) Find() bool {
	lo, hi, ok := m.window()
	if !ok {
		return false
	}

	match, err := m.re.FindRunesMatchStartingAt(m.text[lo:hi], m.regionStart-lo)
	if err != nil {
		m.err = err
		return false
	}
	if match == nil {
		return false
	}

	m.record(lo, match)
	return true
}

// LookingAt attempts an anchored match exactly at the region start.
// The match may extend at most maxLookaround runes past the region
// start.
func (m *TextMatcher) LookingAt() bool {
	lo, hi, ok := m.window()
	if !ok {
		return false
	}

	if capped := m.regionStart + m.maxLookaround; capped < hi {
		hi = capped
	}

	at := m.regionStart - lo
	match, err := m.re.FindRunesMatchStartingAt(m.text[lo:hi], at)
	if err != nil {
		m.err = err
		return false
	}
	if match == nil || match.Index != at {
		return false
	}

	m.record(lo, match)
	return true
}

// Start returns the start of the last match.
func (m *TextMatcher) Start() int { return m.start }

// End returns the end of the last match.
func (m *TextMatcher) End() int { return m.end }

// Err returns the first match error encountered, if any.
func (m *TextMatcher) Err() error { return m.err }

func (m *TextMatcher) window() (int, int, bool) {
	hi := m.regionEnd
	if hi > len(m.text) {
		hi = len(m.text)
	}
	if m.err != nil || m.regionStart > len(m.text) || m.regionStart > hi {
		return 0, 0, false
	}
	lo := m.regionStart
	if m.transparent {
		lo = m.regionStart - m.maxLookaround
		if lo < 0 {
			lo = 0
		}
	}
	return lo, hi, true
}

func (m *TextMatcher) record(lo int, match *regexp2.Match) {
	m.start = lo + match.Index
	m.end = m.start + match.Length

	next := m.end
	if match.Length == 0 {
		next++
	}
	m.regionStart = next
}
