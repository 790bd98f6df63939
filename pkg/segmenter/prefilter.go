package segmenter

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/textglue/srx/pkg/ruleset"
)

// prefilter skips rules that cannot match the current buffer. For
// each rule a conservative required literal is derived from its
// pattern sources; a rule whose literal does not occur in the buffer
// cannot match inside it and is dropped before matchers are built.
// Rules without an extractable literal are always kept.
type prefilter struct {
	ac       *ahocorasick.Matcher
	keywords []string
	keyword  map[*ruleset.Rule]int // index into keywords, -1 when none
}

func newPrefilter(rules []*ruleset.Rule) *prefilter {
	pf := &prefilter{
		keyword: make(map[*ruleset.Rule]int),
	}

	index := make(map[string]int)
	for _, rule := range rules {
		lit := requiredLiteral(rule)
		if lit == "" {
			pf.keyword[rule] = -1
			continue
		}
		i, ok := index[lit]
		if !ok {
			i = len(pf.keywords)
			index[lit] = i
			pf.keywords = append(pf.keywords, lit)
		}
		pf.keyword[rule] = i
	}

	if len(pf.keywords) > 0 {
		pf.ac = ahocorasick.NewStringMatcher(pf.keywords)
	}
	return pf
}

// filter returns the rules that might match text, preserving order.
func (pf *prefilter) filter(rules []*ruleset.Rule, text []rune) []*ruleset.Rule {
	if pf.ac == nil {
		return rules
	}

	present := make(map[int]bool)
	for _, hit := range pf.ac.Match([]byte(string(text))) {
		present[hit] = true
	}

	kept := make([]*ruleset.Rule, 0, len(rules))
	for _, rule := range rules {
		if i := pf.keyword[rule]; i < 0 || present[i] {
			kept = append(kept, rule)
		}
	}
	return kept
}

// requiredLiteral picks the longest literal run that every match of
// the rule must contain, preferring the longer of the before- and
// after-pattern candidates. Returns "" when no safe literal exists.
func requiredLiteral(rule *ruleset.Rule) string {
	before := patternLiteral(rule.BeforePattern)
	after := patternLiteral(rule.AfterPattern)
	if len(after) > len(before) {
		return after
	}
	return before
}

// literalEscapes are escapes that stand for the escaped character
// itself rather than a character class or anchor.
const literalEscapes = `.^$*+?()[]{}|\/-`

// patternLiteral extracts a required literal from a pattern source
// by walking it left to right. Extraction is conservative: any
// alternation or group makes the whole pattern contribute nothing,
// classes and class-like escapes break the current run, and a
// quantifier drops the character it applies to.
func patternLiteral(pattern string) string {
	rs := []rune(pattern)
	var best, cur []rune

	flush := func() {
		if len(cur) > len(best) {
			best = cur
		}
		cur = nil
	}

	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch c {
		case '(', ')', '|':
			return ""
		case '\\':
			i++
			if i >= len(rs) {
				break
			}
			if strings.ContainsRune(literalEscapes, rs[i]) {
				cur = append(cur, rs[i])
			} else {
				flush()
			}
		case '[':
			for i++; i < len(rs); i++ {
				if rs[i] == '\\' {
					i++
					continue
				}
				if rs[i] == ']' {
					break
				}
			}
			flush()
		case '*', '?':
			if len(cur) > 0 {
				cur = cur[:len(cur)-1]
			}
			flush()
		case '+':
			// The previous character occurs at least once; the run
			// up to and including it stays required, but nothing
			// after it is contiguous.
			flush()
		case '{':
			if len(cur) > 0 {
				cur = cur[:len(cur)-1]
			}
			flush()
			for ; i < len(rs) && rs[i] != '}'; i++ {
			}
		case '.', '^', '$':
			flush()
		default:
			cur = append(cur, c)
		}
	}
	flush()

	if len(best) < 2 {
		return ""
	}
	return string(best)
}
