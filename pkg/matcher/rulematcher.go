package matcher

import (
	"github.com/dlclark/regexp2"
	"github.com/textglue/srx/pkg/ruleset"
)

// RuleMatcher finds successive positions where one rule applies: the
// before pattern matches ending at the position and the after
// pattern matches starting there.
type RuleMatcher struct {
	rule    *ruleset.Rule
	textLen int
	before  *TextMatcher
	after   *TextMatcher
	found   bool
}

// NewRuleMatcher creates a matcher for rule over text. The before
// and after arguments are the rule's compiled patterns; the caller
// decides whether the before pattern is the raw or the finitized
// source.
func NewRuleMatcher(rule *ruleset.Rule, before, after *regexp2.Regexp, text []rune, maxLookaround int) *RuleMatcher {
	return &RuleMatcher{
		rule:    rule,
		textLen: len(text),
		before:  NewTextMatcher(before, text, maxLookaround),
		after:   NewTextMatcher(after, text, maxLookaround),
	}
}

// UseTransparentBounds lets the before pattern's lookaround consult
// characters outside its search region.
func (rm *RuleMatcher) UseTransparentBounds(transparent bool) {
	rm.before.UseTransparentBounds(transparent)
}

// Find advances to the next position where the rule applies.
func (rm *RuleMatcher) Find() bool {
	rm.found = false
	for !rm.found && rm.before.Find() {
		rm.after.Region(rm.before.End(), rm.textLen)
		rm.found = rm.after.LookingAt()
	}
	return rm.found
}

// FindFrom restarts the search at start and advances to the next
// position where the rule applies.
func (rm *RuleMatcher) FindFrom(start int) bool {
	rm.before.Region(start, rm.textLen)
	return rm.Find()
}

// HitEnd reports whether the last find failed.
func (rm *RuleMatcher) HitEnd() bool {
	return !rm.found
}

// StartPosition returns where the before match of the last find
// begins.
func (rm *RuleMatcher) StartPosition() int {
	return rm.before.Start()
}

// BreakPosition returns where the text splits according to the last
// find.
func (rm *RuleMatcher) BreakPosition() int {
	return rm.after.Start()
}

// EndPosition returns where the after match of the last find ends.
func (rm *RuleMatcher) EndPosition() int {
	return rm.after.End()
}

// Rule returns the rule this matcher drives.
func (rm *RuleMatcher) Rule() *ruleset.Rule {
	return rm.rule
}

// Err returns the first match error either cursor encountered.
func (rm *RuleMatcher) Err() error {
	if err := rm.before.Err(); err != nil {
		return err
	}
	return rm.after.Err()
}
