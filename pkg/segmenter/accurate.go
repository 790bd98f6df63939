package segmenter

import (
	"github.com/textglue/srx/pkg/matcher"
	"github.com/textglue/srx/pkg/regexutil"
	"github.com/textglue/srx/pkg/ruleset"
)

// Accurate is the reference iterator. It requires the whole text in
// memory and drives one matcher per rule, break and non-break alike:
// a non-break rule vetoes a tied break candidate simply by winning
// the minimum-position selection first, so no combined exception
// pattern is needed.
//
// Non-break rules get their before pattern finitized and their
// matcher set to transparent bounds, since their lookaround must see
// past the cut position after a committed break.
type Accurate struct {
	text     []rune
	matchers []*matcher.RuleMatcher

	startPosition int
	endPosition   int

	started bool
	err     error
}

// NewAccurate creates an accurate iterator over text, selecting
// language rules from doc for languageCode.
func NewAccurate(doc *ruleset.Document, languageCode, text string, opts ...Option) (*Accurate, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	runes := []rune(text)
	it := &Accurate{text: runes}

	var rules []*ruleset.Rule
	for _, lr := range doc.LanguageRules(languageCode) {
		rules = append(rules, lr.Rules()...)
	}
	if cfg.prefilter {
		rules = newPrefilter(rules).filter(rules, runes)
	}

	for _, rule := range rules {
		rm, err := newRuleMatcher(doc, rule, runes, cfg.maxLookbehind)
		if err != nil {
			return nil, err
		}
		it.matchers = append(it.matchers, rm)
	}

	return it, nil
}

// newRuleMatcher compiles a rule's patterns and builds its matcher.
// Non-break rules are finitized and made transparent.
func newRuleMatcher(doc *ruleset.Document, rule *ruleset.Rule, text []rune, maxLookbehind int) (*matcher.RuleMatcher, error) {
	beforeSource := rule.BeforePattern
	if !rule.Break {
		finite, err := regexutil.Finitize(beforeSource, maxLookbehind)
		if err != nil {
			return nil, err
		}
		beforeSource = finite
	}

	before, err := doc.Compile(beforeSource)
	if err != nil {
		return nil, err
	}
	after, err := doc.Compile(rule.AfterPattern)
	if err != nil {
		return nil, err
	}

	rm := matcher.NewRuleMatcher(rule, before, after, text, maxLookbehind)
	if !rule.Break {
		rm.UseTransparentBounds(true)
	}
	return rm, nil
}

// Next yields the next segment.
func (it *Accurate) Next() (string, bool) {
	if it.err != nil || it.startPosition >= len(it.text) {
		return "", false
	}
	if !it.started {
		it.started = true
		it.initMatchers()
		if it.err != nil {
			return "", false
		}
	}

	found := false
	for len(it.matchers) > 0 && !found {
		min := it.minMatcher()
		it.endPosition = min.BreakPosition()
		if min.Rule().Break && it.endPosition > it.startPosition {
			found = true
			it.cutMatchers()
		}
		it.moveMatchers()
		if it.err != nil {
			return "", false
		}
	}

	if !found {
		it.endPosition = len(it.text)
	}

	segment := string(it.text[it.startPosition:it.endPosition])
	it.startPosition = it.endPosition
	return segment, true
}

// Err returns the error that stopped iteration, if any.
func (it *Accurate) Err() error {
	return it.err
}

func (it *Accurate) initMatchers() {
	live := it.matchers[:0]
	for _, rm := range it.matchers {
		rm.Find()
		if it.checkMatcher(rm) {
			live = append(live, rm)
		}
	}
	it.matchers = live
}

// moveMatchers advances every matcher at or before the current end
// position until it passes it or exhausts.
func (it *Accurate) moveMatchers() {
	live := it.matchers[:0]
	for _, rm := range it.matchers {
		exhausted := false
		for rm.BreakPosition() <= it.endPosition {
			rm.Find()
			if !it.checkMatcher(rm) {
				exhausted = true
				break
			}
		}
		if !exhausted {
			live = append(live, rm)
		}
	}
	it.matchers = live
}

// cutMatchers restarts matchers that began before the committed
// break so no match straddles it.
func (it *Accurate) cutMatchers() {
	live := it.matchers[:0]
	for _, rm := range it.matchers {
		if rm.StartPosition() < it.endPosition {
			rm.FindFrom(it.endPosition)
			if !it.checkMatcher(rm) {
				continue
			}
		}
		live = append(live, rm)
	}
	it.matchers = live
}

// minMatcher selects the matcher with the smallest break position;
// ties go to the earlier matcher in document order.
func (it *Accurate) minMatcher() *matcher.RuleMatcher {
	var min *matcher.RuleMatcher
	for _, rm := range it.matchers {
		if min == nil || rm.BreakPosition() < min.BreakPosition() {
			min = rm
		}
	}
	return min
}

// checkMatcher reports whether rm is still live, capturing any match
// error it hit.
func (it *Accurate) checkMatcher(rm *matcher.RuleMatcher) bool {
	if err := rm.Err(); err != nil {
		it.err = err
		return false
	}
	return !rm.HitEnd()
}
