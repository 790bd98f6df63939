package segmenter

import (
	"fmt"
	"io"

	"github.com/textglue/srx/pkg/matcher"
	"github.com/textglue/srx/pkg/ruleset"
)

// Streaming is the windowed iterator. It drives matchers for break
// rules only; non-break rules are consulted through the rule
// manager's combined exception pattern, anchored at each candidate
// break with transparent bounds.
//
// Candidate breaks inside the window's trailing margin may be
// artifacts of the window edge, so while more input exists they
// trigger a buffer slide instead of a commit. A slide discards the
// already-emitted prefix of the buffer; if nothing has been emitted
// yet the window cannot fit the current segment and iteration fails
// with ErrBufferTooSmall.
type Streaming struct {
	doc     *ruleset.Document
	manager *ruleset.RuleManager
	tm      *TextManager
	cfg     config

	pf   *prefilter
	text []rune

	matchers []*matcher.RuleMatcher

	startPosition int
	endPosition   int

	started bool
	err     error
}

// NewStreaming creates a streaming iterator over a fully
// materialized text. The window is the whole text and never slides.
func NewStreaming(doc *ruleset.Document, languageCode, text string, opts ...Option) (*Streaming, error) {
	return newStreaming(doc, languageCode, NewTextManager(text), opts...)
}

// NewStreamingReader creates a streaming iterator that reads from r
// through a bounded window.
func NewStreamingReader(doc *ruleset.Document, languageCode string, r io.Reader, opts ...Option) (*Streaming, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.margin < 0 || cfg.margin >= cfg.windowSize {
		return nil, fmt.Errorf("segmenter: margin %d must be non-negative and smaller than window size %d",
			cfg.margin, cfg.windowSize)
	}
	tm, err := NewReaderTextManager(r, cfg.windowSize)
	if err != nil {
		return nil, err
	}
	return newStreaming(doc, languageCode, tm, opts...)
}

func newStreaming(doc *ruleset.Document, languageCode string, tm *TextManager, opts ...Option) (*Streaming, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := doc.RuleManager(doc.LanguageRules(languageCode), cfg.maxLookbehind)
	if err != nil {
		return nil, err
	}

	it := &Streaming{
		doc:     doc,
		manager: manager,
		tm:      tm,
		cfg:     cfg,
	}
	if cfg.prefilter {
		it.pf = newPrefilter(manager.BreakRules())
	}
	return it, nil
}

// Next yields the next segment.
func (it *Streaming) Next() (string, bool) {
	if it.err != nil {
		return "", false
	}

	if !it.started {
		it.started = true
		if !it.refreshText() || !it.initMatchers() {
			return "", false
		}
	}

	hasMore, err := it.tm.HasMoreText()
	if err != nil {
		it.err = err
		return "", false
	}
	if it.startPosition >= len(it.text) && !hasMore {
		return "", false
	}

	found := false
	for !found {
		min := it.minMatcher()
		hasMore, err = it.tm.HasMoreText()
		if err != nil {
			it.err = err
			return "", false
		}

		if min == nil && !hasMore {
			found = true
			it.endPosition = len(it.text)
			continue
		}

		// A missing or margin-area candidate with more input
		// pending means the window may be cutting a match short.
		if hasMore && (min == nil || min.BreakPosition() > it.tm.BufferLength()-it.cfg.margin) {
			if it.startPosition == 0 {
				it.err = ErrBufferTooSmall
				return "", false
			}
			if err := it.tm.ReadText(it.startPosition); err != nil {
				it.err = err
				return "", false
			}
			it.startPosition = 0
			if !it.refreshText() || !it.initMatchers() {
				return "", false
			}
			continue
		}

		it.endPosition = min.BreakPosition()
		if it.endPosition > it.startPosition {
			exception, ok := it.isException(min)
			if !ok {
				return "", false
			}
			found = !exception
			if found {
				it.cutMatchers()
			}
		}
		it.moveMatchers()
		if it.err != nil {
			return "", false
		}
	}

	segment := string(it.text[it.startPosition:it.endPosition])
	it.startPosition = it.endPosition
	return segment, true
}

// Err returns the error that stopped iteration, if any.
func (it *Streaming) Err() error {
	return it.err
}

func (it *Streaming) refreshText() bool {
	text, err := it.tm.Text()
	if err != nil {
		it.err = err
		return false
	}
	it.text = text
	return true
}

// initMatchers builds a matcher per break rule against the current
// buffer and primes each with its first find.
func (it *Streaming) initMatchers() bool {
	rules := it.manager.BreakRules()
	if it.pf != nil {
		rules = it.pf.filter(rules, it.text)
	}

	it.matchers = it.matchers[:0]
	for _, rule := range rules {
		before, err := it.doc.Compile(rule.BeforePattern)
		if err != nil {
			it.err = err
			return false
		}
		after, err := it.doc.Compile(rule.AfterPattern)
		if err != nil {
			it.err = err
			return false
		}

		rm := matcher.NewRuleMatcher(rule, before, after, it.text, it.cfg.maxLookbehind)
		rm.Find()
		if !it.checkMatcher(rm) {
			if it.err != nil {
				return false
			}
			continue
		}
		it.matchers = append(it.matchers, rm)
	}
	return true
}

// isException anchors the combined exception pattern of min's rule
// at the candidate break position, with transparent bounds so the
// lookbehind may read before it.
func (it *Streaming) isException(min *matcher.RuleMatcher) (matched, ok bool) {
	pattern := it.manager.ExceptionPattern(min.Rule())
	if pattern == nil {
		return false, true
	}

	tmatcher := matcher.NewTextMatcher(pattern, it.text, it.cfg.maxLookbehind)
	tmatcher.UseTransparentBounds(true)
	tmatcher.Region(min.BreakPosition(), len(it.text))
	matched = tmatcher.LookingAt()
	if err := tmatcher.Err(); err != nil {
		it.err = err
		return false, false
	}
	return matched, true
}

func (it *Streaming) moveMatchers() {
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

func (it *Streaming) cutMatchers() {
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

func (it *Streaming) minMatcher() *matcher.RuleMatcher {
	var min *matcher.RuleMatcher
	for _, rm := range it.matchers {
		if min == nil || rm.BreakPosition() < min.BreakPosition() {
			min = rm
		}
	}
	return min
}

func (it *Streaming) checkMatcher(rm *matcher.RuleMatcher) bool {
	if err := rm.Err(); err != nil {
		it.err = err
		return false
	}
	return !rm.HitEnd()
}
