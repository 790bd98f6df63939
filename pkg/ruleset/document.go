package ruleset

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/textglue/srx/pkg/regexutil"
)

// matchTimeout bounds a single match operation so a pathological
// rule pattern cannot backtrack forever.
const matchTimeout = 5 * time.Second

// Document owns the language maps of a parsed ruleset along with two
// caches: compiled rule patterns keyed by source text, and rule
// managers keyed by (language-rule list identity, lookbehind bound).
// After construction a document is read-mostly; both caches are
// safe for concurrent use, so iterators on separate goroutines may
// share one document.
type Document struct {
	cascade bool
	maps    []*LanguageMap

	mu       sync.RWMutex
	patterns map[string]*regexp2.Regexp
	managers map[string]*RuleManager
}

// NewDocument creates an empty document. Cascade defaults to true.
func NewDocument() *Document {
	return &Document{
		cascade:  true,
		patterns: make(map[string]*regexp2.Regexp),
		managers: make(map[string]*RuleManager),
	}
}

// SetCascade sets whether language lookup returns every matching
// language rule or only the first.
func (d *Document) SetCascade(cascade bool) {
	d.cascade = cascade
}

// Cascade reports the cascade flag.
func (d *Document) Cascade() bool {
	return d.cascade
}

// AddLanguageMap appends a mapping from a language-code pattern to a
// language rule. Insertion order is preserved and observed by
// LanguageRules.
func (d *Document) AddLanguageMap(pattern string, rule *LanguageRule) error {
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, 0)
	if err != nil {
		return fmt.Errorf("compiling language pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout
	d.maps = append(d.maps, &LanguageMap{pattern: re, patternSource: pattern, languageRule: rule})
	return nil
}

// LanguageMaps returns the maps in insertion order.
func (d *Document) LanguageMaps() []*LanguageMap {
	return d.maps
}

// LanguageRules returns the language rules whose map pattern matches
// code: all of them in insertion order when cascading, only the
// first otherwise. An empty slice means no map matched.
func (d *Document) LanguageRules(code string) []*LanguageRule {
	var rules []*LanguageRule
	for _, lm := range d.maps {
		if lm.Matches(code) {
			rules = append(rules, lm.languageRule)
			if !d.cascade {
				break
			}
		}
	}
	return rules
}

// Compile returns the compiled form of pattern, rewriting the \h and
// \v whitespace escapes first. Results are cached by source text, so
// the same source always yields the same compiled pattern.
func (d *Document) Compile(pattern string) (*regexp2.Regexp, error) {
	d.mu.RLock()
	re, ok := d.patterns[pattern]
	d.mu.RUnlock()
	if ok {
		return re, nil
	}

	rewritten, err := regexutil.RewriteWhitespaceClasses(pattern)
	if err != nil {
		return nil, fmt.Errorf("rewriting pattern %q: %w", pattern, err)
	}

	re, err = regexp2.Compile(rewritten, regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = matchTimeout

	d.mu.Lock()
	d.patterns[pattern] = re
	d.mu.Unlock()
	return re, nil
}

// RuleManager returns the memoized rule manager for the given
// language-rule list and lookbehind bound. The cache key is the
// identity of the list elements, not their contents, so the value is
// referentially transparent for immutable rules.
func (d *Document) RuleManager(rules []*LanguageRule, maxLookbehind int) (*RuleManager, error) {
	key := managerKey(rules, maxLookbehind)

	d.mu.RLock()
	rm, ok := d.managers[key]
	d.mu.RUnlock()
	if ok {
		return rm, nil
	}

	rm, err := newRuleManager(d, rules, maxLookbehind)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.managers[key] = rm
	d.mu.Unlock()
	return rm, nil
}

func managerKey(rules []*LanguageRule, maxLookbehind int) string {
	var b strings.Builder
	for _, lr := range rules {
		fmt.Fprintf(&b, "%p;", lr)
	}
	fmt.Fprintf(&b, "%d", maxLookbehind)
	return b.String()
}
