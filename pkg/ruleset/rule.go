// Package ruleset holds the segmentation rule data model: rules,
// language rules, language maps and the document that owns them,
// together with the SRX 2.0 and YAML loaders.
package ruleset

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Rule is a single segmentation rule. A break rule marks positions
// where the text splits; a non-break rule marks positions where a
// break must not happen. Either pattern may be empty, matching the
// empty string at any position.
//
// Rules are built once by a loader and never mutated afterwards.
type Rule struct {
	// Break reports whether this rule causes a split (true) or
	// suppresses one (false).
	Break bool

	// BeforePattern is the regex source that must match ending at
	// the candidate position.
	BeforePattern string

	// AfterPattern is the regex source that must match starting at
	// the candidate position.
	AfterPattern string
}

func (r *Rule) String() string {
	kind := "break"
	if !r.Break {
		kind = "exception"
	}
	return fmt.Sprintf("%s rule %q/%q", kind, r.BeforePattern, r.AfterPattern)
}

// LanguageRule is a named, ordered list of rules. Order matters:
// non-break rules act as exceptions only to break rules that follow
// them.
type LanguageRule struct {
	Name  string
	rules []*Rule
}

// NewLanguageRule creates a language rule with the given rules.
func NewLanguageRule(name string, rules ...*Rule) *LanguageRule {
	lr := &LanguageRule{Name: name}
	lr.rules = append(lr.rules, rules...)
	return lr
}

// AddRule appends a rule, preserving declaration order.
func (lr *LanguageRule) AddRule(r *Rule) {
	lr.rules = append(lr.rules, r)
}

// Rules returns the rules in declaration order. The returned slice
// must not be modified.
func (lr *LanguageRule) Rules() []*Rule {
	return lr.rules
}

func (lr *LanguageRule) String() string {
	return fmt.Sprintf("<%s>: %d", lr.Name, len(lr.rules))
}

// LanguageMap binds a language-code pattern to a language rule.
type LanguageMap struct {
	pattern       *regexp2.Regexp
	patternSource string
	languageRule  *LanguageRule
}

// Pattern returns the language-code pattern source.
func (lm *LanguageMap) Pattern() string {
	return lm.patternSource
}

// Matches reports whether the map's pattern fully matches code.
func (lm *LanguageMap) Matches(code string) bool {
	ok, err := lm.pattern.MatchString(code)
	return err == nil && ok
}

// LanguageRule returns the mapped language rule.
func (lm *LanguageMap) LanguageRule() *LanguageRule {
	return lm.languageRule
}
