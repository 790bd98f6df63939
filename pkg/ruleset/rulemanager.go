package ruleset

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/textglue/srx/pkg/regexutil"
)

// RuleManager precomputes, for a flattened language-rule list, the
// ordered break rules and the exception pattern guarding each of
// them. The exception pattern for a break rule is the alternation of
// all non-break rules declared before it in flatten order; the
// accumulator is never reset, so exceptions carry across language
// rules under cascade.
//
// Managers are built through Document.RuleManager, which memoizes
// them per (list identity, lookbehind bound).
type RuleManager struct {
	breakRules []*Rule
	exceptions map[*Rule]*regexp2.Regexp
}

func newRuleManager(doc *Document, rules []*LanguageRule, maxLookbehind int) (*RuleManager, error) {
	rm := &RuleManager{
		exceptions: make(map[*Rule]*regexp2.Regexp),
	}

	var accumulated strings.Builder

	for _, lr := range rules {
		for _, rule := range lr.Rules() {
			if rule.Break {
				rm.breakRules = append(rm.breakRules, rule)

				var exception *regexp2.Regexp
				if accumulated.Len() > 0 {
					var err error
					exception, err = doc.Compile(accumulated.String())
					if err != nil {
						return nil, err
					}
				}
				rm.exceptions[rule] = exception
				continue
			}

			if accumulated.Len() > 0 {
				accumulated.WriteByte('|')
			}
			atom, err := exceptionAtom(rule, maxLookbehind)
			if err != nil {
				return nil, err
			}
			accumulated.WriteString(atom)
		}
	}

	return rm, nil
}

// BreakRules returns the break rules in flatten order.
func (rm *RuleManager) BreakRules() []*Rule {
	return rm.breakRules
}

// ExceptionPattern returns the compiled exception pattern bound to
// breakRule, or nil when no non-break rule precedes it.
func (rm *RuleManager) ExceptionPattern(breakRule *Rule) *regexp2.Regexp {
	return rm.exceptions[breakRule]
}

// exceptionAtom renders one non-break rule as a zero-width pattern
// matchable at a candidate break position. The before part sits in a
// lookbehind and is finitized so the lookbehind has bounded length.
func exceptionAtom(rule *Rule, maxLookbehind int) (string, error) {
	var b strings.Builder
	b.WriteString("(?:")

	if rule.BeforePattern != "" {
		before, err := regexutil.Finitize(rule.BeforePattern, maxLookbehind)
		if err != nil {
			return "", err
		}
		b.WriteString("(?<=" + before + ")")
	}
	if rule.AfterPattern != "" {
		b.WriteString("(?=" + rule.AfterPattern + ")")
	}

	b.WriteString(")")
	return b.String(), nil
}
