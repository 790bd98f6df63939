// Package regexutil rewrites rule pattern sources before compilation.
//
// Rule "before" patterns end up inside lookbehind constructs when
// exception patterns are assembled, and lookbehind requires every
// quantifier to have a finite upper bound. Finitize performs that
// rewrite on the pattern source. The package also rewrites the \h and
// \v whitespace escapes, which the regex dialect used by rulesets
// defines but the engine does not.
package regexutil

import (
	"strconv"

	"github.com/dlclark/regexp2"
)

// Guard lookbehind: the quantifier character must be preceded by an
// even number of backslashes, i.e. must not itself be escaped. The
// plus guard additionally rejects possessive/reluctant suffixes and
// quantifier repetition.
var (
	starPattern  = regexp2.MustCompile(`(?<=(?<!\\)(?:\\\\){0,100})\*`, 0)
	plusPattern  = regexp2.MustCompile(`(?<=(?<!\\)(?:\\\\){0,100})(?<![\?\*\+]|\{[0-9],?[0-9]?\}?\})\+`, 0)
	rangePattern = regexp2.MustCompile(`(?<=(?<!\\)(?:\\\\){0,100})\{\s*([0-9]+)\s*,\s*\}`, 0)

	horizontalPattern    = regexp2.MustCompile(`(?<=(?<!\\)(?:\\\\){0,100})\\h`, 0)
	notHorizontalPattern = regexp2.MustCompile(`(?<=(?<!\\)(?:\\\\){0,100})\\H`, 0)
	verticalPattern      = regexp2.MustCompile(`(?<=(?<!\\)(?:\\\\){0,100})\\v`, 0)
	notVerticalPattern   = regexp2.MustCompile(`(?<=(?<!\\)(?:\\\\){0,100})\\V`, 0)
)

const (
	horizontalChars = "\\t\\u0020\\u00A0\\u1680\\u2000-\\u200A\\u202F\\u205F\\u3000"
	verticalChars   = "\\n\\u000B\\f\\r\\u0085\\u2028\\u2029"
)

// RemoveBlockQuotes expands \Q...\E literal-quote blocks into
// backslash-escaped characters. "\Qa.c\E" becomes "\a\.\c". An
// escaped backslash before Q ("\\Q") does not open a quote block.
func RemoveBlockQuotes(pattern string) string {
	out := make([]rune, 0, len(pattern))
	quote := false
	pendingEscape := false
	var prev rune

	for _, c := range pattern {
		if quote {
			if prev == '\\' && c == 'E' {
				quote = false
				// Remove the escaped backslash of \E added on the
				// previous iteration.
				out = out[:len(out)-2]
				prev = 0
				continue
			}
			out = append(out, '\\', c)
			prev = c
			continue
		}

		switch {
		case pendingEscape:
			pendingEscape = false
			if c == 'Q' {
				quote = true
				// The opening backslash has already been emitted.
				out = out[:len(out)-1]
				prev = 0
				continue
			}
			out = append(out, c)
		case c == '\\':
			pendingEscape = true
			out = append(out, c)
		default:
			out = append(out, c)
		}
		prev = c
	}

	return string(out)
}

// Finitize bounds every unbounded quantifier in pattern by infinity:
// "*" becomes "{0,n}", "+" becomes "{1,n}" and "{n,}" becomes "{n,m}".
// Block quotes are expanded first via RemoveBlockQuotes. Escaped
// quantifier characters are left untouched.
func Finitize(pattern string, infinity int) (string, error) {
	pattern = RemoveBlockQuotes(pattern)

	bound := strconv.Itoa(infinity)

	pattern, err := starPattern.Replace(pattern, "{0,"+bound+"}", -1, -1)
	if err != nil {
		return "", err
	}
	pattern, err = plusPattern.Replace(pattern, "{1,"+bound+"}", -1, -1)
	if err != nil {
		return "", err
	}
	pattern, err = rangePattern.Replace(pattern, "{${1},"+bound+"}", -1, -1)
	if err != nil {
		return "", err
	}

	return pattern, nil
}

// RewriteWhitespaceClasses replaces the \h, \H, \v and \V escapes
// with equivalent character classes. The engine assigns \v its
// literal vertical-tab meaning, so rule patterns written against the
// ruleset dialect have to be rewritten before compilation.
func RewriteWhitespaceClasses(pattern string) (string, error) {
	replacements := []struct {
		re    *regexp2.Regexp
		class string
	}{
		{horizontalPattern, `[` + horizontalChars + `]`},
		{notHorizontalPattern, `[^` + horizontalChars + `]`},
		{verticalPattern, `[` + verticalChars + `]`},
		{notVerticalPattern, `[^` + verticalChars + `]`},
	}

	var err error
	for _, r := range replacements {
		pattern, err = r.re.Replace(pattern, r.class, -1, -1)
		if err != nil {
			return "", err
		}
	}
	return pattern, nil
}
