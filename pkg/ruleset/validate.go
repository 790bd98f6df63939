package ruleset

import "fmt"

// Validate checks a parsed document structurally: the document must
// carry at least one language map, and every rule pattern must
// compile. The first problem found is returned as an InvalidError,
// wrapping the compile error where there is one.
func Validate(doc *Document) error {
	if len(doc.LanguageMaps()) == 0 {
		return &InvalidError{Location: "maprules", Reason: "no language maps defined"}
	}

	seen := make(map[*LanguageRule]bool)
	for _, lm := range doc.LanguageMaps() {
		lr := lm.LanguageRule()
		if lr == nil {
			return &InvalidError{Location: "maprules", Reason: "language map without a language rule"}
		}
		if seen[lr] {
			continue
		}
		seen[lr] = true

		for i, rule := range lr.Rules() {
			location := fmt.Sprintf("languagerule %q rule %d", lr.Name, i+1)
			if _, err := doc.Compile(rule.BeforePattern); err != nil {
				return &InvalidError{Location: location, Reason: err.Error()}
			}
			if _, err := doc.Compile(rule.AfterPattern); err != nil {
				return &InvalidError{Location: location, Reason: err.Error()}
			}
		}
	}

	return nil
}
