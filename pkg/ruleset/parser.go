package ruleset

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// Parse reads an SRX 2.0 document and builds a Document from it.
//
// The extracted structure is:
//
//	<header cascade="yes|no">                   cascade flag, default yes
//	<languagerule languagerulename="...">       named rule list
//	  <rule break="yes|no">                     break defaults to yes
//	    <beforebreak>regex</beforebreak>
//	    <afterbreak>regex</afterbreak>
//	<languagemap languagepattern="..."
//	             languagerulename="..."/>       kept in document order
//
// Pattern text is taken verbatim; whitespace inside beforebreak and
// afterbreak is significant.
func Parse(r io.Reader) (*Document, error) {
	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading ruleset XML: %w", err)
	}

	root := tree.Root()
	if root == nil || root.Tag != "srx" {
		return nil, &InvalidError{Location: "/", Reason: "missing <srx> root element"}
	}

	doc := NewDocument()

	if header := root.SelectElement("header"); header != nil {
		doc.SetCascade(header.SelectAttrValue("cascade", "yes") == "yes")
	}

	body := root.SelectElement("body")
	if body == nil {
		return nil, &InvalidError{Location: "/srx", Reason: "missing <body> element"}
	}

	named := make(map[string]*LanguageRule)

	if langRules := body.SelectElement("languagerules"); langRules != nil {
		for i, lrEl := range langRules.SelectElements("languagerule") {
			name := lrEl.SelectAttrValue("languagerulename", "")
			if name == "" {
				return nil, &InvalidError{
					Location: fmt.Sprintf("/srx/body/languagerules/languagerule[%d]", i+1),
					Reason:   "missing languagerulename attribute",
				}
			}
			lr := NewLanguageRule(name)
			for _, ruleEl := range lrEl.SelectElements("rule") {
				lr.AddRule(parseRule(ruleEl))
			}
			named[name] = lr
		}
	}

	if mapRules := body.SelectElement("maprules"); mapRules != nil {
		for i, lmEl := range mapRules.SelectElements("languagemap") {
			location := fmt.Sprintf("/srx/body/maprules/languagemap[%d]", i+1)

			pattern := lmEl.SelectAttrValue("languagepattern", "")
			if pattern == "" {
				return nil, &InvalidError{Location: location, Reason: "missing languagepattern attribute"}
			}
			name := lmEl.SelectAttrValue("languagerulename", "")
			lr, ok := named[name]
			if !ok {
				return nil, &InvalidError{
					Location: location,
					Reason:   fmt.Sprintf("references unknown language rule %q", name),
				}
			}
			if err := doc.AddLanguageMap(pattern, lr); err != nil {
				return nil, &InvalidError{Location: location, Reason: err.Error()}
			}
		}
	}

	return doc, nil
}

// ParseFile reads an SRX document from path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ruleset %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func parseRule(el *etree.Element) *Rule {
	rule := &Rule{
		Break: el.SelectAttrValue("break", "yes") != "no",
	}
	if before := el.SelectElement("beforebreak"); before != nil {
		rule.BeforePattern = before.Text()
	}
	if after := el.SelectElement("afterbreak"); after != nil {
		rule.AfterPattern = after.Text()
	}
	return rule
}
