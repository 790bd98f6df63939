package ruleset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile mirrors the YAML ruleset layout:
//
//	cascade: true
//	languagerules:
//	  - name: Default
//	    rules:
//	      - break: true
//	        before: '\.'
//	        after: '\s'
//	languagemaps:
//	  - pattern: '.*'
//	    rule: Default
type yamlFile struct {
	Cascade       *bool              `yaml:"cascade"`
	LanguageRules []yamlLanguageRule `yaml:"languagerules"`
	LanguageMaps  []yamlLanguageMap  `yaml:"languagemaps"`
}

type yamlLanguageRule struct {
	Name  string     `yaml:"name"`
	Rules []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Break  *bool  `yaml:"break"`
	Before string `yaml:"before"`
	After  string `yaml:"after"`
}

type yamlLanguageMap struct {
	Pattern string `yaml:"pattern"`
	Rule    string `yaml:"rule"`
}

// ParseYAML reads a YAML ruleset and builds a Document from it. The
// format carries the same information as SRX XML; break defaults to
// true and cascade to true, matching the XML defaults.
func ParseYAML(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset YAML: %w", err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing ruleset YAML: %w", err)
	}

	doc := NewDocument()
	if file.Cascade != nil {
		doc.SetCascade(*file.Cascade)
	}

	named := make(map[string]*LanguageRule)
	for i, ylr := range file.LanguageRules {
		if ylr.Name == "" {
			return nil, &InvalidError{
				Location: fmt.Sprintf("languagerules[%d]", i),
				Reason:   "missing name",
			}
		}
		lr := NewLanguageRule(ylr.Name)
		for _, yr := range ylr.Rules {
			isBreak := yr.Break == nil || *yr.Break
			lr.AddRule(&Rule{Break: isBreak, BeforePattern: yr.Before, AfterPattern: yr.After})
		}
		named[ylr.Name] = lr
	}

	for i, ylm := range file.LanguageMaps {
		location := fmt.Sprintf("languagemaps[%d]", i)
		if ylm.Pattern == "" {
			return nil, &InvalidError{Location: location, Reason: "missing pattern"}
		}
		lr, ok := named[ylm.Rule]
		if !ok {
			return nil, &InvalidError{
				Location: location,
				Reason:   fmt.Sprintf("references unknown language rule %q", ylm.Rule),
			}
		}
		if err := doc.AddLanguageMap(ylm.Pattern, lr); err != nil {
			return nil, &InvalidError{Location: location, Reason: err.Error()}
		}
	}

	return doc, nil
}

// ParseYAMLFile reads a YAML ruleset from path.
func ParseYAMLFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ruleset %s: %w", path, err)
	}
	defer f.Close()
	return ParseYAML(f)
}
