package ruleset

import (
	"path/filepath"
	"strings"
)

// LoadFile loads a ruleset from path, picking the format by file
// extension: .yml and .yaml parse as YAML, everything else as SRX
// XML.
func LoadFile(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAMLFile(path)
	default:
		return ParseFile(path)
	}
}
