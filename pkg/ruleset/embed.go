package ruleset

import (
	"bytes"
	"embed"
)

//go:embed rules/default.srx
var builtinFS embed.FS

// LoadBuiltin parses the ruleset embedded in the binary. It serves
// as the default when no ruleset file is supplied.
func LoadBuiltin() (*Document, error) {
	data, err := builtinFS.ReadFile("rules/default.srx")
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}
