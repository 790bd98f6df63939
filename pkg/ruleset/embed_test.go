package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	doc, err := LoadBuiltin()
	require.NoError(t, err)

	assert.True(t, doc.Cascade())
	assert.NotEmpty(t, doc.LanguageMaps())
	assert.NoError(t, Validate(doc))

	// The catch-all map must resolve any language code.
	assert.NotEmpty(t, doc.LanguageRules("xx"))
	// English codes pick up the English exceptions first.
	rules := doc.LanguageRules("en_US")
	require.NotEmpty(t, rules)
	assert.Equal(t, "English", rules[0].Name)
}
