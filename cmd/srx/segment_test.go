package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceNewlines(t *testing.T) {
	assert.Equal(t, "a b c", replaceNewlines("a\nb\nc"))
	assert.Equal(t, "plain", replaceNewlines("plain"))
	assert.Equal(t, " ", replaceNewlines("\n"))
}

func TestNewlineToSpaceReader(t *testing.T) {
	r := newlineToSpaceReader{r: strings.NewReader("one\ntwo\nthree")}
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "one two three", string(data))
}

func TestLoadDocumentBuiltin(t *testing.T) {
	rulesPath = ""
	schemaPath = ""

	doc, err := loadDocument()
	require.NoError(t, err)
	assert.NotEmpty(t, doc.LanguageMaps())
}

func TestLoadDocumentMissingFile(t *testing.T) {
	rulesPath = "nope/missing.srx"
	defer func() { rulesPath = "" }()

	_, err := loadDocument()
	assert.Error(t, err)
}
