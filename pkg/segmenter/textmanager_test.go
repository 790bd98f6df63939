package segmenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextManagerStringMode(t *testing.T) {
	tm := NewTextManager("hello")

	text, err := tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(text))
	assert.Equal(t, 5, tm.BufferLength())

	more, err := tm.HasMoreText()
	require.NoError(t, err)
	assert.False(t, more)

	assert.Error(t, tm.ReadText(1), "reading is forbidden in string mode")
}

func TestTextManagerReaderWindow(t *testing.T) {
	tm, err := NewReaderTextManager(strings.NewReader("abcdefgh"), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, tm.BufferLength())

	text, err := tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(text))

	more, err := tm.HasMoreText()
	require.NoError(t, err)
	assert.True(t, more)

	require.NoError(t, tm.ReadText(3))
	text, err = tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "defgh", string(text))

	more, err = tm.HasMoreText()
	require.NoError(t, err)
	assert.False(t, more, "all input is now in the buffer")
}

func TestTextManagerReaderExactWindow(t *testing.T) {
	tm, err := NewReaderTextManager(strings.NewReader("abcde"), 5)
	require.NoError(t, err)

	text, err := tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(text))

	more, err := tm.HasMoreText()
	require.NoError(t, err)
	assert.False(t, more)
}

func TestTextManagerReaderKeepsWindowFull(t *testing.T) {
	tm, err := NewReaderTextManager(strings.NewReader("abcdefghijk"), 5)
	require.NoError(t, err)

	text, err := tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(text))

	require.NoError(t, tm.ReadText(3))
	text, err = tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "defgh", string(text))

	more, err := tm.HasMoreText()
	require.NoError(t, err)
	assert.True(t, more)

	require.NoError(t, tm.ReadText(5))
	text, err = tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "ijk", string(text))

	more, err = tm.HasMoreText()
	require.NoError(t, err)
	assert.False(t, more)
}

func TestTextManagerReadTextBounds(t *testing.T) {
	tm, err := NewReaderTextManager(strings.NewReader("abcdefgh"), 5)
	require.NoError(t, err)
	_, err = tm.Text()
	require.NoError(t, err)

	assert.Error(t, tm.ReadText(0))
	assert.Error(t, tm.ReadText(-1))
	assert.Error(t, tm.ReadText(6), "amount larger than the window")
}

func TestTextManagerInvalidWindow(t *testing.T) {
	_, err := NewReaderTextManager(strings.NewReader("x"), 0)
	assert.Error(t, err)
}

func TestTextManagerUnicodeRunes(t *testing.T) {
	tm, err := NewReaderTextManager(strings.NewReader("żółćab"), 4)
	require.NoError(t, err)

	text, err := tm.Text()
	require.NoError(t, err)
	assert.Equal(t, "żółć", string(text))
	assert.Equal(t, 4, len(text))

	more, err := tm.HasMoreText()
	require.NoError(t, err)
	assert.True(t, more)
}
