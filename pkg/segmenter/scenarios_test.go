package segmenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textglue/srx/pkg/ruleset"
)

// scenario is one segmentation case run against every iterator.
type scenario struct {
	name     string
	build    func(t *testing.T) *ruleset.Document
	language string
	expected []string
}

func addMap(t *testing.T, doc *ruleset.Document, pattern string, lr *ruleset.LanguageRule) {
	t.Helper()
	require.NoError(t, doc.AddLanguageMap(pattern, lr))
}

func scenarios() []scenario {
	return []scenario{
		{
			name: "simple polish",
			build: func(t *testing.T) *ruleset.Document {
				polish := ruleset.NewLanguageRule("Polish",
					&ruleset.Rule{Break: false, BeforePattern: `[Pp]rof\.`, AfterPattern: `\s`})
				fallback := ruleset.NewLanguageRule("Default",
					&ruleset.Rule{Break: true, BeforePattern: `\.`, AfterPattern: `\s`},
					&ruleset.Rule{Break: true, BeforePattern: ``, AfterPattern: `\n`})

				doc := ruleset.NewDocument()
				addMap(t, doc, "pl.*", polish)
				addMap(t, doc, ".*", fallback)
				return doc
			},
			language: "pl",
			expected: []string{
				"Ala ma kota.",
				" Prof. Kot nie wie kim jest.",
				" Ech.",
				"\nA inny prof. to już w ogole.",
				" Uch",
			},
		},
		{
			name: "overlapping exceptions",
			build: func(t *testing.T) *ruleset.Document {
				lr := ruleset.NewLanguageRule("Default",
					&ruleset.Rule{Break: false, BeforePattern: `n\.`, AfterPattern: ``},
					&ruleset.Rule{Break: false, BeforePattern: `n\.e\.`, AfterPattern: ``},
					&ruleset.Rule{Break: true, BeforePattern: `\.`, AfterPattern: ``})

				doc := ruleset.NewDocument()
				addMap(t, doc, ".*", lr)
				return doc
			},
			expected: []string{
				"W 59 n.e. Julek nie zrobił nic ciekawego.",
				" Ja też nie",
			},
		},
		{
			name: "break at end of text",
			build: func(t *testing.T) *ruleset.Document {
				lr := ruleset.NewLanguageRule("Default",
					&ruleset.Rule{Break: true, BeforePattern: `\.`, AfterPattern: ``})
				doc := ruleset.NewDocument()
				addMap(t, doc, ".*", lr)
				return doc
			},
			expected: []string{"a."},
		},
		{
			name: "empty break rule",
			build: func(t *testing.T) *ruleset.Document {
				lr := ruleset.NewLanguageRule("Default",
					&ruleset.Rule{Break: true, BeforePattern: ``, AfterPattern: ``})
				doc := ruleset.NewDocument()
				addMap(t, doc, ".*", lr)
				return doc
			},
			expected: []string{"a", "b", "c"},
		},
		{
			name: "matching-all rule",
			build: func(t *testing.T) *ruleset.Document {
				lr := ruleset.NewLanguageRule("Default",
					&ruleset.Rule{Break: true, BeforePattern: `[^\s]*`, AfterPattern: `\s`},
					&ruleset.Rule{Break: true, BeforePattern: `\.`, AfterPattern: `\s`})
				doc := ruleset.NewDocument()
				addMap(t, doc, ".*", lr)
				return doc
			},
			expected: []string{"A", " B.", " C", " "},
		},
		{
			name: "specification example",
			build: func(t *testing.T) *ruleset.Document {
				lr := ruleset.NewLanguageRule("Default",
					&ruleset.Rule{Break: false, BeforePattern: `\sU\.K\.`, AfterPattern: `\s`},
					&ruleset.Rule{Break: false, BeforePattern: `Mr\.`, AfterPattern: `\s`},
					&ruleset.Rule{Break: true, BeforePattern: `[\.\?!]+`, AfterPattern: `\s`})
				doc := ruleset.NewDocument()
				addMap(t, doc, ".*", lr)
				return doc
			},
			expected: []string{"The U.K. Prime Minister, Mr. Blair, was seen out today."},
		},
	}
}

func TestAccurateScenarios(t *testing.T) {
	for _, sc := range scenarios() {
		t.Run(sc.name, func(t *testing.T) {
			doc := sc.build(t)
			text := strings.Join(sc.expected, "")

			it, err := NewAccurate(doc, sc.language, text)
			require.NoError(t, err)

			segments, err := All(it)
			require.NoError(t, err)
			assert.Equal(t, sc.expected, segments)
		})
	}
}

func TestStreamingScenarios(t *testing.T) {
	for _, sc := range scenarios() {
		t.Run(sc.name, func(t *testing.T) {
			doc := sc.build(t)
			text := strings.Join(sc.expected, "")

			it, err := NewStreaming(doc, sc.language, text)
			require.NoError(t, err)

			segments, err := All(it)
			require.NoError(t, err)
			assert.Equal(t, sc.expected, segments)
		})
	}
}

// Any window larger than the longest segment must yield the same
// segmentation as the accurate iterator.
func TestStreamingReaderWindowIndependence(t *testing.T) {
	for _, sc := range scenarios() {
		for _, window := range []int{64, 96, 4096} {
			sc, window := sc, window
			t.Run(sc.name, func(t *testing.T) {
				doc := sc.build(t)
				text := strings.Join(sc.expected, "")

				it, err := NewStreamingReader(doc, sc.language, strings.NewReader(text),
					WithWindowSize(window), WithMargin(8))
				require.NoError(t, err)

				segments, err := All(it)
				require.NoError(t, err)
				assert.Equal(t, sc.expected, segments, "window %d", window)
			})
		}
	}
}

func TestReconstructionProperty(t *testing.T) {
	for _, sc := range scenarios() {
		t.Run(sc.name, func(t *testing.T) {
			doc := sc.build(t)
			text := strings.Join(sc.expected, "")

			it, err := NewAccurate(doc, sc.language, text)
			require.NoError(t, err)
			segments, err := All(it)
			require.NoError(t, err)

			assert.Equal(t, text, strings.Join(segments, ""))
			for _, s := range segments {
				assert.NotEmpty(t, s, "no zero-length segments")
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	sc := scenarios()[0]
	doc := sc.build(t)
	text := strings.Join(sc.expected, "")

	var runs [][]string
	for i := 0; i < 3; i++ {
		it, err := NewStreaming(doc, sc.language, text)
		require.NoError(t, err)
		segments, err := All(it)
		require.NoError(t, err)
		runs = append(runs, segments)
	}
	assert.Equal(t, runs[0], runs[1])
	assert.Equal(t, runs[1], runs[2])
}

func TestCascadeOffUsesFirstMatchOnly(t *testing.T) {
	polish := ruleset.NewLanguageRule("Polish",
		&ruleset.Rule{Break: false, BeforePattern: `[Pp]rof\.`, AfterPattern: `\s`})
	fallback := ruleset.NewLanguageRule("Default",
		&ruleset.Rule{Break: true, BeforePattern: `\.`, AfterPattern: `\s`})

	doc := ruleset.NewDocument()
	doc.SetCascade(false)
	addMap(t, doc, "pl.*", polish)
	addMap(t, doc, ".*", fallback)

	// Only the Polish rules apply, and they contain no break rule,
	// so the text stays whole.
	it, err := NewAccurate(doc, "pl", "Ala ma kota. Ech.")
	require.NoError(t, err)
	segments, err := All(it)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ala ma kota. Ech."}, segments)

	// A non-Polish code falls through to the break rules.
	it, err = NewAccurate(doc, "en", "Ala ma kota. Ech.")
	require.NoError(t, err)
	segments, err = All(it)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ala ma kota.", " Ech."}, segments)
}

func TestEmptyInput(t *testing.T) {
	doc := scenarios()[0].build(t)

	it, err := NewAccurate(doc, "pl", "")
	require.NoError(t, err)
	segments, err := All(it)
	require.NoError(t, err)
	assert.Empty(t, segments)

	sit, err := NewStreamingReader(doc, "pl", strings.NewReader(""), WithWindowSize(64), WithMargin(8))
	require.NoError(t, err)
	segments, err = All(sit)
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestLongTextAcrossWindows(t *testing.T) {
	lr := ruleset.NewLanguageRule("Default",
		&ruleset.Rule{Break: true, BeforePattern: `\.`, AfterPattern: ``})
	doc := ruleset.NewDocument()
	addMap(t, doc, ".*", lr)

	const repetitions = 10000
	text := strings.Repeat("AAAAAAAAA.", repetitions)

	accurate, err := NewAccurate(doc, "", text)
	require.NoError(t, err)
	want, err := All(accurate)
	require.NoError(t, err)
	require.Len(t, want, repetitions)

	streaming, err := NewStreamingReader(doc, "", strings.NewReader(text),
		WithWindowSize(1000), WithMargin(128))
	require.NoError(t, err)
	got, err := All(streaming)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}
