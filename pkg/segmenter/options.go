package segmenter

// DefaultWindowSize is the streaming buffer capacity in runes.
const DefaultWindowSize = 1024 * 1024

// DefaultMargin is the width of the window suffix inside which
// candidate breaks trigger a buffer slide instead of a commit.
const DefaultMargin = 128

// DefaultMaxLookbehind bounds finitized lookbehind constructs and
// transparent-bounds context.
const DefaultMaxLookbehind = 100

type config struct {
	windowSize    int
	margin        int
	maxLookbehind int
	prefilter     bool
}

func defaultConfig() config {
	return config{
		windowSize:    DefaultWindowSize,
		margin:        DefaultMargin,
		maxLookbehind: DefaultMaxLookbehind,
	}
}

// Option configures an iterator.
type Option func(*config)

// WithWindowSize sets the streaming buffer capacity in runes. The
// window must be larger than the longest expected segment.
func WithWindowSize(n int) Option {
	return func(c *config) { c.windowSize = n }
}

// WithMargin sets the window-edge margin in runes.
func WithMargin(n int) Option {
	return func(c *config) { c.margin = n }
}

// WithMaxLookbehind bounds the length of finitized lookbehind
// constructs and of transparent-bounds context.
func WithMaxLookbehind(n int) Option {
	return func(c *config) { c.maxLookbehind = n }
}

// WithPrefilter enables the literal prefilter: rules whose required
// literal does not occur in the buffer are skipped when matchers are
// built.
func WithPrefilter(enabled bool) Option {
	return func(c *config) { c.prefilter = enabled }
}
