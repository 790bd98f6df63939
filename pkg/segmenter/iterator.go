// Package segmenter splits text into segments driven by a ruleset
// document. Two iterators are provided: Accurate, which needs the
// whole text in memory, and Streaming, which works over a bounded
// window and can consume arbitrarily long input.
//
// Both yield segments lazily, in input order, and the concatenation
// of all yielded segments reproduces the input exactly.
package segmenter

// Iterator is a pull iterator over segments. Next returns the next
// segment and true, or "" and false when iteration is finished or an
// error occurred; Err distinguishes the two.
type Iterator interface {
	Next() (string, bool)
	Err() error
}

// All drains it and returns every segment, or the error that stopped
// iteration.
func All(it Iterator) ([]string, error) {
	var segments []string
	for {
		segment, ok := it.Next()
		if !ok {
			return segments, it.Err()
		}
		segments = append(segments, segment)
	}
}
