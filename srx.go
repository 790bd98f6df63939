// Package srx segments natural-language text into sentences driven
// by an SRX (Segmentation Rules eXchange) 2.0 ruleset.
//
// # Basic Usage
//
// Create a segmenter with the builtin ruleset and split a string:
//
//	seg, err := srx.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	segments, err := seg.SegmentString("en", "First. Second.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, s := range segments {
//	    fmt.Println(s)
//	}
//
// # Custom Rulesets
//
// Load rules from an SRX XML or YAML file instead:
//
//	seg, err := srx.New(srx.WithRulesetFile("rules.srx"))
//
// # Streaming
//
// Inputs larger than memory go through SegmentReader, which returns
// a lazy iterator over a bounded window:
//
//	it, err := seg.SegmentReader("en", os.Stdin)
//	for s, ok := it.Next(); ok; s, ok = it.Next() {
//	    fmt.Println(s)
//	}
//	if err := it.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// The concatenation of the yielded segments always reproduces the
// input exactly.
package srx

import (
	"io"

	"github.com/textglue/srx/pkg/ruleset"
	"github.com/textglue/srx/pkg/segmenter"
)

// Segmenter splits text according to a ruleset document. It is safe
// for concurrent use: iterators own their buffers and matchers, and
// the shared document caches are internally synchronized.
type Segmenter struct {
	doc          *ruleset.Document
	iteratorOpts []segmenter.Option
}

// Option configures a Segmenter.
type Option func(*Segmenter) error

// WithRulesetFile loads the ruleset from an SRX XML or YAML file.
func WithRulesetFile(path string) Option {
	return func(s *Segmenter) error {
		doc, err := ruleset.LoadFile(path)
		if err != nil {
			return err
		}
		s.doc = doc
		return nil
	}
}

// WithDocument uses an already parsed document.
func WithDocument(doc *ruleset.Document) Option {
	return func(s *Segmenter) error {
		s.doc = doc
		return nil
	}
}

// WithIteratorOptions passes options through to every iterator the
// segmenter creates, e.g. segmenter.WithWindowSize.
func WithIteratorOptions(opts ...segmenter.Option) Option {
	return func(s *Segmenter) error {
		s.iteratorOpts = append(s.iteratorOpts, opts...)
		return nil
	}
}

// New creates a segmenter. Without a ruleset option the builtin
// ruleset embedded in the package is used.
func New(opts ...Option) (*Segmenter, error) {
	s := &Segmenter{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.doc == nil {
		doc, err := ruleset.LoadBuiltin()
		if err != nil {
			return nil, err
		}
		s.doc = doc
	}
	return s, nil
}

// Document returns the ruleset document backing this segmenter.
func (s *Segmenter) Document() *ruleset.Document {
	return s.doc
}

// SegmentString splits text using the rules selected for
// languageCode and returns all segments.
func (s *Segmenter) SegmentString(languageCode, text string) ([]string, error) {
	it, err := segmenter.NewStreaming(s.doc, languageCode, text, s.iteratorOpts...)
	if err != nil {
		return nil, err
	}
	return segmenter.All(it)
}

// SegmentReader returns a lazy iterator over the segments of r.
func (s *Segmenter) SegmentReader(languageCode string, r io.Reader) (segmenter.Iterator, error) {
	return segmenter.NewStreamingReader(s.doc, languageCode, r, s.iteratorOpts...)
}
