package segmenter

import (
	"bufio"
	"fmt"
	"io"
)

// TextManager owns the character buffer the streaming iterator works
// on. In string mode the buffer is the whole text and never changes.
// In reader mode the buffer is a window of at most windowSize runes;
// one rune of lookahead (nextRune) answers HasMoreText without
// consuming window capacity.
type TextManager struct {
	buffer     []rune
	windowSize int

	nextRune    rune
	hasNextRune bool

	reader      *bufio.Reader
	initialized bool
}

// NewTextManager creates a manager over a fully materialized text.
// Reading more text is not possible in this mode.
func NewTextManager(text string) *TextManager {
	buffer := []rune(text)
	return &TextManager{
		buffer:      buffer,
		windowSize:  len(buffer),
		initialized: true,
	}
}

// NewReaderTextManager creates a manager that fills its buffer from
// r, windowSize runes at a time.
func NewReaderTextManager(r io.Reader, windowSize int) (*TextManager, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("segmenter: window size must be positive, got %d", windowSize)
	}
	return &TextManager{
		reader:     bufio.NewReader(r),
		windowSize: windowSize,
	}, nil
}

// Text returns the current buffer, lazily filling it on first use.
func (tm *TextManager) Text() ([]rune, error) {
	if err := tm.init(); err != nil {
		return nil, err
	}
	return tm.buffer, nil
}

// BufferLength returns the window capacity: the text length in
// string mode, the window size in reader mode.
func (tm *TextManager) BufferLength() int {
	return tm.windowSize
}

// HasMoreText reports whether the reader still has characters not
// yet placed in the buffer.
func (tm *TextManager) HasMoreText() (bool, error) {
	if err := tm.init(); err != nil {
		return false, err
	}
	return tm.hasNextRune, nil
}

// ReadText discards the first amount runes of the buffer and tops it
// up from the reader, keeping the buffer at window capacity while
// input lasts.
func (tm *TextManager) ReadText(amount int) error {
	if err := tm.init(); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("segmenter: read amount must be positive, got %d", amount)
	}
	if amount > tm.windowSize {
		return fmt.Errorf("segmenter: read amount %d exceeds window size %d", amount, tm.windowSize)
	}
	if !tm.hasNextRune {
		return fmt.Errorf("segmenter: no more text to read")
	}

	head := tm.nextRune
	tail, err := tm.read(amount)
	if err != nil {
		return err
	}

	kept := tm.buffer[amount:]
	next := make([]rune, 0, len(kept)+1+len(tail))
	next = append(next, kept...)
	next = append(next, head)
	next = append(next, tail...)
	tm.buffer = next
	return nil
}

// init fills the buffer on first use in reader mode: windowSize
// runes go into the buffer, one extra rune becomes the lookahead.
func (tm *TextManager) init() error {
	if tm.initialized {
		return nil
	}
	tm.initialized = true

	buffer, err := tm.read(tm.windowSize + 1)
	if err != nil {
		return err
	}
	tm.buffer = buffer
	return nil
}

// read consumes up to amount runes. When the reader yields the full
// amount, the last rune becomes the lookahead and the rest is
// returned; on a short read the lookahead is cleared.
func (tm *TextManager) read(amount int) ([]rune, error) {
	runes := make([]rune, 0, amount)
	for len(runes) < amount {
		r, _, err := tm.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("segmenter: reading input: %w", err)
		}
		runes = append(runes, r)
	}

	if len(runes) == amount {
		tm.nextRune = runes[amount-1]
		tm.hasNextRune = true
		return runes[:amount-1], nil
	}
	tm.hasNextRune = false
	return runes, nil
}
