package segmenter

import "errors"

// ErrBufferTooSmall reports that a streaming iteration cannot make
// progress: the current segment would exceed the buffer window.
var ErrBufferTooSmall = errors.New("segmenter: buffer too small to hold a single segment")
