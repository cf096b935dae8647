package state

// BufferList owns the buffers in display order and tracks the current one.
type BufferList struct {
	buffers []*Buffer
	current int
}

// NewBufferList returns a list positioned on the first buffer.
func NewBufferList(buffers []*Buffer) *BufferList {
	return &BufferList{buffers: buffers}
}

// Len returns the number of buffers.
func (l *BufferList) Len() int {
	return len(l.buffers)
}

// Index returns the position of the current buffer.
func (l *BufferList) Index() int {
	return l.current
}

// Current returns the buffer on screen, or nil for an empty list.
func (l *BufferList) Current() *Buffer {
	if len(l.buffers) == 0 {
		return nil
	}
	return l.buffers[l.current]
}

// At returns the buffer at index i.
func (l *BufferList) At(i int) *Buffer {
	return l.buffers[i]
}

// Change makes buffer i current. Out-of-range indexes are rejected and the
// current buffer stays the same.
func (l *BufferList) Change(i int) error {
	if i < 0 || i >= len(l.buffers) {
		return &RangeError{Op: "buffer", Value: i, Limit: len(l.buffers)}
	}
	l.current = i
	return nil
}

// First makes the first buffer current.
func (l *BufferList) First() error { return l.Change(0) }

// Last makes the last buffer current.
func (l *BufferList) Last() error { return l.Change(len(l.buffers) - 1) }

// Prev moves one buffer back; it fails with a RangeError on the first.
func (l *BufferList) Prev() error { return l.Change(l.current - 1) }

// Next moves one buffer forward; it fails with a RangeError on the last.
func (l *BufferList) Next() error { return l.Change(l.current + 1) }
