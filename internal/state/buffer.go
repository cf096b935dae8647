package state

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"syscall"

	"github.com/kk-code-lab/navipage/internal/diag"
	fsutil "github.com/kk-code-lab/navipage/internal/fs"
)

// sentinel terminates every buffer's text so the last line has an end offset.
const sentinel = 0

// ErrOutOfMemory is returned when a file is too large to hold in memory.
var ErrOutOfMemory = errors.New("out of memory")

// maxTextSize bounds a single allocation; one byte is reserved for the sentinel.
var maxTextSize int64 = math.MaxInt - 1

// Buffer holds one file's bytes, its line index and the scroll position.
type Buffer struct {
	Path string

	text       []byte // file contents followed by the sentinel
	lineStarts []int  // byte offsets of the first byte of each line
	top        int    // index into lineStarts drawn at row 0
	loadErr    error
	encoding   fsutil.UnicodeEncoding
}

// NewBuffer builds a buffer over content. The slice is copied.
func NewBuffer(path string, content []byte) *Buffer {
	text := make([]byte, len(content)+1)
	copy(text, content)
	text[len(content)] = sentinel
	return &Buffer{
		Path:       path,
		text:       text,
		lineStarts: indexLines(text[:len(content)]),
	}
}

// newErrorBuffer builds a buffer whose contents are a diagnostic line.
func newErrorBuffer(prog, action, path string, err error) *Buffer {
	b := NewBuffer(path, []byte(diag.Message(prog, action, path, err)))
	b.loadErr = err
	return b
}

// LoadBuffer reads path into a new Buffer. Open, seek and read failures yield
// an error buffer describing the failure; only ErrOutOfMemory is returned.
func LoadBuffer(prog, path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return newErrorBuffer(prog, "cannot open", path, err), nil
	}
	defer func() {
		_ = f.Close()
	}()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return newErrorBuffer(prog, "cannot read", path, syscall.EISDIR), nil
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return newErrorBuffer(prog, "cannot seek", path, err), nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return newErrorBuffer(prog, "cannot seek", path, err), nil
	}

	text, err := allocText(size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := io.ReadFull(f, text[:size]); err != nil {
		return newErrorBuffer(prog, "cannot read", path, err), nil
	}

	content, enc := fsutil.DecodeText(text[:size])
	if enc == fsutil.EncodingUTF16LE || enc == fsutil.EncodingUTF16BE {
		b := NewBuffer(path, content)
		b.encoding = enc
		return b, nil
	}

	text[size] = sentinel
	return &Buffer{
		Path:       path,
		text:       text,
		lineStarts: indexLines(text[:size]),
		encoding:   enc,
	}, nil
}

// allocText returns a zeroed slice of size+1 bytes, or ErrOutOfMemory when
// the size cannot be represented or the runtime refuses the allocation.
func allocText(size int64) (text []byte, err error) {
	if size < 0 || size > maxTextSize {
		return nil, ErrOutOfMemory
	}
	defer func() {
		if recover() != nil {
			text, err = nil, ErrOutOfMemory
		}
	}()
	return make([]byte, int(size)+1), nil
}

// indexLines returns the offset of every line start in content (sentinel
// excluded). Offset 0 starts a line when content is non-empty; every offset
// after a newline starts one unless it is the end of content.
func indexLines(content []byte) []int {
	if len(content) == 0 {
		return nil
	}
	starts := make([]int, 1, 64)
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LoadErr returns the error that turned this into an error buffer.
func (b *Buffer) LoadErr() error {
	return b.loadErr
}

// Encoding reports the byte-order mark detected at load.
func (b *Buffer) Encoding() fsutil.UnicodeEncoding {
	return b.encoding
}

// Len returns the content length, excluding the sentinel.
func (b *Buffer) Len() int {
	return len(b.text) - 1
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// LineStart returns the byte offset at which line i begins.
func (b *Buffer) LineStart(i int) int {
	return b.lineStarts[i]
}

// Line returns line i including its newline when present. The last line
// stops before the sentinel.
func (b *Buffer) Line(i int) []byte {
	start := b.lineStarts[i]
	end := b.Len()
	if i+1 < len(b.lineStarts) {
		end = b.lineStarts[i+1]
	}
	return b.text[start:end]
}

// Top returns the index of the line drawn at the first row.
func (b *Buffer) Top() int {
	return b.top
}

// VisibleLines reports how many lines fit above the status bar.
func (b *Buffer) VisibleLines(rows int) int {
	if rows < 2 {
		return 0
	}
	return min(b.LineCount(), rows-1)
}

// scrollLimit is the exclusive upper bound for top.
func (b *Buffer) scrollLimit(rows int) int {
	return max(1, b.LineCount()-rows+2)
}

// Scroll moves top by delta. The move is rejected, leaving top unchanged,
// when it would leave [0, max(1, lines-rows+2)) or when no row is printable.
func (b *Buffer) Scroll(delta, rows int) error {
	newTop := b.top + delta
	limit := b.scrollLimit(rows)
	if rows < 2 || newTop < 0 || newTop >= limit {
		return &RangeError{Op: "scroll", Value: newTop, Limit: limit}
	}
	b.top = newTop
	return nil
}

// ScrollToTop shows the first line at row 0.
func (b *Buffer) ScrollToTop() {
	b.top = 0
}

// ScrollToBottom places the last line on the last printable row, or shows
// the first line when everything fits.
func (b *Buffer) ScrollToBottom(rows int) {
	if rows < 2 {
		return
	}
	b.top = max(0, b.LineCount()-rows+1)
}

// Clamp pulls top back inside the scroll range after rows changed.
func (b *Buffer) Clamp(rows int) {
	if rows < 2 {
		return
	}
	if limit := b.scrollLimit(rows); b.top >= limit {
		b.top = limit - 1
	}
}
