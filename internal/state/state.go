package state

// Flags are the command-line switches that reach the viewer.
type Flags struct {
	Debug       bool // -d: dump diagnostics before the first screen
	Numbers     bool // -n / N: prefix lines with their number
	RecurseMore bool // -r: handled during file discovery
	RunScript   bool // -s: handled before file discovery
}

// AppState is the single source of truth for the viewer.
type AppState struct {
	Buffers *BufferList
	Flags   Flags
	Rows    int // cached terminal height; refreshed on 'r'
	Cols    int
}

// CurrentBuffer returns the buffer on screen.
func (s *AppState) CurrentBuffer() *Buffer {
	if s.Buffers == nil {
		return nil
	}
	return s.Buffers.Current()
}
