package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/terminfo"
	_ "github.com/gdamore/tcell/v2/terminfo/extended"
)

const (
	clearLineSeq         = "\x1b[2K"
	fallbackTerminalName = "xterm"
)

// sequences holds the escape strings for one terminal type.
type sequences struct {
	info *terminfo.Terminfo

	clear       string
	showCursor  string
	hideCursor  string
	attrOff     string
	noAutoWrap  string
	autoWrap    string
	clearToLine string
}

// loadSequences looks up name in the terminfo database, falling back to
// xterm, which every emulator the viewer targets understands.
func loadSequences(name string) *sequences {
	ti, err := terminfo.LookupTerminfo(name)
	if err != nil {
		ti, err = terminfo.LookupTerminfo(fallbackTerminalName)
	}
	if err != nil || ti == nil {
		return ansiSequences()
	}

	s := &sequences{
		info:        ti,
		clear:       ti.Clear,
		showCursor:  ti.ShowCursor,
		hideCursor:  ti.HideCursor,
		attrOff:     ti.AttrOff,
		noAutoWrap:  ti.DisableAutoMargin,
		autoWrap:    ti.EnableAutoMargin,
		clearToLine: clearLineSeq,
	}
	if s.noAutoWrap == "" || s.autoWrap == "" {
		s.noAutoWrap, s.autoWrap = "\x1b[?7l", "\x1b[?7h"
	}
	return s
}

func ansiSequences() *sequences {
	return &sequences{
		clear:       "\x1b[H\x1b[2J",
		showCursor:  "\x1b[?25h",
		hideCursor:  "\x1b[?25l",
		attrOff:     "\x1b[m",
		noAutoWrap:  "\x1b[?7l",
		autoWrap:    "\x1b[?7h",
		clearToLine: clearLineSeq,
	}
}

// moveTo addresses the cursor; col and row start at 1.
func (s *sequences) moveTo(col, row int) string {
	col, row = max(col, 1), max(row, 1)
	if s.info != nil && s.info.SetCursor != "" {
		return s.info.TGoto(col-1, row-1)
	}
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// color selects fg and bg; Default leaves that side unchanged.
func (s *sequences) color(fg, bg Color) string {
	fi, bi := paletteIndex(fg), paletteIndex(bg)
	if s.info != nil {
		return s.info.TColor(fi, bi)
	}
	out := ""
	if fi >= 0 && fi < 8 {
		out += fmt.Sprintf("\x1b[3%dm", fi)
	} else if fi >= 8 && fi < 16 {
		out += fmt.Sprintf("\x1b[9%dm", fi-8)
	}
	if bi >= 0 && bi < 8 {
		out += fmt.Sprintf("\x1b[4%dm", bi)
	} else if bi >= 8 && bi < 16 {
		out += fmt.Sprintf("\x1b[10%dm", bi-8)
	}
	return out
}

// paletteIndex maps a palette color to its ECMA-48/xterm index, or -1.
func paletteIndex(c Color) int {
	if !c.Valid() || c.IsRGB() {
		return -1
	}
	return int(c - tcell.ColorValid)
}
