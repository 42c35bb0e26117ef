package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// DisplayWidth returns the number of terminal columns s occupies. Wide and
// fullwidth East Asian characters count two, combining marks and format
// characters count zero.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	if r < 0x20 || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// pad fills s, whose display width is w, to n columns. Right-to-left text
// is aligned to the right.
func pad(s string, w, n int, dir Direction) string {
	if w >= n {
		return s
	}
	fill := strings.Repeat(" ", n-w)
	if dir == RTL {
		return fill + s
	}
	return s + fill
}

// flatten replaces line breaks and tabs so a cell stays on one line
func flatten(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s)
}
