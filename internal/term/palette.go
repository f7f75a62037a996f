package term

import "github.com/nsf/termbox-go"

// xterm 256 colour indices for the 16 entry arcade palette. Entry 0 is
// transparent in sprites and shows as black on screen.
var xterm = [16]int{16, 231, 196, 211, 208, 226, 37, 34, 21, 39, 129, 177, 54, 180, 94, 16}

// Colour maps a palette entry to a termbox attribute in Output256 mode.
func Colour(c byte) termbox.Attribute {
	return termbox.Attribute(xterm[c&0x0f] + 1)
}

// upperHalf is drawn with the top pixel as foreground and the bottom pixel as
// background, packing two image rows into one terminal row.
const upperHalf = '▀'

// Cell returns the termbox cell showing the pixel pair (top, bottom).
func Cell(top, bottom byte) termbox.Cell {
	return termbox.Cell{Ch: upperHalf, Fg: Colour(top), Bg: Colour(bottom)}
}
