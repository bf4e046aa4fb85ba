// Package render converts the display planes of a machine to pixels and text.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/retroenv/xochip/internal/xochip"
	"golang.org/x/term"
)

// Palette maps the 2 bit plane value of a pixel to a color. Index 0 is the
// background, 1 plane 1 only, 2 plane 2 only and 3 both planes.
type Palette [4]color.RGBA

// DefaultPalette is the palette used by the windowed frontend.
var DefaultPalette = Palette{
	{R: 0x99, G: 0x66, B: 0x00, A: 0xFF},
	{R: 0xFF, G: 0xCC, B: 0x00, A: 0xFF},
	{R: 0xFF, G: 0x66, B: 0x00, A: 0xFF},
	{R: 0x66, G: 0x22, B: 0x00, A: 0xFF},
}

// PixelBytes is the size of the RGBA pixel buffer of one screen.
const PixelBytes = xochip.Width * xochip.Height * 4

// Fill writes the RGBA pixels of the display into dst, which must hold at
// least PixelBytes bytes.
func (p Palette) Fill(display *xochip.Display, dst []byte) {
	offset := 0
	for y := range xochip.Height {
		for x := range xochip.Width {
			c := p[display.Pixel(x, y)&3]
			dst[offset] = c.R
			dst[offset+1] = c.G
			dst[offset+2] = c.B
			dst[offset+3] = c.A
			offset += 4
		}
	}
}

// textGlyphs are the characters of the 2 bit plane values.
var textGlyphs = [4]byte{'.', '#', '+', '@'}

// Text writes the display as lines of characters. A column limit below the
// screen width halves the horizontal resolution, 0 means no limit.
func Text(w io.Writer, display *xochip.Display, columns int) error {
	stepX, stepY := 1, 1
	if columns > 0 && columns < xochip.Width {
		stepX, stepY = 2, 2
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < xochip.Height; y += stepY {
		for x := 0; x < xochip.Width; x += stepX {
			if err := bw.WriteByte(textGlyphs[display.Pixel(x, y)&3]); err != nil {
				return fmt.Errorf("writing screen: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing screen: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return nil
}

// TerminalColumns returns the column count of the terminal the file is
// attached to, or 0 if it is not a terminal.
func TerminalColumns(file *os.File) int {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
