package pngshrink

import "fmt"

// A Layout describes how bytes in a pixel buffer group
// into pixels.
type Layout int

const (
	Gray Layout = iota
	GrayAlpha
	RGB
	RGBA
	Indexed
)

// Channels returns the number of bytes per pixel.
func (l Layout) Channels() int {
	switch l {
	case Gray, Indexed:
		return 1
	case GrayAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	panic(fmt.Sprintf("unknown layout: %d", int(l)))
}

func (l Layout) String() string {
	switch l {
	case Gray:
		return "Gray"
	case GrayAlpha:
		return "GrayAlpha"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case Indexed:
		return "Indexed"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// colorType returns the IHDR colour type code.
func (l Layout) colorType() byte {
	switch l {
	case Gray:
		return 0
	case RGB:
		return 2
	case Indexed:
		return 3
	case GrayAlpha:
		return 4
	case RGBA:
		return 6
	}
	panic(fmt.Sprintf("unknown layout: %d", int(l)))
}

// BitDepth is the only sample depth this package reads or
// writes.
const BitDepth = 8

// A Raster is a decoded image as a flat, row-major buffer.
//
// Palette is only set when Layout is Indexed.
type Raster struct {
	Width   int
	Height  int
	Layout  Layout
	Pix     []byte
	Palette Palette
}

func (r *Raster) String() string {
	return fmt.Sprintf("width=%d height=%d layout=%s bit_depth=%d", r.Width, r.Height,
		r.Layout, BitDepth)
}

// pixelView is a strided view of a byte buffer, one
// element per pixel.
type pixelView struct {
	pix      []byte
	channels int
}

func newPixelView(pix []byte, l Layout) pixelView {
	return pixelView{pix: pix, channels: l.Channels()}
}

func (p pixelView) Len() int {
	return len(p.pix) / p.channels
}

// At returns the bytes of pixel i without copying.
func (p pixelView) At(i int) []byte {
	idx := i * p.channels
	return p.pix[idx : idx+p.channels : idx+p.channels]
}
