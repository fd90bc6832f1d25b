package pngshrink

import "sort"

// MaxPaletteSize is the largest palette an 8-bit index can
// address.
const MaxPaletteSize = 256

// A Palette is an ordered table of RGB colors.
type Palette [][3]byte

// bytes returns the palette in PLTE chunk order.
func (p Palette) bytes() []byte {
	res := make([]byte, 0, len(p)*3)
	for _, c := range p {
		res = append(res, c[0], c[1], c[2])
	}
	return res
}

type colorCount struct {
	Color [3]byte
	Count int
}

// countColors tallies each distinct color in an RGB
// buffer, in order of first appearance.
func countColors(pix []byte) []*colorCount {
	view := newPixelView(pix, RGB)
	byColor := map[[3]byte]*colorCount{}
	var counts []*colorCount
	for i := 0; i < view.Len(); i++ {
		p := view.At(i)
		c := [3]byte{p[0], p[1], p[2]}
		if cc, ok := byColor[c]; ok {
			cc.Count++
		} else {
			cc = &colorCount{Color: c, Count: 1}
			byColor[c] = cc
			counts = append(counts, cc)
		}
	}
	return counts
}

// CountColors returns the number of distinct colors in an
// RGB buffer.
func CountColors(pix []byte) int {
	return len(countColors(pix))
}

// BuildPalette converts an RGB buffer with at most
// MaxPaletteSize distinct colors into an Indexed buffer.
//
// The most frequent color gets index 0, and so on. Colors
// with equal frequency are ordered by first appearance.
//
// For any other layout, or when there are too many colors,
// the buffer is returned unchanged with a nil palette.
func BuildPalette(pix []byte, layout Layout) ([]byte, Palette, Layout) {
	if layout != RGB {
		return pix, nil, layout
	}
	counts := countColors(pix)
	if len(counts) > MaxPaletteSize {
		return pix, nil, layout
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	palette := make(Palette, len(counts))
	indices := make(map[[3]byte]byte, len(counts))
	for i, c := range counts {
		palette[i] = c.Color
		indices[c.Color] = byte(i)
	}

	view := newPixelView(pix, RGB)
	res := make([]byte, view.Len())
	for i := range res {
		p := view.At(i)
		res[i] = indices[[3]byte{p[0], p[1], p[2]}]
	}
	return res, palette, Indexed
}
