package pngshrink

// ReduceColorModel rewrites pix into a cheaper layout when
// every pixel can be represented there exactly.
//
// If no reduction applies, pix and layout are returned
// unchanged. The input buffer is never modified.
func ReduceColorModel(pix []byte, layout Layout) ([]byte, Layout) {
	switch layout {
	case RGB:
		if !allGray(newPixelView(pix, RGB)) {
			return pix, RGB
		}
		return extractChannel(pix, RGB, 0), Gray
	case GrayAlpha:
		if !allOpaque(newPixelView(pix, GrayAlpha)) {
			return pix, GrayAlpha
		}
		return extractChannel(pix, GrayAlpha, 0), Gray
	case RGBA:
		view := newPixelView(pix, RGBA)
		if !allOpaque(view) {
			return pix, RGBA
		}
		if allGray(view) {
			return extractChannel(pix, RGBA, 0), Gray
		}
		return dropAlpha(view), RGB
	}
	return pix, layout
}

// allGray checks that the first three channels of every
// pixel are equal.
func allGray(view pixelView) bool {
	for i := 0; i < view.Len(); i++ {
		p := view.At(i)
		if p[0] != p[1] || p[0] != p[2] {
			return false
		}
	}
	return true
}

// allOpaque checks that the last channel of every pixel
// is 0xff.
func allOpaque(view pixelView) bool {
	for i := 0; i < view.Len(); i++ {
		p := view.At(i)
		if p[len(p)-1] != 0xff {
			return false
		}
	}
	return true
}

func extractChannel(pix []byte, layout Layout, channel int) []byte {
	view := newPixelView(pix, layout)
	res := make([]byte, view.Len())
	for i := range res {
		res[i] = view.At(i)[channel]
	}
	return res
}

func dropAlpha(view pixelView) []byte {
	res := make([]byte, 0, view.Len()*3)
	for i := 0; i < view.Len(); i++ {
		res = append(res, view.At(i)[:3]...)
	}
	return res
}
