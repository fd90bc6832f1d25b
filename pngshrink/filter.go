package pngshrink

import "fmt"

// A Filter is a PNG scan-line filter type.
type Filter byte

const (
	FilterNone Filter = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth
)

// AllFilters lists every filter in the order they are
// tried by FindBestEncoding.
var AllFilters = []Filter{FilterNone, FilterSub, FilterUp, FilterAverage, FilterPaeth}

func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "None"
	case FilterSub:
		return "Sub"
	case FilterUp:
		return "Up"
	case FilterAverage:
		return "Average"
	case FilterPaeth:
		return "Paeth"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter parses the name of a filter, as returned by
// String.
func ParseFilter(name string) (Filter, error) {
	for _, f := range AllFilters {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown filter: %s", name)
}

// filterRow writes the filtered form of cur into dst.
//
// prev is the unfiltered previous row, or all zeros for the
// first row. bpp is the number of bytes per pixel.
func filterRow(f Filter, dst, cur, prev []byte, bpp int) {
	switch f {
	case FilterNone:
		copy(dst, cur)
	case FilterSub:
		for i, x := range cur {
			var a byte
			if i >= bpp {
				a = cur[i-bpp]
			}
			dst[i] = x - a
		}
	case FilterUp:
		for i, x := range cur {
			dst[i] = x - prev[i]
		}
	case FilterAverage:
		for i, x := range cur {
			var a int
			if i >= bpp {
				a = int(cur[i-bpp])
			}
			dst[i] = x - byte((a+int(prev[i]))/2)
		}
	case FilterPaeth:
		for i, x := range cur {
			var a, c byte
			if i >= bpp {
				a = cur[i-bpp]
				c = prev[i-bpp]
			}
			dst[i] = x - paeth(a, prev[i], c)
		}
	default:
		panic(fmt.Sprintf("unknown filter: %d", int(f)))
	}
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
