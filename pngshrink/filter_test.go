package pngshrink

import (
	"bytes"
	"math/rand"
	"testing"
)

// unfilterRow is the decoder-side inverse of filterRow.
func unfilterRow(f Filter, cur, prev []byte, bpp int) {
	for i := range cur {
		var a, c byte
		if i >= bpp {
			a = cur[i-bpp]
			c = prev[i-bpp]
		}
		b := prev[i]
		switch f {
		case FilterSub:
			cur[i] += a
		case FilterUp:
			cur[i] += b
		case FilterAverage:
			cur[i] += byte((int(a) + int(b)) / 2)
		case FilterPaeth:
			cur[i] += paeth(a, b, c)
		}
	}
}

func TestFilterInverses(t *testing.T) {
	for _, f := range AllFilters {
		for bpp := 1; bpp <= 4; bpp++ {
			width := 1 + rand.Intn(10)
			rowSize := width * bpp
			prev := make([]byte, rowSize)
			rand.Read(prev)
			cur := make([]byte, rowSize)
			rand.Read(cur)

			filtered := make([]byte, rowSize)
			filterRow(f, filtered, cur, prev, bpp)
			unfilterRow(f, filtered, prev, bpp)
			if !bytes.Equal(filtered, cur) {
				t.Errorf("filter %s bpp %d: expected %v but got %v", f, bpp, cur, filtered)
			}
		}
	}
}

func TestPaeth(t *testing.T) {
	cases := [][4]byte{
		{0, 0, 0, 0},
		{10, 20, 10, 20},
		{20, 10, 10, 20},
		{10, 20, 30, 10},
		{255, 0, 128, 128},
	}
	for _, c := range cases {
		if actual := paeth(c[0], c[1], c[2]); actual != c[3] {
			t.Errorf("paeth(%d, %d, %d): expected %d but got %d", c[0], c[1], c[2], c[3], actual)
		}
	}
}

func TestParseFilter(t *testing.T) {
	for _, f := range AllFilters {
		parsed, err := ParseFilter(f.String())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != f {
			t.Errorf("expected %s but got %s", f, parsed)
		}
	}
	if _, err := ParseFilter("Median"); err == nil {
		t.Error("expected error for unknown filter")
	}
}
