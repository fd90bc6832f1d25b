package pngshrink

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFindBestEncodingSmallest(t *testing.T) {
	r := gradientRaster(RGB, 32, 24)
	best, filter, err := FindBestEncoding(r, nil, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	expectedFilter := FilterNone
	var expected []byte
	for _, f := range AllFilters {
		out, err := Encode(r, f)
		if err != nil {
			t.Fatal(err)
		}
		if expected == nil || len(out) < len(expected) {
			expected = out
			expectedFilter = f
		}
	}
	if filter != expectedFilter {
		t.Errorf("expected filter %s but got %s", expectedFilter, filter)
	}
	if !bytes.Equal(best, expected) {
		t.Error("unexpected output bytes")
	}
}

func TestFindBestEncodingDeterministic(t *testing.T) {
	r := gradientRaster(RGBA, 17, 13)
	first, firstFilter, err := FindBestEncoding(r, nil, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, parallel := range []bool{false, true, true} {
		out, filter, err := FindBestEncoding(r, nil, parallel, nil)
		if err != nil {
			t.Fatal(err)
		}
		if filter != firstFilter || !bytes.Equal(out, first) {
			t.Errorf("parallel=%v: expected filter %s but got %s", parallel, firstFilter, filter)
		}
	}
}

func TestFindBestEncodingTieBreak(t *testing.T) {
	// A single pixel filters to the same byte under every
	// filter, so every candidate has the same size.
	r := &Raster{Width: 1, Height: 1, Layout: Gray, Pix: []byte{5}}
	reversed := []Filter{FilterPaeth, FilterAverage, FilterUp, FilterSub, FilterNone}
	for _, parallel := range []bool{false, true} {
		_, filter, err := FindBestEncoding(r, AllFilters, parallel, nil)
		if err != nil {
			t.Fatal(err)
		}
		if filter != FilterNone {
			t.Errorf("parallel=%v: expected None but got %s", parallel, filter)
		}
		_, filter, err = FindBestEncoding(r, reversed, parallel, nil)
		if err != nil {
			t.Fatal(err)
		}
		if filter != FilterPaeth {
			t.Errorf("parallel=%v: expected Paeth but got %s", parallel, filter)
		}
	}
}

func TestFindBestEncodingError(t *testing.T) {
	r := &Raster{Width: 3, Height: 3, Layout: RGB, Pix: make([]byte, 5)}
	for _, parallel := range []bool{false, true} {
		out, _, err := FindBestEncoding(r, nil, parallel, nil)
		if !errors.Is(err, ErrInvalidRaster) {
			t.Errorf("parallel=%v: expected ErrInvalidRaster but got %v", parallel, err)
		}
		if out != nil {
			t.Errorf("parallel=%v: expected no output", parallel)
		}
	}
}

func TestFindBestEncodingLog(t *testing.T) {
	var log strings.Builder
	_, _, err := FindBestEncoding(gradientRaster(Gray, 8, 8), nil, false, &log)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(log.String()), "\n")
	if len(lines) != len(AllFilters) {
		t.Fatalf("expected %d lines but got %d", len(AllFilters), len(lines))
	}
	for i, f := range AllFilters {
		if !strings.HasPrefix(lines[i], "filter="+f.String()+" size=") {
			t.Errorf("unexpected line: %s", lines[i])
		}
	}
}

func gradientRaster(layout Layout, width, height int) *Raster {
	bpp := layout.Channels()
	r := &Raster{
		Width:  width,
		Height: height,
		Layout: layout,
		Pix:    make([]byte, width*height*bpp),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < bpp; c++ {
				r.Pix[(y*width+x)*bpp+c] = byte(x*(c+1) + y*3)
			}
		}
	}
	return r
}
