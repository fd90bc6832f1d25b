package pngshrink

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/unixpickle/essentials"
)

var (
	ErrNotPNG           = errors.New("not a PNG file")
	ErrUnsupportedDepth = errors.New("unsupported bit depth")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrInvalidRaster    = errors.New("invalid raster")
)

type Config struct {
	// Filters to try. Defaults to AllFilters.
	Filters []Filter

	NoReduce  bool
	NoPalette bool

	// Parallel runs the filter trials concurrently. The
	// selected output is the same either way.
	Parallel bool

	// Log, if non-nil, receives diagnostic lines.
	Log io.Writer
}

// OptimizeFile reads a PNG from inPath and saves the
// smallest lossless re-encoding to outPath.
func OptimizeFile(inPath, outPath string, c *Config) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return essentials.AddCtx("read input", err)
	}
	out, err := Optimize(data, c)
	if err != nil {
		return err
	}
	return essentials.AddCtx("write output", os.WriteFile(outPath, out, 0644))
}

// Optimize re-encodes a PNG file without changing any
// decoded pixel value.
func Optimize(data []byte, c *Config) ([]byte, error) {
	if c == nil {
		c = &Config{}
	}
	r, err := Decode(data)
	if err != nil {
		return nil, err
	}
	c.logf("frame: %s", r)

	if !c.NoReduce {
		r.Pix, r.Layout = ReduceColorModel(r.Pix, r.Layout)
	}
	if !c.NoPalette && r.Layout == RGB {
		if c.Log != nil {
			c.logf("colors=%s", humanize.Comma(int64(CountColors(r.Pix))))
		}
		r.Pix, r.Palette, r.Layout = BuildPalette(r.Pix, r.Layout)
	}

	out, filter, err := FindBestEncoding(r, c.Filters, c.Parallel, c.Log)
	if err != nil {
		return nil, err
	}
	c.logf("selected filter=%s layout=%s", filter, r.Layout)
	return out, nil
}

func (c *Config) logf(format string, args ...interface{}) {
	if c.Log != nil {
		fmt.Fprintf(c.Log, format+"\n", args...)
	}
}
