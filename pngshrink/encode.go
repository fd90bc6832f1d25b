package pngshrink

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Encode produces a PNG file for the raster, applying the
// given filter to every scan-line and compressing at the
// highest zlib level.
func Encode(r *Raster, f Filter) ([]byte, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if f > FilterPaeth {
		return nil, fmt.Errorf("%w: filter %d", ErrInvalidRaster, int(f))
	}
	var buf bytes.Buffer
	buf.Write(pngSignature)

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(r.Width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(r.Height))
	ihdr[8] = BitDepth
	ihdr[9] = r.Layout.colorType()
	// Compression, filter and interlace methods are all 0.
	writeChunk(&buf, "IHDR", ihdr[:])

	if r.Layout == Indexed {
		writeChunk(&buf, "PLTE", r.Palette.bytes())
	}

	data, err := compressRows(r, f)
	if err != nil {
		return nil, err
	}
	writeChunk(&buf, "IDAT", data)
	writeChunk(&buf, "IEND", nil)

	return buf.Bytes(), nil
}

func (r *Raster) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRaster, r.Width, r.Height)
	}
	if r.Layout < Gray || r.Layout > Indexed {
		return fmt.Errorf("%w: unknown layout %d", ErrInvalidRaster, int(r.Layout))
	}
	expected := r.Width * r.Height * r.Layout.Channels()
	if len(r.Pix) != expected {
		return fmt.Errorf("%w: buffer has %d bytes, expected %d", ErrInvalidRaster,
			len(r.Pix), expected)
	}
	if r.Layout != Indexed {
		if r.Palette != nil {
			return fmt.Errorf("%w: palette given for layout %s", ErrInvalidRaster, r.Layout)
		}
		return nil
	}
	if len(r.Palette) == 0 || len(r.Palette) > MaxPaletteSize {
		return fmt.Errorf("%w: palette has %d entries", ErrInvalidRaster, len(r.Palette))
	}
	for i, idx := range r.Pix {
		if int(idx) >= len(r.Palette) {
			return fmt.Errorf("%w: pixel %d has index %d beyond palette of %d", ErrInvalidRaster,
				i, idx, len(r.Palette))
		}
	}
	return nil
}

func compressRows(r *Raster, f Filter) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}

	bpp := r.Layout.Channels()
	rowSize := r.Width * bpp
	prev := make([]byte, rowSize)
	line := make([]byte, rowSize+1)
	line[0] = byte(f)
	for y := 0; y < r.Height; y++ {
		cur := r.Pix[y*rowSize : (y+1)*rowSize]
		filterRow(f, line[1:], cur, prev, bpp)
		if _, err := w.Write(line); err != nil {
			w.Close()
			return nil, err
		}
		prev = cur
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeChunk(w io.Writer, name string, data []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], name)

	crc := crc32.NewIEEE()
	crc.Write(header[4:])
	crc.Write(data)
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())

	w.Write(header[:])
	w.Write(data)
	w.Write(footer[:])
}
