package pngshrink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// Offsets into a PNG file whose first chunk is IHDR.
const (
	ihdrNameOffset      = 12
	ihdrBitDepthOffset  = 24
	ihdrColorTypeOffset = 25
	ihdrEnd             = 33
)

// Decode decodes a PNG file into a raster with 8 bits per
// channel.
//
// Palette images are expanded to RGB, or to RGBA if the
// palette has transparency. Transparency chunks on gray or
// RGB images become an alpha channel. Low bit-depth gray
// is scaled up to 8 bits.
func Decode(data []byte) (*Raster, error) {
	if len(data) < ihdrEnd || !bytes.Equal(data[:len(pngSignature)], pngSignature) ||
		string(data[ihdrNameOffset:ihdrNameOffset+4]) != "IHDR" {
		return nil, ErrNotPNG
	}
	if depth := data[ihdrBitDepthOffset]; depth == 16 {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedDepth, depth)
	}
	colorType := data[ihdrColorTypeOffset]

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	b := img.Bounds()
	res := &Raster{Width: b.Dx(), Height: b.Dy()}

	switch img := img.(type) {
	case *image.Gray:
		res.Layout = Gray
		res.Pix = packRows(img.Pix, img.Stride, b.Dx(), b.Dy(), 1, 1)
	case *image.RGBA:
		// Only produced for opaque truecolor images.
		res.Layout = RGB
		res.Pix = packRows(img.Pix, img.Stride, b.Dx(), b.Dy(), 4, 3)
	case *image.NRGBA:
		if colorType == 0 || colorType == 4 {
			res.Layout = GrayAlpha
			res.Pix = packGrayAlpha(img)
		} else {
			res.Layout = RGBA
			res.Pix = packRows(img.Pix, img.Stride, b.Dx(), b.Dy(), 4, 4)
		}
	case *image.Paletted:
		res.Layout, res.Pix = expandPaletted(img)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedImage, img)
	}
	return res, nil
}

// packRows copies the first keep bytes of every srcBPP-byte
// pixel into a tightly packed buffer.
func packRows(pix []byte, stride, width, height, srcBPP, keep int) []byte {
	res := make([]byte, 0, width*height*keep)
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width*srcBPP]
		if srcBPP == keep {
			res = append(res, row...)
			continue
		}
		for x := 0; x < width; x++ {
			res = append(res, row[x*srcBPP:x*srcBPP+keep]...)
		}
	}
	return res
}

func packGrayAlpha(img *image.NRGBA) []byte {
	b := img.Bounds()
	res := make([]byte, 0, b.Dx()*b.Dy()*2)
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			res = append(res, row[x*4], row[x*4+3])
		}
	}
	return res
}

func expandPaletted(img *image.Paletted) (Layout, []byte) {
	table := make([]color.NRGBA, len(img.Palette))
	layout := RGB
	for i, c := range img.Palette {
		table[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		if table[i].A != 0xff {
			layout = RGBA
		}
	}

	b := img.Bounds()
	bpp := layout.Channels()
	res := make([]byte, 0, b.Dx()*b.Dy()*bpp)
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()]
		for _, idx := range row {
			c := table[idx]
			res = append(res, c.R, c.G, c.B)
			if layout == RGBA {
				res = append(res, c.A)
			}
		}
	}
	return layout, res
}
