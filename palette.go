package mandelscope

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// PaletteWidth is the palette texture's required pixel width.
const PaletteWidth = 256

// Palette is a row of RGBA colors mapping iteration-count bands to colors,
// uploaded as a 1D Rgba8Unorm texture.
type Palette struct {
	Pixels []color.RGBA
}

// LoadPalette decodes a PNG palette image from r. If its dimensions are
// not exactly PaletteWidth x 1, it is resampled with a Catmull-Rom filter
// rather than rejected outright.
func LoadPalette(r io.Reader) (*Palette, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding palette PNG: %v", ErrAssetLoad, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != PaletteWidth || bounds.Dy() != 1 {
		resampled := image.NewRGBA(image.Rect(0, 0, PaletteWidth, 1))
		xdraw.CatmullRom.Scale(resampled, resampled.Bounds(), img, bounds, xdraw.Over, nil)
		img = resampled
	}

	pal := &Palette{Pixels: make([]color.RGBA, PaletteWidth)}
	for x := 0; x < PaletteWidth; x++ {
		cr, cg, cb, ca := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y).RGBA()
		pal.Pixels[x] = color.RGBA{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8), A: uint8(ca >> 8)}
	}
	return pal, nil
}

// Bytes returns the palette as a tightly packed RGBA8 byte slice, ready
// for a QueueWriteTexture call against a 256x1 Rgba8Unorm texture.
func (p *Palette) Bytes() []byte {
	buf := make([]byte, 0, len(p.Pixels)*4)
	for _, c := range p.Pixels {
		buf = append(buf, c.R, c.G, c.B, c.A)
	}
	return buf
}

// grayscalePalette builds the built-in fallback palette used when no
// WithPaletteFile path is configured, so a bare NewExplorer call still
// renders instead of failing the asset load at startup.
func grayscalePalette() *Palette {
	pal := &Palette{Pixels: make([]color.RGBA, PaletteWidth)}
	for i := range pal.Pixels {
		v := uint8(i)
		pal.Pixels[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return pal
}
