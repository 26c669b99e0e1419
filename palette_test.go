package mandelscope

import "testing"

func TestGrayscalePaletteHasFullWidthAndOpaqueAlpha(t *testing.T) {
	pal := grayscalePalette()
	if len(pal.Pixels) != PaletteWidth {
		t.Fatalf("len(Pixels) = %d, want %d", len(pal.Pixels), PaletteWidth)
	}
	for i, c := range pal.Pixels {
		if c.A != 255 {
			t.Errorf("Pixels[%d].A = %d, want 255", i, c.A)
		}
		if c.R != uint8(i) || c.G != uint8(i) || c.B != uint8(i) {
			t.Errorf("Pixels[%d] = %v, want gray value %d", i, c, uint8(i))
		}
	}
}

func TestPaletteBytesIsTightlyPackedRGBA(t *testing.T) {
	pal := grayscalePalette()
	b := pal.Bytes()
	if len(b) != PaletteWidth*4 {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), PaletteWidth*4)
	}
	// Spot-check pixel 10: R=G=B=10, A=255.
	off := 10 * 4
	if b[off] != 10 || b[off+1] != 10 || b[off+2] != 10 || b[off+3] != 255 {
		t.Errorf("Bytes()[%d:%d+4] = %v, want [10 10 10 255]", off, off, b[off:off+4])
	}
}
