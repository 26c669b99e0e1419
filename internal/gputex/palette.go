package gputex

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// PaletteWidth matches the root package's PaletteWidth; duplicated as an
// untyped constant here to avoid an import cycle (gputex cannot import the
// root package, which imports gputex to build Explorer).
const PaletteWidth = 256

// paletteTexture is the 1D Rgba8Unorm palette the screen resolve pipeline
// samples.
type paletteTexture struct {
	ID core.TextureID
}

// createPaletteTexture allocates the 1D palette texture. The linear
// clamp-to-edge sampler is not wired to an actual core.SamplerID: the
// pinned core API registers samplers in its Hub but exposes no
// DeviceCreateSampler entry point, the same class of gap as the
// compute-pass recording noted in cache.go. The sampling mode itself is
// still expressed in screen.wgsl's textureSampleLevel call.
func (d *Device) createPaletteTexture() (*paletteTexture, error) {
	id, err := core.DeviceCreateTexture(d.ID, &gputypes.TextureDescriptor{
		Label: "mandelscope-palette",
		Size: gputypes.Extent3D{
			Width:              PaletteWidth,
			Height:             1,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension1D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gputex: creating palette texture: %w", err)
	}
	return &paletteTexture{ID: id}, nil
}

// SetPalette uploads a 256x1 RGBA8 palette (root package's Palette.Bytes)
// into the palette texture the resolve pass samples, creating it lazily on
// first call.
func (c *Cache) SetPalette(rgba []byte) error {
	if len(rgba) != PaletteWidth*4 {
		return fmt.Errorf("gputex: palette must be %d bytes (256x1 RGBA), got %d", PaletteWidth*4, len(rgba))
	}
	if c.palette == nil {
		pal, err := c.device.createPaletteTexture()
		if err != nil {
			return err
		}
		c.palette = pal
	}

	return core.QueueWriteTexture(
		c.device.Queue,
		&gputypes.ImageCopyTexture{
			Texture:  uintptr(c.palette.ID.Raw()),
			MipLevel: 0,
			Origin:   gputypes.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		rgba,
		&gputypes.TextureDataLayout{Offset: 0, BytesPerRow: PaletteWidth * 4, RowsPerImage: 1},
		&gputypes.Extent3D{Width: PaletteWidth, Height: 1, DepthOrArrayLayers: 1},
	)
}
