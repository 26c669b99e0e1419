package gputex

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// Texture is a square GPU texture: from CreateTexture, an R16Uint texture
// holding cached escape iteration counts, written by tile-upload and blit
// compute passes and read by the screen pipeline; from
// CreateOutputTexture, the RGBA8 target the resolve pass writes colors to.
type Texture struct {
	ID   core.TextureID
	Size uint32
}

// CreateTexture allocates a size x size R16Uint texture usable as both a
// storage-binding compute target and a texture-binding shader resource.
func (d *Device) CreateTexture(size uint32, label string) (*Texture, error) {
	id, err := core.DeviceCreateTexture(d.ID, &gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              size,
			Height:             size,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR16Uint,
		Usage: gputypes.TextureUsageStorageBinding |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gputex: creating texture %q: %w", label, err)
	}
	return &Texture{ID: id, Size: size}, nil
}

// CreateOutputTexture allocates a size x size RGBA8 texture the resolve
// pass writes colors into, standing in for the window surface when none
// is attached.
func (d *Device) CreateOutputTexture(size uint32, label string) (*Texture, error) {
	id, err := core.DeviceCreateTexture(d.ID, &gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              size,
			Height:             size,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage: gputypes.TextureUsageStorageBinding |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("gputex: creating output texture %q: %w", label, err)
	}
	return &Texture{ID: id, Size: size}, nil
}

// FrontBack holds the double-buffered texture pair the scheduler writes
// into and the blit pass reprojects between.
type FrontBack struct {
	Front *Texture
	Back  *Texture
}

// NewFrontBack creates both textures of a double-buffered pair.
func (d *Device) NewFrontBack(size uint32) (*FrontBack, error) {
	front, err := d.CreateTexture(size, "mandelscope-tile-cache-front")
	if err != nil {
		return nil, err
	}
	back, err := d.CreateTexture(size, "mandelscope-tile-cache-back")
	if err != nil {
		return nil, err
	}
	return &FrontBack{Front: front, Back: back}, nil
}

// Swap exchanges front and back, used after a blit pass has finished
// reprojecting the old front into the new back.
func (fb *FrontBack) Swap() {
	fb.Front, fb.Back = fb.Back, fb.Front
}
