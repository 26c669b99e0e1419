package gputex

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/mandelscope/mandelscope/internal/scheduler"
)

// Cache is the GPU-resident half of the tile cache: it owns the
// double-buffered texture pair and pipelines, and drives the scheduler
// each frame.
type Cache struct {
	device    *Device
	textures  *FrontBack
	pipelines *Pipelines
	sched     *scheduler.Scheduler
	palette   *paletteTexture

	logger *slog.Logger
}

// NewCache builds a Cache over a fresh double-buffered texture pair and
// compute pipelines, driven by sched.
func NewCache(device *Device, textureSize uint32, sched *scheduler.Scheduler) (*Cache, error) {
	textures, err := device.NewFrontBack(textureSize)
	if err != nil {
		return nil, fmt.Errorf("gputex: allocating tile cache textures: %w", err)
	}
	pipelines, err := device.BuildPipelines()
	if err != nil {
		return nil, fmt.Errorf("gputex: building pipelines: %w", err)
	}
	return &Cache{device: device, textures: textures, pipelines: pipelines, sched: sched}, nil
}

// SetLogger implements the root package's loggerSetter contract.
func (c *Cache) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	c.logger = l
	c.sched.SetLogger(l)
}

func (c *Cache) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Update advances the scheduler (which may spawn tile compute jobs) and
// returns immediately; tile results arrive asynchronously via onTileReady.
func (c *Cache) Update(viewport scheduler.Rect, windowW, windowH float64, focus [2]float64, onTileReady func(int)) {
	c.sched.Update(viewport, windowW, windowH, focus, onTileReady)
}

// Render performs one frame's GPU work: reproject on a pending viewport
// transition, upload any tiles the scheduler finished since the last
// frame, then resolve the front texture to out. The blit runs before any
// upload so fresh tiles land in the already-reprojected front texture.
func (c *Cache) Render(out *Texture, maxIterations, paletteSize uint32) error {
	if c.sched.TakeBlitPending() {
		if err := c.runBlit(); err != nil {
			return err
		}
		c.textures.Swap()
	}

	for _, tile := range c.sched.TakeWaitingUpload() {
		if err := c.uploadTile(tile); err != nil {
			c.log().Warn("gputex: tile upload failed", "tile", tile.Index, "error", err)
		}
		tile.Buffer.Release()
	}

	return c.runResolve(out, maxIterations, paletteSize)
}

// uploadTile copies a computed tile's pixel buffer into the front texture
// at its texture-space rectangle.
func (c *Cache) uploadTile(tile scheduler.ReadyTile) error {
	bytesPerRow := tile.TexRect.W * 2 // sizeof(uint16)
	return core.QueueWriteTexture(
		c.device.Queue,
		&gputypes.ImageCopyTexture{
			Texture:  uintptr(c.textures.Front.ID.Raw()),
			MipLevel: 0,
			Origin:   gputypes.Origin3D{X: tile.TexRect.X, Y: tile.TexRect.Y, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		tile.Buffer.Bytes(),
		&gputypes.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: tile.TexRect.H,
		},
		&gputypes.Extent3D{Width: tile.TexRect.W, Height: tile.TexRect.H, DepthOrArrayLayers: 1},
	)
}

// runBlit dispatches the blit compute pipeline to reproject the current
// front texture into the back texture under the new cache rectangle, then
// the caller swaps front/back so the reprojected data becomes the new
// front.
func (c *Cache) runBlit() error {
	prev, next := c.sched.PrevCache(), c.sched.Cache()
	params := packBlitParams(blitTransform(prev, next), c.textures.Front.Size)
	return c.dispatch("mandelscope-blit-pass", c.pipelines.Blit, c.textures.Front.Size, func() {
		// Binding params plus the src/dst texture views is left unwired:
		// the compute-pass recorder is not reachable from
		// DeviceCreateCommandEncoder at this version.
		_ = params
	})
}

// blitTransform builds the affine next-uv -> prev-uv map the blit shader
// applies, so a fractal point under the new cache rectangle samples the
// texel that held it under the previous one. Row-major 2x3:
// [a b c; d e f].
func blitTransform(prev, next scheduler.Rect) [6]float64 {
	return [6]float64{
		next.W / prev.W, 0, (next.X - prev.X) / prev.W,
		0, next.H / prev.H, (next.Y - prev.Y) / prev.H,
	}
}

// packBlitParams lays the transform and texture size out exactly as the
// blit shader's BlitParams uniform block expects: six f32 coefficients,
// the texture size, and one u32 of padding.
func packBlitParams(m [6]float64, textureSize uint32) []byte {
	buf := make([]byte, 0, 32)
	for _, v := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
	}
	buf = binary.LittleEndian.AppendUint32(buf, textureSize)
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	return buf
}

// runResolve dispatches the resolve compute pipeline, turning the front
// iteration-count texture into colors in out via the active palette.
func (c *Cache) runResolve(out *Texture, maxIterations, paletteSize uint32) error {
	params := packScreenParams(maxIterations, paletteSize, out.Size)
	return c.dispatch("mandelscope-resolve-pass", c.pipelines.Resolve, out.Size, func() {
		_ = params
	})
}

// packScreenParams lays out the resolve shader's ScreenParams uniform
// block: max iterations, palette size, texture size, one u32 of padding.
func packScreenParams(maxIterations, paletteSize, textureSize uint32) []byte {
	buf := make([]byte, 0, 16)
	buf = binary.LittleEndian.AppendUint32(buf, maxIterations)
	buf = binary.LittleEndian.AppendUint32(buf, paletteSize)
	buf = binary.LittleEndian.AppendUint32(buf, textureSize)
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	return buf
}

// dispatch records and submits a single compute pass covering a
// size x size texture in 8x8 workgroups. Pipeline resolution is validated
// (GetComputePipeline) the way a real recording would need it; the actual
// SetPipeline/SetBindGroup/Dispatch calls on the recorded pass are blocked
// on upstream: core.ComputePassEncoder is reachable only from a command
// encoder variant DeviceCreateCommandEncoder does not yet return.
func (c *Cache) dispatch(label string, pipelineID core.ComputePipelineID, size uint32, bindParams func()) error {
	if _, err := core.GetComputePipeline(pipelineID); err != nil {
		return fmt.Errorf("gputex: %s: resolving pipeline: %w", label, err)
	}
	bindParams()

	encoderID, err := core.DeviceCreateCommandEncoder(c.device.ID, label)
	if err != nil {
		return fmt.Errorf("gputex: %s: creating command encoder: %w", label, err)
	}

	cmdBufferID, err := core.CommandEncoderFinish(encoderID)
	if err != nil {
		return fmt.Errorf("gputex: %s: finishing command buffer: %w", label, err)
	}

	if err := core.QueueSubmit(c.device.Queue, []core.CommandBufferID{cmdBufferID}); err != nil {
		return fmt.Errorf("gputex: %s: submitting queue: %w", label, err)
	}

	groups := (size + 7) / 8
	c.log().Debug("gputex: compute pass submitted", "label", label, "workgroups_per_axis", groups)
	return nil
}
