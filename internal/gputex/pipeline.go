package gputex

import (
	"embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/core"
)

//go:embed shaders/*.wgsl
var shaderSources embed.FS

// Pipelines holds the two compute pipelines a Cache dispatches each frame:
// the tile-blit reprojection and the iteration-count-to-color resolve.
// Bind group layouts are derived automatically from the shaders
// (ComputePipelineDescriptor.Layout left zero).
type Pipelines struct {
	Blit    core.ComputePipelineID
	Resolve core.ComputePipelineID
}

// BuildPipelines validates the embedded WGSL sources with naga, registers
// them as shader modules, and creates the blit and resolve compute
// pipelines.
func (d *Device) BuildPipelines() (*Pipelines, error) {
	blitModule, err := d.loadShader("shaders/blit.wgsl", "mandelscope-blit")
	if err != nil {
		return nil, err
	}
	resolveModule, err := d.loadShader("shaders/screen.wgsl", "mandelscope-screen")
	if err != nil {
		return nil, err
	}

	blit, err := core.DeviceCreateComputePipeline(d.ID, &core.ComputePipelineDescriptor{
		Label: "mandelscope-blit-pipeline",
		Compute: core.ProgrammableStage{
			Module:     blitModule,
			EntryPoint: "blit_main",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gputex: creating blit pipeline: %w", err)
	}

	resolve, err := core.DeviceCreateComputePipeline(d.ID, &core.ComputePipelineDescriptor{
		Label: "mandelscope-resolve-pipeline",
		Compute: core.ProgrammableStage{
			Module:     resolveModule,
			EntryPoint: "resolve_main",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gputex: creating resolve pipeline: %w", err)
	}

	return &Pipelines{Blit: blit, Resolve: resolve}, nil
}

// loadShader reads an embedded WGSL source, validates it by compiling
// through naga, and registers it as a shader module on the device. A
// source that fails to compile is an asset-load failure at startup.
func (d *Device) loadShader(path, label string) (core.ShaderModuleID, error) {
	src, err := shaderSources.ReadFile(path)
	if err != nil {
		return core.ShaderModuleID{}, fmt.Errorf("gputex: reading %s: %w", path, err)
	}

	if _, err := naga.Compile(string(src)); err != nil {
		return core.ShaderModuleID{}, fmt.Errorf("%w: %s: %v", ErrShaderCompile, path, err)
	}

	id, err := core.DeviceCreateShaderModule(d.ID, &gputypes.ShaderModuleDescriptor{
		Label:  label,
		Source: gputypes.ShaderSourceWGSL{Code: string(src)},
	})
	if err != nil {
		return core.ShaderModuleID{}, fmt.Errorf("gputex: creating shader module %s: %w", label, err)
	}
	return id, nil
}
