// Package gputex owns the GPU-resident side of the tile cache: the
// double-buffered R16Uint iteration-count texture, the compute pipelines
// that reproject the cache on a viewport transition and resolve it to
// colors, and bootstrap of the device those pipelines run on.
package gputex

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// Device wraps the adapter/device/queue triple a Cache renders through,
// plus the validation-error scope stack the application shell drives
// around each frame.
type Device struct {
	Adapter core.AdapterID
	ID      core.DeviceID
	Queue   core.QueueID

	scopes *core.ErrorScopeManager
	logger *slog.Logger
}

// PushErrorScope opens a validation-error capture scope. The application
// shell pushes one before encoding a frame's commands and pops it once
// idle; a non-empty scope at pop time is fatal.
func (d *Device) PushErrorScope() {
	d.scopes.PushErrorScope(core.ErrorFilterValidation)
}

// PopErrorScope closes the most recently pushed scope and returns the
// captured validation error, if any.
func (d *Device) PopErrorScope() error {
	gpuErr, err := d.scopes.PopErrorScope()
	if err != nil {
		return err
	}
	if gpuErr != nil {
		return gpuErr
	}
	return nil
}

// SetLogger implements the root package's loggerSetter contract.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	d.logger = l
}

func (d *Device) log() *slog.Logger {
	if d.logger == nil {
		return slog.Default()
	}
	return d.logger
}

// Bootstrap requests an adapter and device from instance and returns a
// Device ready for pipeline and texture creation. label is used for the
// device's debug label.
func Bootstrap(instance *core.Instance, label string) (*Device, error) {
	adapterID, err := instance.RequestAdapter(nil)
	if err != nil {
		return nil, fmt.Errorf("gputex: requesting adapter: %w", err)
	}

	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("gputex: reading adapter info: %w", err)
	}
	slog.Default().Info("gputex: adapter selected",
		"name", info.Name, "vendor", info.Vendor, "backend", info.Backend)

	deviceID, err := core.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:          label,
		RequiredLimits: gputypes.DefaultLimits(),
	})
	if err != nil {
		return nil, fmt.Errorf("gputex: requesting device: %w", err)
	}

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		return nil, fmt.Errorf("gputex: getting device queue: %w", err)
	}

	return &Device{
		Adapter: adapterID,
		ID:      deviceID,
		Queue:   queueID,
		scopes:  core.NewErrorScopeManager(),
	}, nil
}

// Close releases the device and adapter.
func (d *Device) Close() error {
	if err := core.DeviceDrop(d.ID); err != nil {
		return fmt.Errorf("gputex: dropping device: %w", err)
	}
	if err := core.AdapterDrop(d.Adapter); err != nil {
		return fmt.Errorf("gputex: dropping adapter: %w", err)
	}
	return nil
}
