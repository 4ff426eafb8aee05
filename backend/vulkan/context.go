// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/present"
)

func slogger() *slog.Logger { return present.Logger() }

// DeviceContext owns the one GPU device and queue shared by every window
// renderer created from it. The device is chosen when the first window
// arrives, using that window's surface to filter candidates.
//
// DeviceContext is safe for concurrent use.
type DeviceContext struct {
	mu sync.Mutex

	openInstance func() (gpuInstance, error)
	accel        accelerator

	instance gpuInstance
	adapter  adapterInfo
	device   gpuDevice
	refs     int
	interops int
	shared   bool
	closed   bool
}

// accelerator is the process-wide 2D GPU context of gg.
type accelerator struct {
	share   func(gpucontext.DeviceProvider) error
	abandon func()
}

var ggAccelerator = accelerator{
	share:   gg.SetAcceleratorDeviceProvider,
	abandon: gg.CloseAccelerator,
}

// NewDeviceContext returns a context that opens the Vulkan HAL lazily.
func NewDeviceContext() *DeviceContext {
	return newDeviceContext(func() (gpuInstance, error) {
		return openHALInstance(gputypes.BackendVulkan)
	})
}

func newDeviceContext(open func() (gpuInstance, error)) *DeviceContext {
	return &DeviceContext{openInstance: open, accel: ggAccelerator}
}

var defaultContext = sync.OnceValue(NewDeviceContext)

// DefaultContext returns the context used by backends created through
// the present registry.
func DefaultContext() *DeviceContext { return defaultContext() }

// Adapter returns the name of the selected GPU, or "" before the first
// window.
func (c *DeviceContext) Adapter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adapter.Name
}

func (c *DeviceContext) createSurface(w present.Window) (gpuSurface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, present.ErrClosed
	}
	if c.instance == nil {
		inst, err := c.openInstance()
		if err != nil {
			return nil, fmt.Errorf("vulkan: %w", err)
		}
		c.instance = inst
	}
	display, window := w.SurfaceHandle()
	s, err := c.instance.CreateSurface(display, window)
	if err != nil {
		return nil, fmt.Errorf("vulkan: create surface: %w", err)
	}
	return s, nil
}

// acquireQueue returns a new reference to the shared queue together with
// the surface capabilities of the selected device. The first call picks
// and opens the device.
func (c *DeviceContext) acquireQueue(surface gpuSurface) (*SharedQueue, *surfaceCapabilities, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, nil, present.ErrClosed
	}

	if c.device == nil {
		candidates := c.instance.Adapters(surface)
		best, ok := selectAdapter(candidates, surface)
		if !ok {
			return nil, nil, fmt.Errorf("vulkan: %w: %d adapters, none can present to the window",
				present.ErrNoSuitableDevice, len(candidates))
		}
		dev, err := best.Adapter.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("vulkan: %w: %s: %w", present.ErrNoSuitableDevice, best.Name, err)
		}
		c.adapter = best
		c.device = dev
		slogger().Info("vulkan: using GPU adapter", "name", best.Name, "type", best.Type.String())
	}

	caps := c.adapter.Adapter.SurfaceCapabilities(surface)
	if !presentable(caps) {
		return nil, nil, fmt.Errorf("vulkan: %w: %s cannot present to this window",
			present.ErrNoSuitableDevice, c.adapter.Name)
	}
	c.refs++
	return &SharedQueue{ctx: c, device: c.device, info: c.device.AdapterInfo()}, caps, nil
}

func (c *DeviceContext) releaseQueue() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs--
}

// Close destroys the device and instance. All renderers using the
// context must have been closed; violating that order panics, since gg
// may still hold GPU objects created from the device.
func (c *DeviceContext) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.interops > 0 {
		panic(fmt.Sprintf("vulkan: device context closed with %d live gg GPU contexts", c.interops))
	}
	if c.refs > 0 {
		panic(fmt.Sprintf("vulkan: device context closed with %d live queue references", c.refs))
	}
	c.closed = true
	if c.device != nil {
		if err := c.device.WaitIdle(); err != nil {
			slogger().Warn("vulkan: wait idle before destroy", "err", err)
		}
		c.device.Destroy()
		c.device = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
}

// deviceRank orders device types from most to least preferred.
func deviceRank(t gputypes.DeviceType) int {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return 0
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	case gputypes.DeviceTypeVirtualGPU:
		return 2
	case gputypes.DeviceTypeCPU:
		return 3
	default:
		return 4
	}
}

// selectAdapter returns the best ranked adapter that can present to
// surface. Ties keep enumeration order.
func selectAdapter(candidates []adapterInfo, surface gpuSurface) (adapterInfo, bool) {
	var best adapterInfo
	found := false
	for _, a := range candidates {
		if a.Adapter == nil || !presentable(a.Adapter.SurfaceCapabilities(surface)) {
			continue
		}
		if !found || deviceRank(a.Type) < deviceRank(best.Type) {
			best, found = a, true
		}
	}
	return best, found
}

func presentable(caps *surfaceCapabilities) bool {
	return caps != nil && len(caps.Formats) > 0
}

// SharedQueue is one window's reference to the context's device and
// queue. It implements gpucontext.DeviceProvider so gg's accelerator can
// render with the same device.
type SharedQueue struct {
	ctx      *DeviceContext
	device   gpuDevice
	info     gpucontext.AdapterInfo
	format   gputypes.TextureFormat
	released bool
}

var _ gpucontext.DeviceProvider = (*SharedQueue)(nil)

// Device returns the shared *wgpu.Device.
func (q *SharedQueue) Device() gpucontext.Device { return q.device.Handle() }

// Queue returns the shared *wgpu.Queue.
func (q *SharedQueue) Queue() gpucontext.Queue { return q.device.QueueHandle() }

// SurfaceFormat returns the color format of the window's swapchain.
func (q *SharedQueue) SurfaceFormat() gputypes.TextureFormat { return q.format }

// Adapter returns nil; the device is opened below the wgpu adapter layer.
// Software adapters are never offered to gg, see ggInterop.
func (q *SharedQueue) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo describes the selected GPU.
func (q *SharedQueue) AdapterInfo() gpucontext.AdapterInfo { return q.info }

// Release drops this reference. Further calls are no-ops.
func (q *SharedQueue) Release() {
	if q.released {
		return
	}
	q.released = true
	q.ctx.releaseQueue()
}
