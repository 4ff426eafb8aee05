// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

// halMinImageCount is the image count reported to the swapchain. The HAL
// does not expose the surface minimum and builds one image more than the
// driver minimum, so the real count is only known from acquired images.
const halMinImageCount = 2

// openHALInstance creates an instance of a registered HAL backend.
func openHALInstance(variant gputypes.Backend) (gpuInstance, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %v", hal.ErrBackendNotFound, variant)
	}
	inst, err := backend.CreateInstance(&hal.InstanceDescriptor{
		Backends: gputypes.Backends(1) << variant,
	})
	if err != nil {
		return nil, fmt.Errorf("create %v instance: %w", variant, err)
	}
	return &halInstance{raw: inst}, nil
}

type halInstance struct {
	raw hal.Instance
}

func (i *halInstance) CreateSurface(display, window uintptr) (gpuSurface, error) {
	s, err := i.raw.CreateSurface(display, window)
	if err != nil {
		return nil, err
	}
	return &halSurface{raw: s}, nil
}

func (i *halInstance) Adapters(hint gpuSurface) []adapterInfo {
	var raw hal.Surface
	if s, ok := hint.(*halSurface); ok && s != nil {
		raw = s.raw
	}
	exposed := i.raw.EnumerateAdapters(raw)
	out := make([]adapterInfo, 0, len(exposed))
	for _, e := range exposed {
		out = append(out, adapterInfo{
			Name:    e.Info.Name,
			Type:    e.Info.DeviceType,
			Adapter: &halAdapter{exposed: e},
		})
	}
	return out
}

func (i *halInstance) Destroy() { i.raw.Destroy() }

type halAdapter struct {
	exposed hal.ExposedAdapter
}

func (a *halAdapter) SurfaceCapabilities(s gpuSurface) *surfaceCapabilities {
	hs, ok := s.(*halSurface)
	if !ok {
		return nil
	}
	caps := a.exposed.Adapter.SurfaceCapabilities(hs.raw)
	if caps == nil {
		return nil
	}
	return &surfaceCapabilities{
		Formats:       caps.Formats,
		PresentModes:  caps.PresentModes,
		AlphaModes:    caps.AlphaModes,
		MinImageCount: halMinImageCount,
	}
}

// Open opens a logical device and wraps it as a *wgpu.Device, the type
// gg's accelerator expects from a shared device provider. The wgpu
// device owns the HAL device and queue from here on.
func (a *halAdapter) Open() (gpuDevice, error) {
	limits := gputypes.DefaultLimits()
	od, err := a.exposed.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	dev, err := wgpu.NewDeviceFromHAL(od.Device, od.Queue, gputypes.Features(0), limits, "present")
	if err != nil {
		od.Device.Destroy()
		return nil, fmt.Errorf("wrap device: %w", err)
	}
	d := &halDevice{
		dev: dev,
		info: gpucontext.AdapterInfo{
			Name: a.exposed.Info.Name,
			Type: adapterType(a.exposed.Info.DeviceType),
		},
	}
	d.queue = &halQueue{dev: dev, queue: dev.Queue(), raw: od.Queue}
	return d, nil
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

type halDevice struct {
	dev   *wgpu.Device
	queue *halQueue
	info  gpucontext.AdapterInfo
}

func (d *halDevice) Queue() gpuQueue                     { return d.queue }
func (d *halDevice) Handle() gpucontext.Device           { return d.dev }
func (d *halDevice) QueueHandle() gpucontext.Queue       { return d.queue.queue }
func (d *halDevice) AdapterInfo() gpucontext.AdapterInfo { return d.info }
func (d *halDevice) WaitIdle() error                     { return d.dev.WaitIdle() }

// Destroy releases the wgpu device, which waits for the GPU and then
// destroys the HAL device and queue.
func (d *halDevice) Destroy() { d.dev.Release() }

func (d *halDevice) CreateView(img surfaceImage, format gputypes.TextureFormat) (imageView, error) {
	hi, ok := img.(*halImage)
	if !ok {
		return nil, fmt.Errorf("create view: foreign image %T", img)
	}
	raw, err := d.dev.HalDevice().CreateTextureView(hi.raw, &hal.TextureViewDescriptor{
		Label:           "present swapchain view",
		Format:          format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create view: %w", err)
	}
	return &halView{view: wgpu.NewTextureViewFromHAL(raw, d.dev)}, nil
}

type halView struct {
	view *wgpu.TextureView
}

// Destroy defers destruction of the HAL view until submissions that
// reference it have completed.
func (v *halView) Destroy() { v.view.Release() }

func (v *halView) Handle() gpucontext.TextureView {
	return gpucontext.NewTextureView(unsafe.Pointer(v.view))
}

type halQueue struct {
	dev   *wgpu.Device
	queue *wgpu.Queue
	raw   hal.Queue
}

func (q *halQueue) WriteImage(img surfaceImage, data []byte, bytesPerRow, width, height uint32) error {
	hi, ok := img.(*halImage)
	if !ok {
		return fmt.Errorf("write image: foreign image %T", img)
	}
	return q.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: hi.tex, Aspect: gputypes.TextureAspectAll},
		data,
		&wgpu.ImageDataLayout{BytesPerRow: bytesPerRow, RowsPerImage: height},
		&wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
}

// Submit flushes pending uploads and a barrier that leaves the image in
// render-attachment state for presentation. On Vulkan the HAL binds the
// swapchain acquire semaphore to this submission.
func (q *halQueue) Submit(img surfaceImage) (uint64, error) {
	hi, ok := img.(*halImage)
	if !ok {
		return 0, fmt.Errorf("submit: foreign image %T", img)
	}
	enc, err := q.dev.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "present frame"})
	if err != nil {
		return 0, fmt.Errorf("submit: create encoder: %w", err)
	}
	enc.TransitionTextures([]wgpu.TextureBarrier{{
		Texture: hi.tex,
		Range: wgpu.TextureRange{
			Aspect:          gputypes.TextureAspectAll,
			MipLevelCount:   1,
			ArrayLayerCount: 1,
		},
		Usage: wgpu.TextureUsageTransition{
			OldUsage: hi.raw.CurrentUsage(),
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	cmd, err := enc.Finish()
	if err != nil {
		return 0, fmt.Errorf("submit: finish: %w", err)
	}
	idx, err := q.queue.Submit(cmd)
	if err != nil {
		cmd.Release()
		return 0, err
	}
	return idx, nil
}

func (q *halQueue) Completed() uint64 { return q.queue.Poll() }

func (q *halQueue) Present(s gpuSurface, img surfaceImage) error {
	hs, ok := s.(*halSurface)
	if !ok {
		return fmt.Errorf("present: foreign surface %T", s)
	}
	hi, ok := img.(*halImage)
	if !ok {
		return fmt.Errorf("present: foreign image %T", img)
	}
	return q.raw.Present(hs.raw, hi.raw, nil)
}

type halSurface struct {
	raw    hal.Surface
	dev    *halDevice
	format gputypes.TextureFormat
}

func (s *halSurface) Configure(dev gpuDevice, cfg surfaceConfig) error {
	hd, ok := dev.(*halDevice)
	if !ok {
		return fmt.Errorf("configure: foreign device %T", dev)
	}
	err := s.raw.Configure(hd.dev.HalDevice(), &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopyDst,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	if err != nil {
		return err
	}
	s.dev = hd
	s.format = cfg.Format
	return nil
}

func (s *halSurface) Unconfigure(dev gpuDevice) {
	if hd, ok := dev.(*halDevice); ok {
		s.raw.Unconfigure(hd.dev.HalDevice())
	}
	s.dev = nil
}

func (s *halSurface) Acquire() (acquiredImage, error) {
	if s.dev == nil {
		return acquiredImage{}, hal.ErrSurfaceOutdated
	}
	acq, err := s.raw.AcquireTexture(nil)
	if err != nil {
		return acquiredImage{}, err
	}
	img := &halImage{
		raw: acq.Texture,
		// The wrapper is never released: the swapchain owns the image.
		tex: wgpu.NewTextureFromHAL(acq.Texture, s.dev.dev, s.format),
	}
	return acquiredImage{Image: img, Suboptimal: acq.Suboptimal}, nil
}

func (s *halSurface) Discard(img surfaceImage) {
	if hi, ok := img.(*halImage); ok {
		s.raw.DiscardTexture(hi.raw)
	}
}

func (s *halSurface) Destroy() { s.raw.Destroy() }

type halImage struct {
	raw hal.SurfaceTexture
	tex *wgpu.Texture
}

func (i *halImage) NativeHandle() uintptr { return i.raw.NativeHandle() }
