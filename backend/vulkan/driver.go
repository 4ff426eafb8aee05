// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// The interfaces below are the slice of the GPU driver this backend uses.
// hal.go implements them on top of gogpu/wgpu/hal; tests use fakes.

type gpuInstance interface {
	CreateSurface(display, window uintptr) (gpuSurface, error)
	// Adapters lists physical devices able to present to hint.
	Adapters(hint gpuSurface) []adapterInfo
	Destroy()
}

type adapterInfo struct {
	Name    string
	Type    gputypes.DeviceType
	Adapter gpuAdapter
}

type gpuAdapter interface {
	// SurfaceCapabilities returns nil when the adapter cannot present
	// to s.
	SurfaceCapabilities(s gpuSurface) *surfaceCapabilities
	Open() (gpuDevice, error)
}

type surfaceCapabilities struct {
	Formats       []gputypes.TextureFormat
	PresentModes  []gputypes.PresentMode
	AlphaModes    []gputypes.CompositeAlphaMode
	MinImageCount uint32
}

type gpuDevice interface {
	Queue() gpuQueue
	// CreateView creates a render-attachment view of a swapchain image.
	CreateView(img surfaceImage, format gputypes.TextureFormat) (imageView, error)
	WaitIdle() error
	// Handle and QueueHandle are the objects handed to gg for sharing.
	Handle() gpucontext.Device
	QueueHandle() gpucontext.Queue
	AdapterInfo() gpucontext.AdapterInfo
	Destroy()
}

type gpuQueue interface {
	// WriteImage uploads rows of tightly packed 4-byte pixels, each row
	// starting at a multiple of bytesPerRow.
	WriteImage(img surfaceImage, data []byte, bytesPerRow, width, height uint32) error
	// Submit records the frame's final barrier for img and submits it
	// after all previously queued work. It returns the submission index.
	Submit(img surfaceImage) (uint64, error)
	// Completed returns the highest finished submission index.
	Completed() uint64
	Present(s gpuSurface, img surfaceImage) error
}

type gpuSurface interface {
	Configure(dev gpuDevice, cfg surfaceConfig) error
	Unconfigure(dev gpuDevice)
	// Acquire blocks until the presentation engine yields an image.
	Acquire() (acquiredImage, error)
	Discard(img surfaceImage)
	Destroy()
}

// surfaceImage is one presentable image of the swapchain. Its native
// handle identifies the image across acquisitions.
type surfaceImage interface {
	NativeHandle() uintptr
}

type acquiredImage struct {
	Image      surfaceImage
	Suboptimal bool
}

// imageView is a per-image view that gg renders into directly.
type imageView interface {
	Destroy()
	Handle() gpucontext.TextureView
}

type surfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	PresentMode gputypes.PresentMode
	AlphaMode   gputypes.CompositeAlphaMode
	ImageCount  uint32
}

// isStale reports whether err means the swapchain no longer matches the
// surface and must be recreated.
func isStale(err error) bool {
	return errors.Is(err, hal.ErrSurfaceOutdated) || errors.Is(err, hal.ErrSurfaceLost)
}
