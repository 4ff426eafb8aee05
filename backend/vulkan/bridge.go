// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"errors"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/render"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/present"
)

// rowAlignment is the copy row pitch alignment required by WriteTexture.
const rowAlignment = 256

// renderTarget is the drawable bound to one swapchain image slot. The gg
// context and its pixmap live as long as the swapchain generation.
type renderTarget struct {
	index      int
	generation uint64
	width      uint32
	height     uint32
	layout     pixelLayout
	unmul      bool

	pixmap      *gg.Pixmap
	cc          *gg.Context
	upload      []byte
	bytesPerRow uint32

	// view of the swapchain image last bound to this slot, used when gg
	// renders directly on the GPU.
	image uintptr
	view  imageView
}

func newRenderTarget(index int, generation uint64, cfg surfaceConfig) *renderTarget {
	layout := mustLayout(cfg.Format)
	pm := gg.NewPixmap(int(cfg.Width), int(cfg.Height))
	bpr := alignUp(cfg.Width*4, rowAlignment)
	return &renderTarget{
		index:       index,
		generation:  generation,
		width:       cfg.Width,
		height:      cfg.Height,
		layout:      layout,
		unmul:       cfg.AlphaMode == gputypes.CompositeAlphaModeUnpremultiplied,
		pixmap:      pm,
		cc:          gg.NewContext(int(cfg.Width), int(cfg.Height), gg.WithPixmap(pm)),
		bytesPerRow: bpr,
	}
}

func alignUp(v, a uint32) uint32 { return (v + a - 1) / a * a }

// bind returns a view of img, reusing the cached one when the slot still
// holds the same image.
func (t *renderTarget) bind(dev gpuDevice, img surfaceImage) (imageView, error) {
	h := img.NativeHandle()
	if t.view != nil && t.image == h {
		return t.view, nil
	}
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
	v, err := dev.CreateView(img, t.layout.format)
	if err != nil {
		return nil, err
	}
	t.image, t.view = h, v
	return v, nil
}

// encode converts the pixmap into the upload buffer in swapchain layout.
func (t *renderTarget) encode() []byte {
	n := int(t.bytesPerRow) * int(t.height)
	if cap(t.upload) < n {
		t.upload = make([]byte, n)
	}
	t.upload = t.upload[:n]
	t.layout.encodeRows(t.upload, t.pixmap.Data(), int(t.width), int(t.height), int(t.bytesPerRow), t.unmul)
	return t.upload
}

func (t *renderTarget) destroy() {
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
	if t.cc != nil {
		if err := t.cc.Close(); err != nil {
			slogger().Debug("vulkan: close gg context", "target", t.index, "err", err)
		}
		t.cc = nil
	}
	t.pixmap = nil
	t.upload = nil
}

// frameSurface wraps an acquired swapchain image as a gg drawing surface
// for one frame. The canvas is pre-scaled so painters draw in logical
// units.
type frameSurface struct {
	target  *renderTarget
	image   surfaceImage
	view    imageView
	surface *render.SurfaceTarget
	logical present.LogicalSize
}

func newFrameSurface(t *renderTarget, img surfaceImage, view imageView, scale float64) *frameSurface {
	physical := present.PhysicalSize{Width: t.width, Height: t.height}
	logical := physical.ToLogical(scale)
	sx, sy := present.CanvasScale(physical, logical)
	t.cc.Identity()
	t.cc.Scale(sx, sy)

	var rv render.TextureView
	if view != nil {
		rv = view
	}
	return &frameSurface{
		target:  t,
		image:   img,
		view:    view,
		surface: render.NewSurfaceTarget(int(t.width), int(t.height), t.layout.format, rv),
		logical: logical,
	}
}

// Context returns the gg drawing context of the frame.
func (f *frameSurface) Context() *gg.Context { return f.target.cc }

// paint runs p and restores the context's state stack afterwards.
func (f *frameSurface) paint(p present.PaintFunc) {
	cc := f.target.cc
	cc.Push()
	defer cc.Pop()
	p(cc, f.logical)
}

// flush makes the drawn frame visible in the swapchain image, either by
// letting gg resolve into the image view or by uploading the CPU pixmap.
func (f *frameSurface) flush(q gpuQueue) error {
	cc := f.target.cc
	if f.view != nil {
		w, h := uint32(f.surface.Width()), uint32(f.surface.Height())
		err := cc.FlushGPUWithView(f.view.Handle(), w, h)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gg.ErrFallbackToCPU) {
			slogger().Warn("vulkan: direct GPU flush failed, uploading pixmap", "err", err)
		}
	}
	if err := cc.FlushGPU(); err != nil {
		slogger().Debug("vulkan: gg flush to pixmap", "err", err)
	}
	data := f.target.encode()
	return q.WriteImage(f.image, data, f.target.bytesPerRow, f.target.width, f.target.height)
}
