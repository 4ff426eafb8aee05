// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/present"
)

// Backend presents gg drawings to one window through Vulkan.
//
// Backend is not safe for concurrent use; drive it from the window event
// loop.
type Backend struct {
	ctx    *DeviceContext
	win    *windowRenderer
	closed bool
}

var _ present.Backend = (*Backend)(nil)

// New returns a backend drawing with the device of ctx. A nil ctx uses
// DefaultContext.
func New(ctx *DeviceContext) *Backend {
	if ctx == nil {
		ctx = DefaultContext()
	}
	return &Backend{ctx: ctx}
}

// Name returns "vulkan".
func (b *Backend) Name() string { return Name }

// WindowCreated prepares rendering for w, replacing any previous window.
func (b *Backend) WindowCreated(w present.Window) error {
	if b.closed {
		return present.ErrClosed
	}
	if w == nil {
		return present.ErrNoWindow
	}
	if b.win != nil {
		b.win.close()
		b.win = nil
	}
	win, err := newWindowRenderer(b.ctx, w)
	if err != nil {
		return err
	}
	b.win = win
	return nil
}

// WindowResized schedules swapchain recreation for the next frame.
func (b *Backend) WindowResized() {
	if b.win != nil {
		b.win.swapchain.invalidate()
	}
}

// WindowClosing releases the window's GPU resources.
func (b *Backend) WindowClosing() {
	if b.win != nil {
		b.win.close()
		b.win = nil
	}
}

// RequestFrame draws and presents one frame. It does nothing without a
// window.
func (b *Backend) RequestFrame(paint present.PaintFunc) {
	if b.win == nil || paint == nil {
		return
	}
	b.win.drawFrame(paint)
}

// Close releases the window, if any. The DeviceContext stays open.
func (b *Backend) Close() error {
	b.WindowClosing()
	b.closed = true
	return nil
}

// windowRenderer holds the per-window half of the backend.
type windowRenderer struct {
	window    present.Window
	surface   gpuSurface
	queue     *SharedQueue
	interop   *ggInterop
	swapchain *swapchain
	future    *frameFuture
	frames    uint64
}

func newWindowRenderer(ctx *DeviceContext, w present.Window) (_ *windowRenderer, err error) {
	surface, err := ctx.createSurface(w)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			surface.Destroy()
		}
	}()

	q, caps, err := ctx.acquireQueue(surface)
	if err != nil {
		return nil, err
	}
	if _, ferr := layoutFor(caps.Formats[0]); ferr != nil {
		q.Release()
		surface.Destroy()
		panic(ferr)
	}

	sc := newSwapchain(surface, q.device, caps)
	q.format = sc.config.Format
	r := &windowRenderer{
		window:    w,
		surface:   surface,
		queue:     q,
		interop:   ctx.newInterop(q),
		swapchain: sc,
		future:    newFrameFuture(q.device.Queue()),
	}
	r.prepare(w.InnerSize())
	return r, nil
}

// direct reports whether gg may resolve straight into swapchain images.
func (r *windowRenderer) direct() bool {
	return r.interop.shared && !r.interop.abandoned && gg.AcceleratorCanRenderDirect()
}

// close tears the window down in dependency order: gg's GPU context,
// then in-flight work and the swapchain, then the queue reference.
func (r *windowRenderer) close() {
	r.interop.abandon()
	r.future.wait(r.queue.device)
	r.swapchain.destroy()
	r.queue.Release()
}
