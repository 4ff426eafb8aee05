// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/gogpu/present"
)

// maxAcquireAttempts bounds how often one frame retries after finding the
// swapchain stale.
const maxAcquireAttempts = 2

// drawFrame renders and presents one frame. Failures are logged and end
// the frame early; the next request starts over.
func (r *windowRenderer) drawFrame(paint present.PaintFunc) {
	log := slogger()

	r.future.cleanup()

	size := r.window.InnerSize()
	if size.IsZero() {
		log.Debug("vulkan: window has zero size, skipping frame")
		return
	}
	if !r.prepare(size) {
		return
	}

	var (
		target *renderTarget
		img    surfaceImage
	)
	for attempt := 1; ; attempt++ {
		t, i, ok, err := r.swapchain.acquire()
		if err != nil {
			log.Warn("vulkan: skipping frame", "err", err)
			return
		}
		if ok {
			target, img = t, i
			break
		}
		if attempt == maxAcquireAttempts {
			log.Debug("vulkan: swapchain still stale, skipping frame", "attempts", attempt)
			return
		}
		if !r.prepare(r.window.InnerSize()) {
			return
		}
	}

	var view imageView
	if r.direct() {
		v, err := target.bind(r.queue.device, img)
		if err != nil {
			log.Debug("vulkan: no image view, drawing on CPU", "err", err)
		} else {
			view = v
		}
	}

	frame := newFrameSurface(target, img, view, r.window.ScaleFactor())
	frame.paint(paint)

	q := r.queue.device.Queue()
	if err := frame.flush(q); err != nil {
		log.Warn("vulkan: frame upload failed", "err", err)
		r.surface.Discard(img)
		r.swapchain.invalidate()
		return
	}

	index, err := q.Submit(img)
	if err != nil {
		log.Warn("vulkan: submit failed", "err", err)
		r.surface.Discard(img)
		r.swapchain.invalidate()
		return
	}
	r.future.submitted(index)
	r.frames++

	if err := q.Present(r.surface, img); err != nil {
		r.swapchain.invalidate()
		if isStale(err) {
			log.Debug("vulkan: present found stale swapchain", "err", err)
			return
		}
		log.Warn("vulkan: present failed", "err", err)
	}
}

// prepare brings the swapchain up to date with size.
func (r *windowRenderer) prepare(size present.PhysicalSize) bool {
	retired, ok, err := r.swapchain.prepare(size)
	r.future.retire(retired)
	if err != nil {
		if isStale(err) {
			slogger().Debug("vulkan: configure found stale surface", "err", err)
		} else {
			slogger().Warn("vulkan: configure swapchain", "err", err)
		}
	}
	return ok
}
