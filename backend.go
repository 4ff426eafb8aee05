// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import "github.com/gogpu/gg"

// PaintFunc draws one frame. The canvas is already scaled so that
// coordinates are logical pixels, and size is the logical window size.
// The canvas is only valid for the duration of the call.
type PaintFunc func(cc *gg.Context, size LogicalSize)

// Backend presents frames for a single window.
//
// Backends are driven from the goroutine that runs the window's event
// loop and are not safe for concurrent use.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// WindowCreated binds the backend to a newly created window. It
	// acquires the GPU device on first use.
	WindowCreated(w Window) error

	// WindowResized invalidates the swapchain. Recreation happens on
	// the next frame.
	WindowResized()

	// WindowClosing releases everything tied to the window.
	WindowClosing()

	// RequestFrame renders and presents one frame. Transient
	// presentation failures are absorbed and retried on a later frame.
	RequestFrame(paint PaintFunc)

	// Close releases the backend. It is safe to call more than once.
	Close() error
}
