// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

// Window is the part of a native window a backend needs. It is
// implemented by the windowing shell, which keeps ownership of the
// event loop.
type Window interface {
	// SurfaceHandle returns the platform handles used to create a
	// presentation surface:
	//   - Linux/X11: Display* and Window
	//   - Linux/Wayland: wl_display* and wl_surface*
	//   - Windows: HINSTANCE (or 0) and HWND
	//   - macOS: 0 and CAMetalLayer*
	SurfaceHandle() (display, window uintptr)

	// InnerSize returns the drawable area in device pixels.
	InnerSize() PhysicalSize

	// ScaleFactor returns the ratio of device pixels to logical pixels.
	ScaleFactor() float64
}
