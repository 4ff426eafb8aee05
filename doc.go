// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present drives a GPU swapchain for a window and hands each frame
// to a gg drawing context.
//
// A windowing shell forwards its events to a [Renderer]: WindowCreated
// once the native window exists, WindowResized on every size change,
// RequestFrame on redraw and WindowClosing before the window goes away.
// The renderer delegates to a [Backend] selected by name from a registry.
// Backends register themselves from init, so the shell imports the
// backend package for side effects:
//
//	import _ "github.com/gogpu/present/backend/vulkan"
//
//	r := present.MustNewRenderer("vulkan")
//	if err := r.WindowCreated(win); err != nil {
//	    log.Fatal(err)
//	}
//	r.RequestFrame(func(cc *gg.Context, size present.LogicalSize) {
//	    cc.ClearWithColor(gg.RGB(1, 1, 1))
//	})
//
// The paint callback draws in logical pixels. The backend scales the
// canvas by the window's scale factor before calling it.
//
// # Logging
//
// present is silent by default. Use [SetLogger] to route diagnostics,
// including the chosen GPU, to a [log/slog] handler.
package present
