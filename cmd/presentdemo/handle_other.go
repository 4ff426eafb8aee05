// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux && !windows

package main

import "github.com/go-gl/glfw/v3.3/glfw"

// Vulkan on macOS needs a CAMetalLayer, which glfw does not expose
// without cgo on our side; surface creation reports the failure.
func nativeHandles(*glfw.Window) (display, window uintptr) {
	return 0, 0
}
