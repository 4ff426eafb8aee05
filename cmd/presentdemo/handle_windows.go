// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// The HAL fills in the module handle when display is 0.
func nativeHandles(w *glfw.Window) (display, window uintptr) {
	return 0, uintptr(unsafe.Pointer(w.GetWin32Window()))
}
