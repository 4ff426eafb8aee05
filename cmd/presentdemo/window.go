// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/present"
)

// glfwWindow adapts a glfw window to present.Window.
type glfwWindow struct {
	w *glfw.Window
}

func (g *glfwWindow) SurfaceHandle() (display, window uintptr) {
	return nativeHandles(g.w)
}

func (g *glfwWindow) InnerSize() present.PhysicalSize {
	w, h := g.w.GetFramebufferSize()
	if w <= 0 || h <= 0 {
		return present.PhysicalSize{}
	}
	return present.PhysicalSize{Width: uint32(w), Height: uint32(h)}
}

func (g *glfwWindow) ScaleFactor() float64 {
	x, _ := g.w.GetContentScale()
	return float64(x)
}
