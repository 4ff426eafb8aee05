// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

// PhysicalSize is a window size in device pixels.
type PhysicalSize struct {
	Width  uint32
	Height uint32
}

// IsZero reports whether either dimension is zero, as happens while a
// window is minimized.
func (s PhysicalSize) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// ToLogical converts s to logical pixels using the window scale factor.
// A non-positive scale is treated as 1.
func (s PhysicalSize) ToLogical(scale float64) LogicalSize {
	if scale <= 0 {
		scale = 1
	}
	return LogicalSize{
		Width:  float32(float64(s.Width) / scale),
		Height: float32(float64(s.Height) / scale),
	}
}

// LogicalSize is a DPI-independent window size.
type LogicalSize struct {
	Width  float32
	Height float32
}

// CanvasScale returns the transform that maps logical coordinates onto
// the physical pixels of a frame. Zero logical dimensions yield 1.
func CanvasScale(physical PhysicalSize, logical LogicalSize) (sx, sy float64) {
	sx, sy = 1, 1
	if logical.Width > 0 {
		sx = float64(physical.Width) / float64(logical.Width)
	}
	if logical.Height > 0 {
		sy = float64(physical.Height) / float64(logical.Height)
	}
	return sx, sy
}
