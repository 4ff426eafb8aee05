// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import "errors"

// Errors returned by renderers and backends.
var (
	// ErrUnknownBackend is returned when a renderer is requested for a
	// backend name that no package registered.
	ErrUnknownBackend = errors.New("present: unknown rendering backend")

	// ErrNoSuitableDevice is returned when no GPU can render and present
	// to the window's surface. There is no degraded path.
	ErrNoSuitableDevice = errors.New("present: no suitable GPU device")

	// ErrUnsupportedFormat reports a surface color format that cannot be
	// bridged to a drawing surface without corrupting color output.
	ErrUnsupportedFormat = errors.New("present: unsupported surface format")

	// ErrNoWindow is returned when WindowCreated is given no window.
	ErrNoWindow = errors.New("present: no window")

	// ErrClosed is returned when using a renderer after Close.
	ErrClosed = errors.New("present: renderer closed")
)
