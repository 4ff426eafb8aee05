// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import "fmt"

// Renderer forwards window events to the backend selected by name.
type Renderer struct {
	name    string
	backend Backend
}

// NewRenderer creates a renderer for a registered backend.
// Unknown names return an error wrapping ErrUnknownBackend.
func NewRenderer(name string) (*Renderer, error) {
	factory, ok := lookupBackend(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}
	b := factory()
	if b == nil {
		return nil, fmt.Errorf("%w: %q returned no backend", ErrUnknownBackend, name)
	}
	return &Renderer{name: name, backend: b}, nil
}

// MustNewRenderer is like NewRenderer but panics on an unknown backend.
// An unknown backend selector is a configuration error the process
// cannot recover from.
func MustNewRenderer(name string) *Renderer {
	r, err := NewRenderer(name)
	if err != nil {
		panic(fmt.Sprintf("present: rendering backend %q is not supported: %v", name, err))
	}
	return r
}

// Name returns the backend name the renderer was created with.
func (r *Renderer) Name() string { return r.name }

// Backend returns the underlying backend.
func (r *Renderer) Backend() Backend { return r.backend }

// WindowCreated forwards to Backend.WindowCreated.
func (r *Renderer) WindowCreated(w Window) error {
	return r.backend.WindowCreated(w)
}

// WindowResized forwards to Backend.WindowResized.
func (r *Renderer) WindowResized() { r.backend.WindowResized() }

// WindowClosing forwards to Backend.WindowClosing.
func (r *Renderer) WindowClosing() { r.backend.WindowClosing() }

// RequestFrame forwards to Backend.RequestFrame.
func (r *Renderer) RequestFrame(paint PaintFunc) { r.backend.RequestFrame(paint) }

// Close closes the backend.
func (r *Renderer) Close() error { return r.backend.Close() }
