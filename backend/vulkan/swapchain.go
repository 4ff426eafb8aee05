// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present"
)

// minSwapchainImages is the lower bound on swapchain length so that one
// image can be drawn while another is on screen.
const minSwapchainImages = 2

type swapchainState int

const (
	stateUninitialized swapchainState = iota
	stateValid
	stateInvalid
	stateDestroyed
)

func (s swapchainState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateValid:
		return "valid"
	case stateInvalid:
		return "invalid"
	case stateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("swapchainState(%d)", int(s))
	}
}

// swapchain is a window's chain of presentable images plus one render
// target per image. The driver decides how many images it builds, so
// targets are created as images are first acquired. Every configuration
// starts a new generation of targets; the previous generation is handed
// back to the caller so it can be destroyed once the GPU is done with it.
type swapchain struct {
	surface gpuSurface
	device  gpuDevice

	config      surfaceConfig
	state       swapchainState
	generation  uint64
	recreations int

	targets []*renderTarget
	slots   map[uintptr]int
}

func newSwapchain(surface gpuSurface, device gpuDevice, caps *surfaceCapabilities) *swapchain {
	alpha := gputypes.CompositeAlphaModeOpaque
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	return &swapchain{
		surface: surface,
		device:  device,
		config: surfaceConfig{
			Format:      caps.Formats[0],
			PresentMode: gputypes.PresentModeFifo,
			AlphaMode:   alpha,
			ImageCount:  max(caps.MinImageCount, minSwapchainImages),
		},
	}
}

func (s *swapchain) extent() present.PhysicalSize {
	return present.PhysicalSize{Width: s.config.Width, Height: s.config.Height}
}

// invalidate marks the swapchain for recreation before the next frame.
func (s *swapchain) invalidate() {
	if s.state == stateValid {
		s.state = stateInvalid
	}
}

// prepare makes the swapchain match size, reconfiguring when it is not
// valid or its extent differs. It reports whether a frame can be drawn.
// A zero size defers configuration. Targets of a replaced generation are
// returned in retired.
func (s *swapchain) prepare(size present.PhysicalSize) (retired []*renderTarget, ok bool, err error) {
	if s.state == stateDestroyed || size.IsZero() {
		return nil, false, nil
	}
	if s.state == stateValid && s.extent() == size {
		return nil, true, nil
	}

	retired = s.targets
	s.targets, s.slots = nil, nil

	cfg := s.config
	cfg.Width, cfg.Height = size.Width, size.Height
	if err := s.surface.Configure(s.device, cfg); err != nil {
		s.state = stateInvalid
		return retired, false, err
	}
	s.config = cfg
	s.generation++
	s.recreations++

	s.targets = make([]*renderTarget, 0, cfg.ImageCount)
	s.slots = make(map[uintptr]int, cfg.ImageCount)
	s.state = stateValid

	slogger().Debug("vulkan: swapchain configured",
		"generation", s.generation,
		"width", cfg.Width, "height", cfg.Height,
		"format", cfg.Format.String(), "min_images", cfg.ImageCount)
	return retired, true, nil
}

// acquire takes the next image. ok is false when the swapchain turned out
// to be stale; it is then invalid and must be prepared again.
func (s *swapchain) acquire() (t *renderTarget, img surfaceImage, ok bool, err error) {
	if s.state != stateValid {
		return nil, nil, false, nil
	}
	acq, err := s.surface.Acquire()
	if err != nil {
		if isStale(err) {
			s.state = stateInvalid
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("vulkan: acquire: %w", err)
	}
	if acq.Suboptimal {
		// Usable for this frame; rebuilt before the next one.
		s.state = stateInvalid
	}
	return s.targetFor(acq.Image), acq.Image, true, nil
}

// targetFor returns the render target of a swapchain image, creating one
// the first time the image is seen in this generation.
func (s *swapchain) targetFor(img surfaceImage) *renderTarget {
	h := img.NativeHandle()
	if idx, found := s.slots[h]; found {
		return s.targets[idx]
	}
	t := newRenderTarget(len(s.targets), s.generation, s.config)
	s.slots[h] = t.index
	s.targets = append(s.targets, t)
	return t
}

// destroy tears the swapchain down: targets, then the configuration,
// then the surface. The caller guarantees the GPU is idle.
func (s *swapchain) destroy() {
	if s.state == stateDestroyed {
		return
	}
	for _, t := range s.targets {
		t.destroy()
	}
	s.targets, s.slots = nil, nil
	if s.state != stateUninitialized {
		s.surface.Unconfigure(s.device)
	}
	s.surface.Destroy()
	s.state = stateDestroyed
}
