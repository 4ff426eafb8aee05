// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import "github.com/gogpu/gputypes"

// ggInterop is a window's claim on gg's GPU accelerator. gg keeps one
// accelerator per process and caches device-level objects in it, so the
// first claim points it at the shared device and the last abandon shuts
// it down. Every claim must be abandoned before the DeviceContext closes.
//
// A software (CPU type) device is never handed to gg: gg would compile
// its GPU pipelines for it. Those windows draw on the CPU and upload.
type ggInterop struct {
	ctx       *DeviceContext
	shared    bool
	abandoned bool
}

func (c *DeviceContext) newInterop(q *SharedQueue) *ggInterop {
	c.mu.Lock()
	first := c.interops == 0
	c.interops++
	software := c.adapter.Type == gputypes.DeviceTypeCPU
	share := c.accel.share
	if first && !software && share != nil {
		c.shared = true
	}
	shared := c.shared
	c.mu.Unlock()

	if first && software {
		slogger().Info("vulkan: software adapter, gg draws on CPU", "name", c.adapter.Name)
	}
	if first && shared {
		if err := share(q); err != nil {
			slogger().Warn("vulkan: gg accelerator cannot share device, drawing on CPU", "err", err)
		}
	}
	return &ggInterop{ctx: c, shared: shared}
}

// abandon releases the claim. It is idempotent.
func (i *ggInterop) abandon() {
	if i.abandoned {
		return
	}
	i.abandoned = true

	c := i.ctx
	c.mu.Lock()
	c.interops--
	last := c.interops == 0 && c.shared
	if last {
		c.shared = false
	}
	release := c.accel.abandon
	c.mu.Unlock()

	if last && release != nil {
		release()
	}
}
