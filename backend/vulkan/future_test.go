// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func testTargets(n int) []*renderTarget {
	cfg := surfaceConfig{Width: 2, Height: 2, Format: gputypes.TextureFormatRGBA8Unorm}
	out := make([]*renderTarget, n)
	for i := range out {
		out[i] = newRenderTarget(i, 1, cfg)
	}
	return out
}

func destroyed(t *renderTarget) bool { return t.cc == nil }

func TestFrameFutureRetireWithoutSubmission(t *testing.T) {
	q := &mockQueue{log: &eventLog{}, retain: true}
	f := newFrameFuture(q)
	targets := testTargets(2)
	f.retire(targets)
	if !destroyed(targets[0]) || f.pending() != 0 {
		t.Error("targets with no submission should be destroyed at once")
	}
}

func TestFrameFutureCleanup(t *testing.T) {
	q := &mockQueue{log: &eventLog{}, retain: true}
	f := newFrameFuture(q)

	idx, _ := q.Submit(&mockImage{handle: 1})
	f.submitted(idx)
	old := testTargets(2)
	f.retire(old)

	idx, _ = q.Submit(&mockImage{handle: 2})
	f.submitted(idx)
	older := testTargets(1)
	f.retire(older)

	f.cleanup()
	if f.pending() != 2 || destroyed(old[0]) {
		t.Fatal("cleanup destroyed resources still in flight")
	}

	q.completed = 1
	f.cleanup()
	if !destroyed(old[0]) || !destroyed(old[1]) {
		t.Error("first generation not destroyed after its submission completed")
	}
	if destroyed(older[0]) || f.pending() != 1 {
		t.Error("second generation destroyed early")
	}

	q.completed = 2
	f.cleanup()
	if !destroyed(older[0]) || f.pending() != 0 {
		t.Error("second generation not destroyed")
	}
}

func TestFrameFutureWait(t *testing.T) {
	log := &eventLog{}
	dev := newMockDevice(log)
	dev.queue.retain = true
	f := newFrameFuture(dev.queue)

	idx, _ := dev.queue.Submit(&mockImage{handle: 1})
	f.submitted(idx)
	targets := testTargets(1)
	f.retire(targets)

	f.wait(dev)
	if log.count("device.wait") != 1 {
		t.Error("wait did not block on the device")
	}
	if !destroyed(targets[0]) || f.pending() != 0 {
		t.Error("retired targets survived wait")
	}
}
