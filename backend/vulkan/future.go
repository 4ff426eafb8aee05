// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

// retirement is a generation of render targets that may still be read by
// submissions up to after.
type retirement struct {
	after   uint64
	targets []*renderTarget
}

// frameFuture tracks a window's most recent queue submission. Frames are
// submitted on a single queue, so completion of the latest submission
// implies completion of every earlier one; retired resources are tied to
// the submission that was latest when they were replaced.
type frameFuture struct {
	queue   gpuQueue
	last    uint64
	retired []retirement
}

func newFrameFuture(q gpuQueue) *frameFuture {
	return &frameFuture{queue: q}
}

// submitted chains a new submission after the previous one.
func (f *frameFuture) submitted(index uint64) {
	f.last = index
}

// retire keeps targets alive until the current submission completes.
func (f *frameFuture) retire(targets []*renderTarget) {
	if len(targets) == 0 {
		return
	}
	if f.last == 0 || f.queue.Completed() >= f.last {
		destroyTargets(targets)
		return
	}
	f.retired = append(f.retired, retirement{after: f.last, targets: targets})
}

// cleanup destroys retired resources whose submissions have completed.
// It never blocks.
func (f *frameFuture) cleanup() {
	if len(f.retired) == 0 {
		return
	}
	done := f.queue.Completed()
	keep := f.retired[:0]
	for _, r := range f.retired {
		if r.after <= done {
			destroyTargets(r.targets)
			continue
		}
		keep = append(keep, r)
	}
	clear(f.retired[len(keep):])
	f.retired = keep
}

// pending reports the number of retired generations not yet destroyed.
func (f *frameFuture) pending() int { return len(f.retired) }

// wait blocks until the device is idle and destroys everything retired.
func (f *frameFuture) wait(dev gpuDevice) {
	if err := dev.WaitIdle(); err != nil {
		slogger().Warn("vulkan: wait for in-flight frame", "err", err)
	}
	for _, r := range f.retired {
		destroyTargets(r.targets)
	}
	f.retired = nil
	f.last = 0
}

func destroyTargets(targets []*renderTarget) {
	for _, t := range targets {
		t.destroy()
	}
}
