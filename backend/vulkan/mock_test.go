// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/present"
)

// eventLog records driver calls in order across mocks.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) count(event string) int {
	n := 0
	for _, e := range l.list() {
		if e == event {
			n++
		}
	}
	return n
}

// index returns the position of the first occurrence of event, or -1.
func (l *eventLog) index(event string) int {
	for i, e := range l.list() {
		if e == event {
			return i
		}
	}
	return -1
}

var errMock = errors.New("mock failure")

type mockInstance struct {
	log        *eventLog
	adapters   []adapterInfo
	surfaceErr error
	surfaces   []*mockSurface
	images     int
}

func (i *mockInstance) CreateSurface(display, window uintptr) (gpuSurface, error) {
	if i.surfaceErr != nil {
		return nil, i.surfaceErr
	}
	n := i.images
	if n == 0 {
		n = 3
	}
	s := newMockSurface(i.log, n)
	i.surfaces = append(i.surfaces, s)
	i.log.add("surface.create")
	return s, nil
}

func (i *mockInstance) Adapters(gpuSurface) []adapterInfo { return i.adapters }
func (i *mockInstance) Destroy()                          { i.log.add("instance.destroy") }

type mockAdapter struct {
	caps    *surfaceCapabilities
	device  *mockDevice
	openErr error
	opened  int
}

func (a *mockAdapter) SurfaceCapabilities(gpuSurface) *surfaceCapabilities { return a.caps }

func (a *mockAdapter) Open() (gpuDevice, error) {
	a.opened++
	if a.openErr != nil {
		return nil, a.openErr
	}
	return a.device, nil
}

func bgraCaps() *surfaceCapabilities {
	return &surfaceCapabilities{
		Formats:       []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm},
		PresentModes:  []gputypes.PresentMode{gputypes.PresentModeFifo},
		AlphaModes:    []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeOpaque},
		MinImageCount: 2,
	}
}

type mockDevice struct {
	log     *eventLog
	queue   *mockQueue
	viewErr error
	views   int
}

func newMockDevice(log *eventLog) *mockDevice {
	return &mockDevice{log: log, queue: &mockQueue{log: log}}
}

func (d *mockDevice) Queue() gpuQueue { return d.queue }

func (d *mockDevice) CreateView(img surfaceImage, _ gputypes.TextureFormat) (imageView, error) {
	if d.viewErr != nil {
		return nil, d.viewErr
	}
	d.views++
	return &mockView{log: d.log, image: img.NativeHandle()}, nil
}

func (d *mockDevice) WaitIdle() error {
	d.log.add("device.wait")
	d.queue.completed = d.queue.next
	return nil
}

func (d *mockDevice) Handle() gpucontext.Device     { return d }
func (d *mockDevice) QueueHandle() gpucontext.Queue { return d.queue }
func (d *mockDevice) Destroy()                      { d.log.add("device.destroy") }
func (d *mockDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "mock", Type: gpucontext.AdapterTypeDiscrete}
}

type mockView struct {
	log   *eventLog
	image uintptr
}

func (v *mockView) Destroy()                       { v.log.add("view.destroy %d", v.image) }
func (v *mockView) Handle() gpucontext.TextureView { return gpucontext.TextureView{} }

type mockQueue struct {
	log *eventLog

	next      uint64
	completed uint64
	// retain keeps submissions pending; otherwise they complete at once.
	retain bool

	writes      int
	lastData    []byte
	lastStride  uint32
	writeErr    error
	submitErr   error
	presentErrs []error
	presented   []uintptr
}

func (q *mockQueue) WriteImage(img surfaceImage, data []byte, bytesPerRow, width, height uint32) error {
	if q.writeErr != nil {
		return q.writeErr
	}
	if uint32(len(data)) < bytesPerRow*height || bytesPerRow < width*4 {
		return fmt.Errorf("short upload: %d bytes for %dx%d stride %d", len(data), width, height, bytesPerRow)
	}
	q.writes++
	q.lastData = append(q.lastData[:0], data...)
	q.lastStride = bytesPerRow
	q.log.add("write %d", img.NativeHandle())
	return nil
}

func (q *mockQueue) Submit(img surfaceImage) (uint64, error) {
	if q.submitErr != nil {
		return 0, q.submitErr
	}
	q.next++
	if !q.retain {
		q.completed = q.next
	}
	q.log.add("submit %d", img.NativeHandle())
	return q.next, nil
}

func (q *mockQueue) Completed() uint64 { return q.completed }

func (q *mockQueue) Present(_ gpuSurface, img surfaceImage) error {
	q.log.add("present %d", img.NativeHandle())
	if len(q.presentErrs) > 0 {
		err := q.presentErrs[0]
		q.presentErrs = q.presentErrs[1:]
		if err != nil {
			return err
		}
	}
	q.presented = append(q.presented, img.NativeHandle())
	return nil
}

type mockImage struct{ handle uintptr }

func (i *mockImage) NativeHandle() uintptr { return i.handle }

type mockSurface struct {
	log    *eventLog
	images []*mockImage
	next   int

	// acquireErrs is consumed one entry per Acquire; nil entries succeed.
	acquireErrs  []error
	suboptimal   bool
	configureErr error

	configs      []surfaceConfig
	unconfigured bool
	destroyed    bool
	discarded    []uintptr
}

func newMockSurface(log *eventLog, images int) *mockSurface {
	s := &mockSurface{log: log}
	for i := range images {
		s.images = append(s.images, &mockImage{handle: uintptr(0x100 + i)})
	}
	return s
}

func (s *mockSurface) Configure(_ gpuDevice, cfg surfaceConfig) error {
	if s.configureErr != nil {
		return s.configureErr
	}
	s.configs = append(s.configs, cfg)
	s.log.add("configure %dx%d", cfg.Width, cfg.Height)
	return nil
}

func (s *mockSurface) Unconfigure(gpuDevice) {
	s.unconfigured = true
	s.log.add("surface.unconfigure")
}

func (s *mockSurface) Acquire() (acquiredImage, error) {
	s.log.add("acquire")
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return acquiredImage{}, err
		}
	}
	img := s.images[s.next%len(s.images)]
	s.next++
	return acquiredImage{Image: img, Suboptimal: s.suboptimal}, nil
}

func (s *mockSurface) Discard(img surfaceImage) {
	s.discarded = append(s.discarded, img.NativeHandle())
}

func (s *mockSurface) Destroy() {
	s.destroyed = true
	s.log.add("surface.destroy")
}

// lastConfig returns the most recent configuration.
func (s *mockSurface) lastConfig() surfaceConfig {
	return s.configs[len(s.configs)-1]
}

type mockWindow struct {
	size  present.PhysicalSize
	scale float64
}

func (w *mockWindow) SurfaceHandle() (uintptr, uintptr) { return 1, 2 }
func (w *mockWindow) InnerSize() present.PhysicalSize   { return w.size }
func (w *mockWindow) ScaleFactor() float64              { return w.scale }

// harness wires a backend to one mock adapter.
type harness struct {
	log      *eventLog
	instance *mockInstance
	adapter  *mockAdapter
	device   *mockDevice
	ctx      *DeviceContext
	shares   int
	abandons int
}

func newHarness() *harness {
	h := &harness{log: &eventLog{}}
	h.device = newMockDevice(h.log)
	h.adapter = &mockAdapter{caps: bgraCaps(), device: h.device}
	h.instance = &mockInstance{
		log:      h.log,
		adapters: []adapterInfo{{Name: "mock gpu", Type: gputypes.DeviceTypeDiscreteGPU, Adapter: h.adapter}},
	}
	h.ctx = newDeviceContext(func() (gpuInstance, error) { return h.instance, nil })
	h.ctx.accel = accelerator{
		share: func(gpucontext.DeviceProvider) error {
			h.shares++
			h.log.add("accel.share")
			return nil
		},
		abandon: func() {
			h.abandons++
			h.log.add("accel.abandon")
		},
	}
	return h
}

func (h *harness) surface(i int) *mockSurface { return h.instance.surfaces[i] }

func (h *harness) queue() *mockQueue { return h.device.queue }
