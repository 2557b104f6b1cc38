package core_test

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/glimmer/core"
)

func layoutName(layout core.ImageLayout) string {
	switch layout {
	case core.LayoutUndefined:
		return "undefined"
	case core.LayoutTransferDst:
		return "transferDst"
	case core.LayoutPresent:
		return "present"
	default:
		return "unknown"
	}
}

type fakeFence struct {
	signaled bool
	waited   bool
}

// fakeDriver implements core.Driver entirely on the host, recording
// object lifecycles and the operation sequence so tests can check
// the frame protocol without a GPU.
type fakeDriver struct {
	caps       core.SurfaceCapabilities
	formats    []core.SurfaceFormat
	modes      []core.PresentMode
	imageCount int

	created   []string
	destroyed []string

	fences     map[core.Fence]*fakeFence
	semaphores map[core.Semaphore]bool
	nextHandle uint64

	swapchainConfig core.SwapchainConfig
	swapchainLive   bool
	commandLive     bool
	recording       bool

	lastFence core.Fence
	nextImage int

	ops         []string
	clearColors []mgl32.Vec4
	violations  []string

	failCreateFence       bool
	failSemaphoreCreation int
	semaphoresCreated     int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		caps: core.SurfaceCapabilities{
			MinImageCount:           2,
			MaxImageCount:           8,
			CurrentExtent:           core.Extent{Width: 800, Height: 600},
			CurrentTransform:        core.TransformIdentity,
			SupportedCompositeAlpha: core.CompositeAlphaOpaque | core.CompositeAlphaInherit,
			SupportedUsage:          core.ImageUsageColorAttachment | core.ImageUsageTransferDst,
		},
		formats: []core.SurfaceFormat{
			{Format: core.FormatBGRA8Unorm, ColorSpace: core.ColorSpaceSRGBNonlinear},
			{Format: core.FormatRGBA8Unorm, ColorSpace: core.ColorSpaceSRGBNonlinear},
		},
		modes:      []core.PresentMode{core.PresentModeImmediate, core.PresentModeMailbox, core.PresentModeFifo},
		imageCount: 3,
		fences:     map[core.Fence]*fakeFence{},
		semaphores: map[core.Semaphore]bool{},
	}
}

func (f *fakeDriver) violate(format string, args ...interface{}) {
	f.violations = append(f.violations, fmt.Sprintf(format, args...))
}

func (f *fakeDriver) liveObjects() int {
	live := len(f.fences) + len(f.semaphores)
	if f.commandLive {
		live++
	}
	if f.swapchainLive {
		live++
	}
	return live
}

func (f *fakeDriver) SurfaceCapabilities() (core.SurfaceCapabilities, error) {
	return f.caps, nil
}

func (f *fakeDriver) SurfaceFormats() ([]core.SurfaceFormat, error) {
	return f.formats, nil
}

func (f *fakeDriver) PresentModes() ([]core.PresentMode, error) {
	return f.modes, nil
}

func (f *fakeDriver) CreateSwapchain(cfg core.SwapchainConfig) (int, error) {
	f.swapchainConfig = cfg
	f.swapchainLive = true
	f.created = append(f.created, "swapchain")
	return f.imageCount, nil
}

func (f *fakeDriver) DestroySwapchain() {
	if !f.swapchainLive {
		f.violate("swapchain destroyed twice")
		return
	}
	f.swapchainLive = false
	f.destroyed = append(f.destroyed, "swapchain")
}

func (f *fakeDriver) CreateCommandBuffer() error {
	f.commandLive = true
	f.created = append(f.created, "commandBuffer")
	return nil
}

func (f *fakeDriver) DestroyCommandBuffer() {
	if !f.commandLive {
		f.violate("command buffer destroyed twice")
		return
	}
	f.commandLive = false
	f.destroyed = append(f.destroyed, "commandBuffer")
}

func (f *fakeDriver) ResetCommandBuffer() error {
	if f.lastFence != 0 {
		if fence, ok := f.fences[f.lastFence]; ok && !fence.waited {
			f.violate("command buffer re-recorded before fence wait")
		}
	}
	f.ops = append(f.ops, "resetCommands")
	return nil
}

func (f *fakeDriver) BeginCommands() error {
	if f.recording {
		f.violate("BeginCommands while already recording")
	}
	f.recording = true
	f.ops = append(f.ops, "begin")
	return nil
}

func (f *fakeDriver) EndCommands() error {
	if !f.recording {
		f.violate("EndCommands while not recording")
	}
	f.recording = false
	f.ops = append(f.ops, "end")
	return nil
}

func (f *fakeDriver) CmdTransitionImage(image int, oldLayout, newLayout core.ImageLayout) {
	if !f.recording {
		f.violate("CmdTransitionImage outside recording")
	}
	f.ops = append(f.ops, fmt.Sprintf("transition[%d] %s->%s", image, layoutName(oldLayout), layoutName(newLayout)))
}

func (f *fakeDriver) CmdClearImage(image int, color mgl32.Vec4) {
	if !f.recording {
		f.violate("CmdClearImage outside recording")
	}
	f.clearColors = append(f.clearColors, color)
	f.ops = append(f.ops, fmt.Sprintf("clear[%d]", image))
}

func (f *fakeDriver) CreateFence() (core.Fence, error) {
	if f.failCreateFence {
		return 0, errors.New("injected fence failure")
	}
	f.nextHandle++
	handle := core.Fence(f.nextHandle)
	f.fences[handle] = &fakeFence{}
	f.created = append(f.created, fmt.Sprintf("fence-%d", handle))
	return handle, nil
}

func (f *fakeDriver) DestroyFence(fence core.Fence) {
	if _, ok := f.fences[fence]; !ok {
		f.violate("unknown or double-freed fence %d", fence)
		return
	}
	delete(f.fences, fence)
	f.destroyed = append(f.destroyed, fmt.Sprintf("fence-%d", fence))
}

func (f *fakeDriver) WaitForFence(fence core.Fence, timeout uint64) error {
	state, ok := f.fences[fence]
	if !ok {
		return fmt.Errorf("unknown fence handle %d", fence)
	}
	if !state.signaled {
		f.violate("wait on fence %d that will never signal", fence)
	}
	state.waited = true
	f.ops = append(f.ops, "waitFence")
	return nil
}

func (f *fakeDriver) ResetFence(fence core.Fence) error {
	state, ok := f.fences[fence]
	if !ok {
		return fmt.Errorf("unknown fence handle %d", fence)
	}
	if !state.waited {
		f.violate("fence %d reset before being waited on", fence)
	}
	state.signaled = false
	f.ops = append(f.ops, "resetFence")
	return nil
}

func (f *fakeDriver) CreateSemaphore() (core.Semaphore, error) {
	f.semaphoresCreated++
	if f.failSemaphoreCreation != 0 && f.semaphoresCreated == f.failSemaphoreCreation {
		return 0, errors.New("injected semaphore failure")
	}
	f.nextHandle++
	handle := core.Semaphore(f.nextHandle)
	f.semaphores[handle] = true
	f.created = append(f.created, fmt.Sprintf("semaphore-%d", handle))
	return handle, nil
}

func (f *fakeDriver) DestroySemaphore(semaphore core.Semaphore) {
	if !f.semaphores[semaphore] {
		f.violate("unknown or double-freed semaphore %d", semaphore)
		return
	}
	delete(f.semaphores, semaphore)
	f.destroyed = append(f.destroyed, fmt.Sprintf("semaphore-%d", semaphore))
}

func (f *fakeDriver) AcquireImage(timeout uint64, signal core.Semaphore, fence core.Fence) (int, error) {
	if !f.semaphores[signal] {
		return 0, fmt.Errorf("unknown semaphore handle %d", signal)
	}
	state, ok := f.fences[fence]
	if !ok {
		return 0, fmt.Errorf("unknown fence handle %d", fence)
	}

	state.signaled = true
	state.waited = false
	f.lastFence = fence

	image := f.nextImage
	f.nextImage = (f.nextImage + 1) % f.imageCount
	f.ops = append(f.ops, "acquire")
	return image, nil
}

func (f *fakeDriver) Submit(wait, signal core.Semaphore) error {
	if !f.semaphores[wait] || !f.semaphores[signal] {
		return errors.New("submit with unknown semaphore")
	}
	if f.recording {
		f.violate("submit of a buffer still recording")
	}
	f.ops = append(f.ops, "submit")
	return nil
}

func (f *fakeDriver) SubmitWait() error {
	if f.recording {
		f.violate("submit of a buffer still recording")
	}
	f.ops = append(f.ops, "submitWait")
	return nil
}

func (f *fakeDriver) Present(image int, wait core.Semaphore) error {
	if !f.semaphores[wait] {
		return errors.New("present with unknown semaphore")
	}
	f.ops = append(f.ops, fmt.Sprintf("present[%d]", image))
	return nil
}

func (f *fakeDriver) WaitIdle() error {
	f.ops = append(f.ops, "waitIdle")
	return nil
}
