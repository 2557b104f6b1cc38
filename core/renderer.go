package core

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// NewFrameRenderer performs the one-time setup protocol: every
// swapchain image is moved out of the undefined layout with a
// one-shot submission waited on synchronously, then the fence and
// the two semaphores serialising the frame loop are created. When
// any step fails, everything created before it is released again
// before the error is returned.
func NewFrameRenderer(driver Driver, imageCount int, cfg RendererConfiguration, log logrus.FieldLogger) (*FrameRenderer, error) {
	r := &FrameRenderer{
		driver:     driver,
		log:        log,
		imageCount: imageCount,
		color:      NewClearColor(cfg.ClearStep),
	}

	if err := driver.CreateCommandBuffer(); err != nil {
		return nil, errors.New("driver.CreateCommandBuffer(): " + err.Error())
	}

	if err := r.prepareImages(); err != nil {
		driver.DestroyCommandBuffer()
		return nil, err
	}

	fence, err := driver.CreateFence()
	if err != nil {
		driver.DestroyCommandBuffer()
		return nil, errors.New("driver.CreateFence(): " + err.Error())
	}
	r.fence = fence

	acquireSem, err := driver.CreateSemaphore()
	if err != nil {
		driver.DestroyFence(fence)
		driver.DestroyCommandBuffer()
		return nil, errors.New("driver.CreateSemaphore(): " + err.Error())
	}
	r.acquireSem = acquireSem

	completeSem, err := driver.CreateSemaphore()
	if err != nil {
		driver.DestroySemaphore(acquireSem)
		driver.DestroyFence(fence)
		driver.DestroyCommandBuffer()
		return nil, errors.New("driver.CreateSemaphore(): " + err.Error())
	}
	r.completeSem = completeSem

	log.WithField("images", imageCount).Info("frame renderer ready")
	return r, nil
}

// FrameRenderer owns the single command recording context and the
// synchronization primitives of the frame loop. At most one frame's
// GPU work is in flight at a time.
type FrameRenderer struct {
	driver Driver
	log    logrus.FieldLogger

	imageCount int
	color      *ClearColor

	fence       Fence
	acquireSem  Semaphore
	completeSem Semaphore
}

// prepareImages declares an initial layout for every swapchain
// image, a freshly created image's contents and layout are undefined
// and may not be presented as-is
func (r *FrameRenderer) prepareImages() error {
	if err := r.driver.BeginCommands(); err != nil {
		return errors.New("driver.BeginCommands(): " + err.Error())
	}
	for image := 0; image < r.imageCount; image++ {
		r.driver.CmdTransitionImage(image, LayoutUndefined, LayoutPresent)
	}
	if err := r.driver.EndCommands(); err != nil {
		return errors.New("driver.EndCommands(): " + err.Error())
	}
	if err := r.driver.SubmitWait(); err != nil {
		return errors.New("driver.SubmitWait(): " + err.Error())
	}
	return nil
}

// RenderFrame implements interface
func (r *FrameRenderer) RenderFrame() error {
	image, err := r.driver.AcquireImage(NoTimeout, r.acquireSem, r.fence)
	if err != nil {
		return errors.New("driver.AcquireImage(): " + err.Error())
	}

	// re-recording must never race prior GPU consumption of the
	// single command buffer
	if err := r.driver.WaitForFence(r.fence, NoTimeout); err != nil {
		return errors.New("driver.WaitForFence(): " + err.Error())
	}
	if err := r.driver.ResetFence(r.fence); err != nil {
		return errors.New("driver.ResetFence(): " + err.Error())
	}

	if err := r.driver.ResetCommandBuffer(); err != nil {
		return errors.New("driver.ResetCommandBuffer(): " + err.Error())
	}
	if err := r.driver.BeginCommands(); err != nil {
		return errors.New("driver.BeginCommands(): " + err.Error())
	}

	r.driver.CmdTransitionImage(image, LayoutPresent, LayoutTransferDst)
	r.driver.CmdClearImage(image, r.color.Advance())
	r.driver.CmdTransitionImage(image, LayoutTransferDst, LayoutPresent)

	if err := r.driver.EndCommands(); err != nil {
		return errors.New("driver.EndCommands(): " + err.Error())
	}

	if err := r.driver.Submit(r.acquireSem, r.completeSem); err != nil {
		return errors.New("driver.Submit(): " + err.Error())
	}

	if err := r.driver.Present(image, r.completeSem); err != nil {
		return errors.New("driver.Present(): " + err.Error())
	}

	return nil
}

// Color returns the current clear color
func (r *FrameRenderer) Color() mgl32.Vec4 {
	return r.color.Value()
}

// Destroy implements interface
func (r *FrameRenderer) Destroy() {
	r.driver.WaitIdle()

	r.driver.DestroySemaphore(r.completeSem)
	r.driver.DestroySemaphore(r.acquireSem)
	r.driver.DestroyFence(r.fence)
	r.driver.DestroyCommandBuffer()
}
