package core

import "github.com/go-gl/mathgl/mgl32"

// Format identifies a pixel format. Values mirror the numeric
// identifiers of the underlying graphics API so translation is direct.
type Format int32

// Formats relevant to swapchain negotiation
const (
	FormatUndefined  Format = 0
	FormatRGBA8Unorm Format = 37
	FormatBGRA8Unorm Format = 44
)

// ColorSpace identifies how presented pixel values are interpreted
type ColorSpace int32

// ColorSpaceSRGBNonlinear is the baseline color space every
// presentation engine supports
const ColorSpaceSRGBNonlinear ColorSpace = 0

// PresentMode describes how the presentation engine orders and
// displays queued images
type PresentMode int32

// Present modes a surface may report
const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFifo
	PresentModeFifoRelaxed
)

// CompositeAlpha is a bitmask of supported alpha compositing modes
type CompositeAlpha uint32

// Composite alpha bits in preference scan order
const (
	CompositeAlphaOpaque         CompositeAlpha = 1 << 0
	CompositeAlphaPreMultiplied  CompositeAlpha = 1 << 1
	CompositeAlphaPostMultiplied CompositeAlpha = 1 << 2
	CompositeAlphaInherit        CompositeAlpha = 1 << 3
)

// ImageUsage is a bitmask of operations an image may participate in
type ImageUsage uint32

// Usage bits required by the clear loop
const (
	ImageUsageTransferDst     ImageUsage = 0x00000002
	ImageUsageColorAttachment ImageUsage = 0x00000010
)

// Transform describes the orientation applied at presentation time
type Transform uint32

// TransformIdentity presents images unrotated
const TransformIdentity Transform = 1 << 0

// ImageLayout tags the memory organisation an image must be in
// for the operation about to consume it
type ImageLayout int32

// Layouts the clear loop moves swapchain images through
const (
	LayoutUndefined ImageLayout = iota
	LayoutTransferDst
	LayoutPresent
)

// Extent is a surface size in pixels
type Extent struct {
	Width  uint32
	Height uint32
}

// SurfaceFormat pairs a pixel format with its color space
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// SurfaceCapabilities reports what the device supports for a surface
type SurfaceCapabilities struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent
	CurrentTransform        Transform
	SupportedCompositeAlpha CompositeAlpha
	SupportedUsage          ImageUsage
}

// SwapchainConfig lists every negotiated swapchain parameter as a
// named field. The zero value is not valid, SurfaceManager fills it
// from capability negotiation.
type SwapchainConfig struct {
	MinImageCount  uint32
	Format         SurfaceFormat
	Extent         Extent
	ArrayLayers    uint32
	Usage          ImageUsage
	PreTransform   Transform
	CompositeAlpha CompositeAlpha
	PresentMode    PresentMode
	Clipped        bool
}

// Fence is a handle to a host-observable completion flag
type Fence uint64

// Semaphore is a handle to a queue-ordering primitive that the host
// never observes directly
type Semaphore uint64

// NoTimeout makes a blocking driver call wait indefinitely
const NoTimeout = ^uint64(0)

// Driver is the slice of an explicit graphics API the renderer needs.
// Every fallible operation returns an error instead of aborting, the
// process-level fatal policy lives with the caller of the package.
type Driver interface {
	// SurfaceCapabilities queries surface support of the selected device
	SurfaceCapabilities() (SurfaceCapabilities, error)

	// SurfaceFormats lists the surface formats the device reports,
	// in device order
	SurfaceFormats() ([]SurfaceFormat, error)

	// PresentModes lists the present modes the device reports
	PresentModes() ([]PresentMode, error)

	// CreateSwapchain builds the swapchain and returns how many
	// presentable images it owns
	CreateSwapchain(cfg SwapchainConfig) (int, error)

	// DestroySwapchain releases the swapchain and its images
	DestroySwapchain()

	// CreateCommandBuffer sets up the single reusable recording
	// buffer and the pool backing it
	CreateCommandBuffer() error

	// DestroyCommandBuffer frees the recording buffer, then its pool
	DestroyCommandBuffer()

	// ResetCommandBuffer returns the buffer to its initial state,
	// only legal once prior GPU consumption is known complete
	ResetCommandBuffer() error

	// BeginCommands starts a one-time-submit recording
	BeginCommands() error

	// EndCommands finishes the recording
	EndCommands() error

	// CmdTransitionImage records a pipeline barrier moving a
	// swapchain image between layouts
	CmdTransitionImage(image int, oldLayout, newLayout ImageLayout)

	// CmdClearImage records a clear of the whole image to color
	CmdClearImage(image int, color mgl32.Vec4)

	// CreateFence creates an unsignaled fence
	CreateFence() (Fence, error)

	// DestroyFence releases a fence
	DestroyFence(Fence)

	// WaitForFence blocks the calling thread until the fence signals
	WaitForFence(fence Fence, timeout uint64) error

	// ResetFence returns a signaled fence to the unsignaled state
	ResetFence(fence Fence) error

	// CreateSemaphore creates an unsignaled semaphore
	CreateSemaphore() (Semaphore, error)

	// DestroySemaphore releases a semaphore
	DestroySemaphore(Semaphore)

	// AcquireImage requests the next presentable image, signaling
	// the semaphore and fence once the image is ready for reuse
	AcquireImage(timeout uint64, signal Semaphore, fence Fence) (int, error)

	// Submit hands the recorded buffer to the graphics queue,
	// waiting on wait before execution and signaling signal after
	Submit(wait, signal Semaphore) error

	// SubmitWait submits the recorded buffer without semaphores and
	// blocks until the queue drained it
	SubmitWait() error

	// Present queues the image for display once wait has signaled
	Present(image int, wait Semaphore) error

	// WaitIdle blocks until the device finished all submitted work
	WaitIdle() error
}
