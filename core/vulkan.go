package core

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// DefaultVulkanApplicationInfo application info describes a Vulkan application
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 3, 0),
	ApplicationVersion: vk.MakeVersion(0, 1, 0),
	PApplicationName:   "Glimmer\x00",
	PEngineName:        "Glimmer\x00",
}

// NewVulkanInstance creates a Vulkan instance
func NewVulkanInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration) (*VulkanInstance, error) {
	if cfg.DebugMode {
		cfg.Layers = append(cfg.Layers, "VK_LAYER_KHRONOS_validation\x00")
	}

	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: cfg.Extensions,
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     cfg.Layers,
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	vk.InitInstance(instance)

	physicalDevices, err := enumerateDevices(instance)
	if err != nil {
		return nil, errors.New("core.enumerateDevices(): " + err.Error())
	}

	return &VulkanInstance{
		configuration:    cfg,
		instance:         instance,
		availableDevices: physicalDevices,
	}, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	configuration InstanceConfiguration

	availableDevices []vk.PhysicalDevice
	surface          vk.Surface
	instance         vk.Instance
}

func enumerateDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return availableDevices, nil
}

// PhysicalDevicesInfo returns a struct for each physical device
// along with info about those devices
func (v *VulkanInstance) PhysicalDevicesInfo() []PhysicalDeviceInfo {
	pdi := make([]PhysicalDeviceInfo, len(v.availableDevices))
	for i := 0; i < len(v.availableDevices); i++ {
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, deviceExt)); err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(v.availableDevices[i], &memoryProperties)
		memoryProperties.Deref()
		for iMem := (uint32)(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory = pdi[i].Memory + uint(memoryProperties.MemoryHeaps[iMem].Size)
		}

		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(v.availableDevices[i], &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		pdi[i].ID = (int)(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = (int)(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].DriverVersion = (int)(physicalDeviceProperties.DriverVersion)
	}
	return pdi
}

// SetSurface sets the window surface for rendering
func (v *VulkanInstance) SetSurface(pSurface unsafe.Pointer) {
	v.surface = vk.SurfaceFromPointer(uintptr(pSurface))
}

// Surface returns the window surface, if it's not set
// it returns a valid but empty surface
func (v *VulkanInstance) Surface() vk.Surface {
	if v.surface == nil {
		return vk.NullSurface
	}
	return v.surface
}

// Instance returns internal vk.Instance
func (v *VulkanInstance) Instance() interface{} {
	return v.instance
}

// AvailableDevices returns handles of physical devices
func (v *VulkanInstance) AvailableDevices() []vk.PhysicalDevice {
	return v.availableDevices
}

// Destroy implements interface. The surface is a child of the
// instance and goes first.
func (v *VulkanInstance) Destroy() {
	if v.surface != nil {
		vk.DestroySurface(v.instance, v.surface, nil)
		v.surface = nil
	}
	v.availableDevices = nil
	vk.DestroyInstance(v.instance, nil)
}

// NewVulkanDriver opens a logical device on the first physical
// device that exposes a graphics-capable queue family and prepares
// it for use behind the Driver interface
func NewVulkanDriver(instance *VulkanInstance, cfg RendererConfiguration) (*VulkanDriver, error) {
	devices := instance.AvailableDevices()
	if len(devices) == 0 {
		return nil, errors.New("no vulkan capable devices available")
	}

	var (
		physicalDevice     vk.PhysicalDevice
		graphicsQueueIndex uint32
		found              bool
	)
	for _, device := range devices {
		if index, ok := findGraphicsQueueFamily(device); ok {
			physicalDevice = device
			graphicsQueueIndex = index
			found = true
			break
		}
	}
	if !found {
		return nil, errors.New("no device with a graphics-capable queue family")
	}

	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(physicalDevice, graphicsQueueIndex, instance.Surface(), &supported)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfaceSupport(): " + err.Error())
	}
	if !supported.B() {
		return nil, errors.New("selected queue family cannot present to the surface")
	}

	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: graphicsQueueIndex,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	requiredExtensions := []string{
		vk.KhrSwapchainExtensionName + "\x00",
	}

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: requiredExtensions,
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(physicalDevice, &dci, nil, &device)); err != nil {
		return nil, errors.New("vk.CreateDevice(): " + err.Error())
	}

	var queue vk.Queue
	vk.GetDeviceQueue(device, graphicsQueueIndex, 0, &queue)

	return &VulkanDriver{
		surface:            instance.Surface(),
		physicalDevice:     physicalDevice,
		device:             device,
		queue:              queue,
		graphicsQueueIndex: graphicsQueueIndex,
		fences:             map[Fence]vk.Fence{},
		semaphores:         map[Semaphore]vk.Semaphore{},
	}, nil
}

// VulkanDriver implements Driver on top of a logical Vulkan device
// with one activated graphics queue family
type VulkanDriver struct {
	surface            vk.Surface
	physicalDevice     vk.PhysicalDevice
	device             vk.Device
	queue              vk.Queue
	graphicsQueueIndex uint32

	swapchain       vk.Swapchain
	swapchainImages []vk.Image

	commandPool   vk.CommandPool
	commandBuffer vk.CommandBuffer

	fences     map[Fence]vk.Fence
	semaphores map[Semaphore]vk.Semaphore
	nextHandle uint64
}

func findGraphicsQueueFamily(device vk.PhysicalDevice) (uint32, bool) {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, queueFamilies)

	for i := uint32(0); i < queueFamilyCount; i++ {
		queueFamilies[i].Deref()
		if queueFamilies[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			return i, true
		}
	}
	return 0, false
}

// SurfaceCapabilities implements interface
func (v *VulkanDriver) SurfaceCapabilities() (SurfaceCapabilities, error) {
	var surfaceCapabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(v.physicalDevice, v.surface, &surfaceCapabilities)); err != nil {
		return SurfaceCapabilities{}, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	surfaceCapabilities.Deref()
	surfaceCapabilities.CurrentExtent.Deref()

	return SurfaceCapabilities{
		MinImageCount: surfaceCapabilities.MinImageCount,
		MaxImageCount: surfaceCapabilities.MaxImageCount,
		CurrentExtent: Extent{
			Width:  surfaceCapabilities.CurrentExtent.Width,
			Height: surfaceCapabilities.CurrentExtent.Height,
		},
		CurrentTransform:        Transform(surfaceCapabilities.CurrentTransform),
		SupportedCompositeAlpha: CompositeAlpha(surfaceCapabilities.SupportedCompositeAlpha),
		SupportedUsage:          ImageUsage(surfaceCapabilities.SupportedUsageFlags),
	}, nil
}

// SurfaceFormats implements interface
func (v *VulkanDriver) SurfaceFormats() ([]SurfaceFormat, error) {
	var surfaceFormatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(v.physicalDevice, v.surface, &surfaceFormatCount, nil)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	surfaceFormats := make([]vk.SurfaceFormat, surfaceFormatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(v.physicalDevice, v.surface, &surfaceFormatCount, surfaceFormats)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}

	formats := make([]SurfaceFormat, len(surfaceFormats))
	for i := range surfaceFormats {
		surfaceFormats[i].Deref()
		formats[i] = SurfaceFormat{
			Format:     Format(surfaceFormats[i].Format),
			ColorSpace: ColorSpace(surfaceFormats[i].ColorSpace),
		}
	}
	return formats, nil
}

// PresentModes implements interface
func (v *VulkanDriver) PresentModes() ([]PresentMode, error) {
	var presentModeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(v.physicalDevice, v.surface, &presentModeCount, nil)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	presentModes := make([]vk.PresentMode, presentModeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(v.physicalDevice, v.surface, &presentModeCount, presentModes)); err != nil {
		return nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}

	modes := make([]PresentMode, len(presentModes))
	for i, mode := range presentModes {
		modes[i] = PresentMode(mode)
	}
	return modes, nil
}

// CreateSwapchain implements interface
func (v *VulkanDriver) CreateSwapchain(cfg SwapchainConfig) (int, error) {
	clipped := vk.Bool32(vk.False)
	if cfg.Clipped {
		clipped = vk.True
	}

	scci := vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Surface:         v.surface,
		MinImageCount:   cfg.MinImageCount,
		ImageFormat:     vk.Format(cfg.Format.Format),
		ImageColorSpace: vk.ColorSpace(cfg.Format.ColorSpace),
		ImageExtent: vk.Extent2D{
			Width:  cfg.Extent.Width,
			Height: cfg.Extent.Height,
		},
		ImageArrayLayers: cfg.ArrayLayers,
		ImageUsage:       vk.ImageUsageFlags(cfg.Usage),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     vk.SurfaceTransformFlagBits(cfg.PreTransform),
		CompositeAlpha:   vk.CompositeAlphaFlagBits(cfg.CompositeAlpha),
		PresentMode:      vk.PresentMode(cfg.PresentMode),
		Clipped:          clipped,
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(v.device, &scci, nil, &swapchain)); err != nil {
		return 0, errors.New("vk.CreateSwapchain(): " + err.Error())
	}
	v.swapchain = swapchain

	var numImages uint32
	if err := vk.Error(vk.GetSwapchainImages(v.device, v.swapchain, &numImages, nil)); err != nil {
		return 0, errors.New("vk.GetSwapchainImages(num): " + err.Error())
	}
	v.swapchainImages = make([]vk.Image, numImages)
	if err := vk.Error(vk.GetSwapchainImages(v.device, v.swapchain, &numImages, v.swapchainImages)); err != nil {
		return 0, errors.New("vk.GetSwapchainImages(images): " + err.Error())
	}

	return len(v.swapchainImages), nil
}

// DestroySwapchain implements interface. Image handles belong to
// the swapchain and are never freed individually.
func (v *VulkanDriver) DestroySwapchain() {
	vk.DestroySwapchain(v.device, v.swapchain, nil)
	v.swapchain = vk.NullSwapchain
	v.swapchainImages = nil
}

// CreateCommandBuffer implements interface
func (v *VulkanDriver) CreateCommandBuffer() error {
	cpci := vk.CommandPoolCreateInfo{
		SType: vk.StructureTypeCommandPoolCreateInfo,
		Flags: vk.CommandPoolCreateFlags(vk.CommandPoolCreateTransientBit |
			vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: v.graphicsQueueIndex,
	}

	var commandPool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(v.device, &cpci, nil, &commandPool)); err != nil {
		return errors.New("vk.CreateCommandPool(): " + err.Error())
	}
	v.commandPool = commandPool

	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        v.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}

	commandBuffers := make([]vk.CommandBuffer, 1)
	if err := vk.Error(vk.AllocateCommandBuffers(v.device, &cbai, commandBuffers)); err != nil {
		vk.DestroyCommandPool(v.device, v.commandPool, nil)
		v.commandPool = vk.NullCommandPool
		return errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}
	v.commandBuffer = commandBuffers[0]

	return nil
}

// DestroyCommandBuffer implements interface
func (v *VulkanDriver) DestroyCommandBuffer() {
	vk.FreeCommandBuffers(v.device, v.commandPool, 1, []vk.CommandBuffer{v.commandBuffer})
	vk.DestroyCommandPool(v.device, v.commandPool, nil)
	v.commandBuffer = nil
	v.commandPool = vk.NullCommandPool
}

// ResetCommandBuffer implements interface
func (v *VulkanDriver) ResetCommandBuffer() error {
	if err := vk.Error(vk.ResetCommandBuffer(v.commandBuffer, 0)); err != nil {
		return errors.New("vk.ResetCommandBuffer(): " + err.Error())
	}
	return nil
}

// BeginCommands implements interface
func (v *VulkanDriver) BeginCommands() error {
	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(v.commandBuffer, &cbbi)); err != nil {
		return errors.New("vk.BeginCommandBuffer(): " + err.Error())
	}
	return nil
}

// EndCommands implements interface
func (v *VulkanDriver) EndCommands() error {
	if err := vk.Error(vk.EndCommandBuffer(v.commandBuffer)); err != nil {
		return errors.New("vk.EndCommandBuffer(): " + err.Error())
	}
	return nil
}

func colorSubresourceRange() vk.ImageSubresourceRange {
	return vk.ImageSubresourceRange{
		AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
		BaseMipLevel:   0,
		LevelCount:     1,
		BaseArrayLayer: 0,
		LayerCount:     1,
	}
}

func vkImageLayout(layout ImageLayout) vk.ImageLayout {
	switch layout {
	case LayoutTransferDst:
		return vk.ImageLayoutTransferDstOptimal
	case LayoutPresent:
		return vk.ImageLayoutPresentSrc
	default:
		return vk.ImageLayoutUndefined
	}
}

// transitionMasks selects access masks and pipeline stages for the
// three transitions the clear loop performs. The barriers double as
// the happens-before edges between acquire, clear and present.
func transitionMasks(oldLayout, newLayout ImageLayout) (srcAccess, dstAccess vk.AccessFlags, srcStage, dstStage vk.PipelineStageFlags) {
	switch {
	case newLayout == LayoutTransferDst:
		return 0, vk.AccessFlags(vk.AccessTransferWriteBit),
			vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
			vk.PipelineStageFlags(vk.PipelineStageTransferBit)
	case oldLayout == LayoutTransferDst && newLayout == LayoutPresent:
		return vk.AccessFlags(vk.AccessTransferWriteBit), 0,
			vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
	default:
		return 0, 0,
			vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
			vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
	}
}

// CmdTransitionImage implements interface
func (v *VulkanDriver) CmdTransitionImage(image int, oldLayout, newLayout ImageLayout) {
	srcAccess, dstAccess, srcStage, dstStage := transitionMasks(oldLayout, newLayout)

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       srcAccess,
		DstAccessMask:       dstAccess,
		OldLayout:           vkImageLayout(oldLayout),
		NewLayout:           vkImageLayout(newLayout),
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               v.swapchainImages[image],
		SubresourceRange:    colorSubresourceRange(),
	}

	vk.CmdPipelineBarrier(v.commandBuffer, srcStage, dstStage,
		0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
}

// CmdClearImage implements interface
func (v *VulkanDriver) CmdClearImage(image int, color mgl32.Vec4) {
	var clearValue vk.ClearColorValue
	channels := (*[4]float32)(unsafe.Pointer(&clearValue))
	channels[0] = color[0]
	channels[1] = color[1]
	channels[2] = color[2]
	channels[3] = color[3]

	vk.CmdClearColorImage(v.commandBuffer, v.swapchainImages[image],
		vk.ImageLayoutTransferDstOptimal, &clearValue,
		1, []vk.ImageSubresourceRange{colorSubresourceRange()})
}

func (v *VulkanDriver) allocHandle() uint64 {
	v.nextHandle++
	return v.nextHandle
}

// CreateFence implements interface
func (v *VulkanDriver) CreateFence() (Fence, error) {
	fci := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}

	var fence vk.Fence
	if err := vk.Error(vk.CreateFence(v.device, &fci, nil, &fence)); err != nil {
		return 0, errors.New("vk.CreateFence(): " + err.Error())
	}

	handle := Fence(v.allocHandle())
	v.fences[handle] = fence
	return handle, nil
}

// DestroyFence implements interface
func (v *VulkanDriver) DestroyFence(fence Fence) {
	if vkFence, ok := v.fences[fence]; ok {
		vk.DestroyFence(v.device, vkFence, nil)
		delete(v.fences, fence)
	}
}

// WaitForFence implements interface
func (v *VulkanDriver) WaitForFence(fence Fence, timeout uint64) error {
	vkFence, ok := v.fences[fence]
	if !ok {
		return fmt.Errorf("unknown fence handle %d", fence)
	}
	if err := vk.Error(vk.WaitForFences(v.device, 1, []vk.Fence{vkFence}, vk.True, timeout)); err != nil {
		return errors.New("vk.WaitForFences(): " + err.Error())
	}
	return nil
}

// ResetFence implements interface
func (v *VulkanDriver) ResetFence(fence Fence) error {
	vkFence, ok := v.fences[fence]
	if !ok {
		return fmt.Errorf("unknown fence handle %d", fence)
	}
	if err := vk.Error(vk.ResetFences(v.device, 1, []vk.Fence{vkFence})); err != nil {
		return errors.New("vk.ResetFences(): " + err.Error())
	}
	return nil
}

// CreateSemaphore implements interface
func (v *VulkanDriver) CreateSemaphore() (Semaphore, error) {
	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var semaphore vk.Semaphore
	if err := vk.Error(vk.CreateSemaphore(v.device, &sci, nil, &semaphore)); err != nil {
		return 0, errors.New("vk.CreateSemaphore(): " + err.Error())
	}

	handle := Semaphore(v.allocHandle())
	v.semaphores[handle] = semaphore
	return handle, nil
}

// DestroySemaphore implements interface
func (v *VulkanDriver) DestroySemaphore(semaphore Semaphore) {
	if vkSemaphore, ok := v.semaphores[semaphore]; ok {
		vk.DestroySemaphore(v.device, vkSemaphore, nil)
		delete(v.semaphores, semaphore)
	}
}

// AcquireImage implements interface
func (v *VulkanDriver) AcquireImage(timeout uint64, signal Semaphore, fence Fence) (int, error) {
	vkSemaphore, ok := v.semaphores[signal]
	if !ok {
		return 0, fmt.Errorf("unknown semaphore handle %d", signal)
	}
	vkFence, ok := v.fences[fence]
	if !ok {
		return 0, fmt.Errorf("unknown fence handle %d", fence)
	}

	var imageIndex uint32
	if err := vk.Error(vk.AcquireNextImage(v.device, v.swapchain, timeout, vkSemaphore, vkFence, &imageIndex)); err != nil {
		return 0, errors.New("vk.AcquireNextImage(): " + err.Error())
	}
	return int(imageIndex), nil
}

// Submit implements interface
func (v *VulkanDriver) Submit(wait, signal Semaphore) error {
	vkWait, ok := v.semaphores[wait]
	if !ok {
		return fmt.Errorf("unknown semaphore handle %d", wait)
	}
	vkSignal, ok := v.semaphores[signal]
	if !ok {
		return fmt.Errorf("unknown semaphore handle %d", signal)
	}

	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{vkWait},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{v.commandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{vkSignal},
	}}

	if err := vk.Error(vk.QueueSubmit(v.queue, 1, submit, vk.NullFence)); err != nil {
		return errors.New("vk.QueueSubmit(): " + err.Error())
	}
	return nil
}

// SubmitWait implements interface
func (v *VulkanDriver) SubmitWait() error {
	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{v.commandBuffer},
	}}

	if err := vk.Error(vk.QueueSubmit(v.queue, 1, submit, vk.NullFence)); err != nil {
		return errors.New("vk.QueueSubmit(): " + err.Error())
	}
	if err := vk.Error(vk.QueueWaitIdle(v.queue)); err != nil {
		return errors.New("vk.QueueWaitIdle(): " + err.Error())
	}
	return nil
}

// Present implements interface
func (v *VulkanDriver) Present(image int, wait Semaphore) error {
	vkWait, ok := v.semaphores[wait]
	if !ok {
		return fmt.Errorf("unknown semaphore handle %d", wait)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{vkWait},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{v.swapchain},
		PImageIndices:      []uint32{uint32(image)},
	}

	if err := vk.Error(vk.QueuePresent(v.queue, &presentInfo)); err != nil {
		return errors.New("vk.QueuePresent(): " + err.Error())
	}
	return nil
}

// WaitIdle implements interface
func (v *VulkanDriver) WaitIdle() error {
	if err := vk.Error(vk.DeviceWaitIdle(v.device)); err != nil {
		return errors.New("vk.DeviceWaitIdle(): " + err.Error())
	}
	return nil
}

// Destroy implements interface. Child objects created through the
// Driver interface must have been destroyed by their owners first.
func (v *VulkanDriver) Destroy() {
	vk.DestroyDevice(v.device, nil)
	v.device = nil
}
