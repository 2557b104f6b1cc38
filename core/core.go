package core

// Renderer describes the per-frame rendering machinery.
// Once constructed it is ready to use.
type Renderer interface {
	// RenderFrame acquires, clears and presents one swapchain image.
	// Safe to call repeatedly from the host event loop
	RenderFrame() error

	// Destroy destroys internal members
	Destroy()
}

// Destroyable releases owned resources of an object
type Destroyable interface {
	Destroy()
}

// PhysicalDeviceInfo describes available physical properties
// of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint
}
