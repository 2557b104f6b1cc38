package core

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// compositeAlphaPreference is the fixed scan order for picking an
// alpha compositing mode from the supported bitmask
var compositeAlphaPreference = []CompositeAlpha{
	CompositeAlphaOpaque,
	CompositeAlphaPreMultiplied,
	CompositeAlphaPostMultiplied,
	CompositeAlphaInherit,
}

// SelectSurfaceFormat picks the first device-reported surface format
// matching the preferred pixel format
func SelectSurfaceFormat(formats []SurfaceFormat, preferred Format) (SurfaceFormat, error) {
	for _, f := range formats {
		if f.Format == preferred {
			return f, nil
		}
	}
	return SurfaceFormat{}, fmt.Errorf("preferred surface format %d not reported by device", preferred)
}

// SelectPresentMode picks strict fifo ordering, the only mode that
// guarantees no tearing with bounded latency on every device
func SelectPresentMode(modes []PresentMode) (PresentMode, error) {
	for _, m := range modes {
		if m == PresentModeFifo {
			return m, nil
		}
	}
	return 0, errors.New("fifo present mode not reported by device")
}

// SelectCompositeAlpha picks the first supported mode in fixed
// preference scan order
func SelectCompositeAlpha(supported CompositeAlpha) (CompositeAlpha, error) {
	for _, alpha := range compositeAlphaPreference {
		if supported&alpha != 0 {
			return alpha, nil
		}
	}
	return 0, errors.New("no supported composite alpha mode")
}

// NewSurfaceManager negotiates swapchain parameters against the
// capabilities the driver reports and builds the swapchain. Every
// parameter in the resulting config is guaranteed supported.
func NewSurfaceManager(driver Driver, cfg RendererConfiguration, log logrus.FieldLogger) (*SurfaceManager, error) {
	caps, err := driver.SurfaceCapabilities()
	if err != nil {
		return nil, errors.New("driver.SurfaceCapabilities(): " + err.Error())
	}

	formats, err := driver.SurfaceFormats()
	if err != nil {
		return nil, errors.New("driver.SurfaceFormats(): " + err.Error())
	}

	modes, err := driver.PresentModes()
	if err != nil {
		return nil, errors.New("driver.PresentModes(): " + err.Error())
	}

	format, err := SelectSurfaceFormat(formats, cfg.PreferredFormat)
	if err != nil {
		return nil, err
	}

	mode, err := SelectPresentMode(modes)
	if err != nil {
		return nil, err
	}

	alpha, err := SelectCompositeAlpha(caps.SupportedCompositeAlpha)
	if err != nil {
		return nil, err
	}

	if caps.SupportedUsage&ImageUsageColorAttachment == 0 {
		return nil, errors.New("surface images not usable as a render target")
	}

	minImages := caps.MinImageCount
	if cfg.SwapchainSize > minImages {
		minImages = cfg.SwapchainSize
	}
	if caps.MaxImageCount != 0 && minImages > caps.MaxImageCount {
		minImages = caps.MaxImageCount
	}

	swapchainConfig := SwapchainConfig{
		MinImageCount:  minImages,
		Format:         format,
		Extent:         caps.CurrentExtent,
		ArrayLayers:    1,
		Usage:          ImageUsageColorAttachment | ImageUsageTransferDst,
		PreTransform:   caps.CurrentTransform,
		CompositeAlpha: alpha,
		PresentMode:    mode,
		Clipped:        true,
	}

	imageCount, err := driver.CreateSwapchain(swapchainConfig)
	if err != nil {
		return nil, errors.New("driver.CreateSwapchain(): " + err.Error())
	}

	log.WithFields(logrus.Fields{
		"images": imageCount,
		"format": format.Format,
		"width":  swapchainConfig.Extent.Width,
		"height": swapchainConfig.Extent.Height,
	}).Info("swapchain created")

	return &SurfaceManager{
		driver:     driver,
		log:        log,
		config:     swapchainConfig,
		imageCount: imageCount,
	}, nil
}

// SurfaceManager owns the drawable surface's swapchain and the
// parameters it was negotiated with
type SurfaceManager struct {
	driver Driver
	log    logrus.FieldLogger

	config     SwapchainConfig
	imageCount int
}

// ImageCount returns how many presentable images the swapchain owns
func (s *SurfaceManager) ImageCount() int {
	return s.imageCount
}

// Config returns the negotiated swapchain parameters
func (s *SurfaceManager) Config() SwapchainConfig {
	return s.config
}

// Destroy implements interface
func (s *SurfaceManager) Destroy() {
	s.driver.DestroySwapchain()
}
