package main

import (
	"runtime"

	"github.com/devblok/glimmer/core"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

func nullTerminated(names []string) []string {
	terminated := make([]string, len(names))
	for i, name := range names {
		terminated[i] = name + "\x00"
	}
	return terminated
}

func newWindow(cfg core.RendererConfiguration) (*sdl.Window, error) {
	return sdl.CreateWindow("Glimmer",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN|sdl.WINDOW_SHOWN)
}

// renderStack holds every graphics component in construction order.
// Teardown runs strictly in reverse, violating that order is
// undefined behaviour at the driver level.
type renderStack struct {
	instance *core.VulkanInstance
	driver   *core.VulkanDriver
	surface  *core.SurfaceManager
	renderer *core.FrameRenderer
}

func buildRenderStack(window *sdl.Window, cfg core.Configuration, logger log.FieldLogger) (*renderStack, error) {
	instance, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo,
		sdl.VulkanGetVkGetInstanceProcAddr(),
		core.InstanceConfiguration{
			DebugMode:  cfg.Renderer.DebugMode,
			Extensions: nullTerminated(window.VulkanGetInstanceExtensions()),
		})
	if err != nil {
		return nil, err
	}

	for _, info := range instance.PhysicalDevicesInfo() {
		logger.WithFields(log.Fields{
			"name":   info.Name,
			"vendor": info.VendorID,
			"memory": info.Memory,
		}).Info("physical device")
	}

	surface, err := window.VulkanCreateSurface(instance.Instance())
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	instance.SetSurface(surface)

	driver, err := core.NewVulkanDriver(instance, cfg.Renderer)
	if err != nil {
		instance.Destroy()
		return nil, err
	}

	surfaceManager, err := core.NewSurfaceManager(driver, cfg.Renderer, logger)
	if err != nil {
		driver.Destroy()
		instance.Destroy()
		return nil, err
	}

	renderer, err := core.NewFrameRenderer(driver, surfaceManager.ImageCount(), cfg.Renderer, logger)
	if err != nil {
		surfaceManager.Destroy()
		driver.Destroy()
		instance.Destroy()
		return nil, err
	}

	return &renderStack{
		instance: instance,
		driver:   driver,
		surface:  surfaceManager,
		renderer: renderer,
	}, nil
}

func (s *renderStack) destroy() {
	s.renderer.Destroy()
	s.surface.Destroy()
	s.driver.Destroy()
	s.instance.Destroy()
}

func main() {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := core.ConfigurationFromEnv()
	if err != nil {
		logger.WithError(err).Fatal("configuration")
	}
	if cfg.Renderer.DebugMode {
		logger.SetLevel(log.DebugLevel)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_JOYSTICK); err != nil {
		logger.WithError(err).Fatal("sdl.Init()")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		logger.WithError(err).Fatal("sdl.VulkanLoadLibrary()")
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := newWindow(cfg.Renderer)
	if err != nil {
		logger.WithError(err).Fatal("sdl.CreateWindow()")
	}
	defer window.Destroy()

	stack, err := buildRenderStack(window, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("renderer setup")
	}

	time := core.NewTime(cfg.Time)
	exitC := make(chan struct{}, 2)

EventLoop:
	for {
		select {
		case <-exitC:
			logger.Info("event loop exited")
			break EventLoop
		case <-time.FpsTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						exitC <- struct{}{}
						continue EventLoop
					}
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_CLOSE {
						exitC <- struct{}{}
						continue EventLoop
					}
				case *sdl.QuitEvent:
					exitC <- struct{}{}
					continue EventLoop
				default:
					if wantMotionEvent(event) {
						logger.WithField("type", event.GetType()).Debug("motion event")
					}
				}
			}

			if err := stack.renderer.RenderFrame(); err != nil {
				logger.WithError(err).Error("render frame")
				exitC <- struct{}{}
			}
		}
	}

	stack.destroy()
}
