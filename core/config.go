package core

import (
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
)

// Configuration defines a global application configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int
}

// InstanceConfiguration is used to configure the graphics instance
type InstanceConfiguration struct {
	DebugMode bool

	Layers     []string
	Extensions []string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	// SwapchainSize overrides the minimum image count negotiated
	// from surface capabilities when non-zero
	SwapchainSize uint32

	// PreferredFormat is the pixel format the surface must expose,
	// setup fails when the device does not report it
	PreferredFormat Format

	// ClearStep is the per-frame increment of every clear color
	// channel, wrapping modulo 1.0
	ClearStep float32

	ScreenWidth  uint32
	ScreenHeight uint32

	DebugMode bool
}

// DefaultConfiguration returns the settings the sample runs with
// when the environment supplies nothing
func DefaultConfiguration() Configuration {
	return Configuration{
		Renderer: RendererConfiguration{
			PreferredFormat: FormatRGBA8Unorm,
			ClearStep:       0.01,
			ScreenWidth:     800,
			ScreenHeight:    600,
		},
	}
}

// ConfigurationFromEnv builds a Configuration from the process
// environment, reading a .env file first when one is present
func ConfigurationFromEnv() (Configuration, error) {
	// a missing .env file is not an error, the environment still applies
	godotenv.Load()

	cfg := DefaultConfiguration()

	width, err := strconv.ParseUint(envy.Get("GLIMMER_WIDTH", "800"), 10, 32)
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.ScreenWidth = uint32(width)

	height, err := strconv.ParseUint(envy.Get("GLIMMER_HEIGHT", "600"), 10, 32)
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.ScreenHeight = uint32(height)

	swapchainSize, err := strconv.ParseUint(envy.Get("GLIMMER_SWAPCHAIN_SIZE", "0"), 10, 32)
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.SwapchainSize = uint32(swapchainSize)

	step, err := strconv.ParseFloat(envy.Get("GLIMMER_CLEAR_STEP", "0.01"), 32)
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.ClearStep = float32(step)

	fps, err := strconv.Atoi(envy.Get("GLIMMER_FPS", "0"))
	if err != nil {
		return cfg, err
	}
	cfg.Time.FramesPerSecond = fps

	debug, err := strconv.ParseBool(envy.Get("GLIMMER_DEBUG", "false"))
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.DebugMode = debug

	return cfg, nil
}
