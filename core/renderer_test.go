package core_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devblok/glimmer/core"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testRendererConfig() core.RendererConfiguration {
	return core.RendererConfiguration{
		PreferredFormat: core.FormatRGBA8Unorm,
		ClearStep:       0.01,
	}
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func TestFrameRendererSetupTransitionsEveryImage(t *testing.T) {
	driver := newFakeDriver()

	_, err := core.NewFrameRenderer(driver, 3, testRendererConfig(), testLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"begin",
		"transition[0] undefined->present",
		"transition[1] undefined->present",
		"transition[2] undefined->present",
		"end",
		"submitWait",
	}, driver.ops)
	assert.Equal(t, []string{"commandBuffer", "fence-1", "semaphore-2", "semaphore-3"}, driver.created)
	assert.Empty(t, driver.violations)
}

func TestFrameRendererSetupFenceFailureLeavesNoObjects(t *testing.T) {
	driver := newFakeDriver()
	driver.failCreateFence = true

	_, err := core.NewFrameRenderer(driver, 2, testRendererConfig(), testLogger())
	require.Error(t, err)

	assert.Zero(t, driver.liveObjects())
	assert.Empty(t, driver.violations)
}

func TestFrameRendererSetupSemaphoreFailureLeavesNoObjects(t *testing.T) {
	driver := newFakeDriver()
	driver.failSemaphoreCreation = 2

	_, err := core.NewFrameRenderer(driver, 2, testRendererConfig(), testLogger())
	require.Error(t, err)

	assert.Zero(t, driver.liveObjects())
	assert.Empty(t, driver.violations)
}

func TestRenderFrameProtocolOrder(t *testing.T) {
	driver := newFakeDriver()
	renderer, err := core.NewFrameRenderer(driver, 3, testRendererConfig(), testLogger())
	require.NoError(t, err)

	driver.ops = nil
	require.NoError(t, renderer.RenderFrame())

	assert.Equal(t, []string{
		"acquire",
		"waitFence",
		"resetFence",
		"resetCommands",
		"begin",
		"transition[0] present->transferDst",
		"clear[0]",
		"transition[0] transferDst->present",
		"end",
		"submit",
		"present[0]",
	}, driver.ops)
	assert.Empty(t, driver.violations)
}

func TestRenderFrameSingleFrameInFlight(t *testing.T) {
	driver := newFakeDriver()
	renderer, err := core.NewFrameRenderer(driver, 3, testRendererConfig(), testLogger())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, renderer.RenderFrame())
	}

	// the fake flags any re-recording that races a pending fence
	assert.Empty(t, driver.violations)
}

func TestRenderFrameAdvancesClearColor(t *testing.T) {
	driver := newFakeDriver()
	cfg := testRendererConfig()
	cfg.ClearStep = 0.25

	renderer, err := core.NewFrameRenderer(driver, 3, cfg, testLogger())
	require.NoError(t, err)

	require.NoError(t, renderer.RenderFrame())
	require.NoError(t, renderer.RenderFrame())

	require.Len(t, driver.clearColors, 2)
	for channel := 0; channel < 4; channel++ {
		assert.InDelta(t, 0.25, driver.clearColors[0][channel], 1e-6)
		assert.InDelta(t, 0.5, driver.clearColors[1][channel], 1e-6)
	}
}

func TestFrameRendererDestroyReverseOrder(t *testing.T) {
	driver := newFakeDriver()
	renderer, err := core.NewFrameRenderer(driver, 3, testRendererConfig(), testLogger())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, renderer.RenderFrame())
	}
	renderer.Destroy()

	assert.Equal(t, reversed(driver.created), driver.destroyed)
	assert.Zero(t, driver.liveObjects())
	assert.Contains(t, driver.ops, "waitIdle")
	assert.Empty(t, driver.violations)
}
