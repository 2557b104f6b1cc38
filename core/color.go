package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewClearColor creates a clear color starting at black that
// advances every channel by step per frame
func NewClearColor(step float32) *ClearColor {
	return &ClearColor{step: step}
}

// ClearColor is the four channel clear color state, mutated once
// per frame by a deterministic animation rule
type ClearColor struct {
	value mgl32.Vec4
	step  float32
}

// Advance moves every channel forward by the configured step,
// wrapping into [0, 1), and returns the updated color
func (c *ClearColor) Advance() mgl32.Vec4 {
	for i := range c.value {
		c.value[i] = float32(math.Mod(float64(c.value[i])+float64(c.step), 1.0))
	}
	return c.value
}

// Value returns the current color without advancing it
func (c *ClearColor) Value() mgl32.Vec4 {
	return c.value
}
