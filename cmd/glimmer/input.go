package main

import "github.com/veandco/go-sdl2/sdl"

// wantMotionEvent reports whether a motion event originates from a
// pointer or joystick class device. Events from anything else are
// left to SDL's default processing.
func wantMotionEvent(event sdl.Event) bool {
	switch event.(type) {
	case *sdl.MouseMotionEvent, *sdl.JoyAxisEvent, *sdl.JoyBallEvent:
		return true
	default:
		return false
	}
}
