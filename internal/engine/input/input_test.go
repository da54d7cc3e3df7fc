package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func key(t uint32, sc sdl.Scancode, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: t, Repeat: repeat, Keysym: sdl.Keysym{Scancode: sc}}
}

func TestHeldKeysSurviveFrames(t *testing.T) {
	in := New()
	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_W, 0))

	if !in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("IsKeyPressed(W) = false on the frame it went down")
	}

	in.reset()
	in.handle(key(sdl.KEYDOWN, sdl.SCANCODE_W, 1))
	if in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("IsKeyPressed(W) = true for a key repeat")
	}
	if !in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Error("IsKeyHeld(W) = false while held")
	}

	in.reset()
	in.handle(key(sdl.KEYUP, sdl.SCANCODE_W, 0))
	if in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Error("IsKeyHeld(W) = true after release")
	}
}

func TestAxis(t *testing.T) {
	tests := []struct {
		name string
		down []sdl.Scancode
		want float32
	}{
		{"none", nil, 0},
		{"positive", []sdl.Scancode{sdl.SCANCODE_D}, 1},
		{"negative", []sdl.Scancode{sdl.SCANCODE_A}, -1},
		{"both", []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_D}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			for _, sc := range tt.down {
				in.handle(key(sdl.KEYDOWN, sc, 0))
			}
			if got := in.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D); got != tt.want {
				t.Errorf("Axis() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMouseDeltaAccumulatesPerFrame(t *testing.T) {
	in := New()
	in.handle(&sdl.MouseMotionEvent{XRel: 3, YRel: -2})
	in.handle(&sdl.MouseMotionEvent{XRel: 4, YRel: 1})
	in.handle(&sdl.MouseWheelEvent{Y: 2})

	dx, dy := in.MouseDelta()
	if dx != 7 || dy != -1 {
		t.Errorf("MouseDelta() = (%v, %v), want (7, -1)", dx, dy)
	}
	if w := in.Wheel(); w != 2 {
		t.Errorf("Wheel() = %v, want 2", w)
	}

	in.reset()
	if dx, dy := in.MouseDelta(); dx != 0 || dy != 0 {
		t.Errorf("MouseDelta() after reset = (%v, %v), want (0, 0)", dx, dy)
	}
}

func TestQuitEvent(t *testing.T) {
	in := New()
	in.handle(&sdl.QuitEvent{})
	if !in.quit {
		t.Error("quit not recorded")
	}
	if ev := in.Events(); len(ev) != 1 || ev[0].Type != EventQuit {
		t.Errorf("Events() = %v, want one quit event", ev)
	}
}
