// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/hookshot/internal/movement"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Input polls SDL once per frame and keeps the player's action state.
type Input struct {
	bindings Bindings
	events   []Event
	state    actionState

	// Relative mouse motion since the last Update.
	mouseDX, mouseDY float32
}

// New creates an input handler with resolved bindings.
func New(b Bindings) *Input {
	return &Input{
		bindings: b,
		events:   make([]Event, 0, 4),
	}
}

// SetBindings replaces the bindings.
func (i *Input) SetBindings(b Bindings) { i.bindings = b }

// CaptureMouse switches relative mouse mode on or off.
func (i *Input) CaptureMouse(on bool) {
	sdl.SetRelativeMouseMode(on)
}

// Update polls SDL events and refreshes the action state.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.mouseDX, i.mouseDY = 0, 0

	var down, up [actionCount]bool
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE && e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventQuit})
				quit = true
				continue
			}
			for a, b := range i.bindings {
				if b.Button == 0 && b.Key == e.Keysym.Scancode {
					down[a] = down[a] || e.Type == sdl.KEYDOWN
					up[a] = up[a] || e.Type == sdl.KEYUP
				}
			}

		case *sdl.MouseMotionEvent:
			i.mouseDX += float32(e.XRel)
			i.mouseDY += float32(e.YRel)

		case *sdl.MouseButtonEvent:
			for a, b := range i.bindings {
				if b.Button != 0 && b.Button == e.Button {
					down[a] = down[a] || e.Type == sdl.MOUSEBUTTONDOWN
					up[a] = up[a] || e.Type == sdl.MOUSEBUTTONUP
				}
			}
		}
	}

	i.state.set(i.sample(), down, up)
	return quit
}

// sample reads the held state of every binding.
func (i *Input) sample() [actionCount]bool {
	var held [actionCount]bool
	keys := sdl.GetKeyboardState()
	_, _, buttons := sdl.GetMouseState()
	for a, b := range i.bindings {
		if b.Button != 0 {
			held[a] = buttons&sdl.Button(uint32(b.Button)) != 0
			continue
		}
		if int(b.Key) < len(keys) {
			held[a] = keys[b.Key] != 0
		}
	}
	return held
}

// Events returns the window events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// MouseDelta returns the relative mouse motion from the last Update.
func (i *Input) MouseDelta() (dx, dy float32) {
	return i.mouseDX, i.mouseDY
}

// Pressed reports whether an action went down this frame.
func (i *Input) Pressed(a Action) bool {
	return i.state.pressed[a]
}

// Movement returns the controller input for this frame.
func (i *Input) Movement() movement.Input {
	return i.state.movementInput()
}
