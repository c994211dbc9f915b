// Package sdlinput polls SDL2 events and translates them into input events.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/catapult/internal/engine/input"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_R:      input.KeyR,
	sdl.SCANCODE_F:      input.KeyF,
	sdl.SCANCODE_SPACE:  input.KeySpace,
	sdl.SCANCODE_UP:     input.KeyUp,
	sdl.SCANCODE_DOWN:   input.KeyDown,
	sdl.SCANCODE_LEFT:   input.KeyLeft,
	sdl.SCANCODE_RIGHT:  input.KeyRight,
	sdl.SCANCODE_RETURN: input.KeyReturn,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
}

// Poller collects the per-frame event batch.
type Poller struct {
	events []input.Event
}

// New creates a new poller.
func New() *Poller {
	return &Poller{
		events: make([]input.Event, 0, 16),
	}
}

// Poll drains the SDL queue into a fresh batch.
// Returns true if the window was closed.
func (p *Poller) Poll() bool {
	p.events = p.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			p.events = append(p.events, input.Event{Type: input.EventQuit})
			quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				p.events = append(p.events, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// Key-ups for held keys go to the newly focused window.
				p.events = append(p.events, input.Event{Type: input.EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			key, ok := scancodes[e.Keysym.Scancode]
			if !ok {
				continue
			}
			ev := input.Event{Key: key, Repeat: e.Repeat != 0}
			switch e.Type {
			case sdl.KEYDOWN:
				ev.Type = input.EventKeyDown
			case sdl.KEYUP:
				ev.Type = input.EventKeyUp
			default:
				continue
			}
			p.events = append(p.events, ev)
		}
	}

	return quit
}

// Events returns the batch from the last Poll. The slice is reused by the
// next Poll.
func (p *Poller) Events() []input.Event {
	return p.events
}
