// Package input handles SDL2 input events.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventExpose
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Wait blocks until an event arrives or timeout passes, then collects every
// pending event. A zero timeout polls without blocking.
// Returns true if the viewer should quit.
func (i *Input) Wait(timeout time.Duration) bool {
	i.events = i.events[:0]

	var first sdl.Event
	if timeout > 0 {
		ms := int(timeout / time.Millisecond)
		if ms < 1 {
			ms = 1
		}
		first = sdl.WaitEventTimeout(ms)
	} else {
		first = sdl.PollEvent()
	}

	quit := false
	for event := first; event != nil; event = sdl.PollEvent() {
		if i.convert(event) {
			quit = true
		}
	}
	return quit
}

func (i *Input) convert(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		case sdl.WINDOWEVENT_EXPOSED:
			i.events = append(i.events, Event{Type: EventExpose})
		}

	case *sdl.KeyboardEvent:
		t := EventKeyDown
		if e.Type == sdl.KEYUP {
			t = EventKeyUp
		}
		i.events = append(i.events, Event{
			Type:   t,
			Key:    e.Keysym.Sym,
			Repeat: e.Repeat != 0,
		})

	case *sdl.MouseMotionEvent:
		i.events = append(i.events, Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		})

	case *sdl.MouseButtonEvent:
		t := EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			t = EventMouseUp
		}
		i.events = append(i.events, Event{
			Type:   t,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		})
	}
	return false
}

// Events returns the events collected by the last Wait.
func (i *Input) Events() []Event {
	return i.events
}
