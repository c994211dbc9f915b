// Package input defines the backend-independent input events consumed by the
// camera and the scene.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned by ParseKey for names it does not recognize.
var ErrUnknownKey = errors.New("unknown key")

// EventType identifies the kind of event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventFocusLost
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventWindowResize:
		return "resize"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventFocusLost:
		return "focuslost"
	default:
		return "none"
	}
}

// Key identifies a physical key.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyR
	KeyF
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyReturn
	KeyEscape
)

var keyNames = map[Key]string{
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyQ:      "Q",
	KeyE:      "E",
	KeyR:      "R",
	KeyF:      "F",
	KeySpace:  "Space",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeyReturn: "Return",
	KeyEscape: "Escape",
}

// String returns the key name as used in config files.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey returns the key with the given name. Matching ignores case.
func ParseKey(name string) (Key, error) {
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool
	Width  int
	Height int
}

// Down returns a key-down event for k.
func Down(k Key) Event {
	return Event{Type: EventKeyDown, Key: k}
}

// Up returns a key-up event for k.
func Up(k Key) Event {
	return Event{Type: EventKeyUp, Key: k}
}

// Pressed reports whether the batch holds a fresh (non-repeat) key-down for k.
func Pressed(events []Event, k Key) bool {
	for _, e := range events {
		if e.Type == EventKeyDown && e.Key == k && !e.Repeat {
			return true
		}
	}
	return false
}
