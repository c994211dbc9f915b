package input

import (
	"errors"
	"testing"
)

func TestParseKeyRoundTrip(t *testing.T) {
	for k, name := range keyNames {
		got, err := ParseKey(name)
		if err != nil {
			t.Errorf("ParseKey(%q) error: %v", name, err)
			continue
		}
		if got != k {
			t.Errorf("ParseKey(%q) = %v, want %v", name, got, k)
		}
	}
}

func TestParseKeyIgnoresCase(t *testing.T) {
	got, err := ParseKey("space")
	if err != nil || got != KeySpace {
		t.Errorf("ParseKey(space) = %v, %v; want Space", got, err)
	}
}

func TestParseKeyUnknown(t *testing.T) {
	_, err := ParseKey("Hyper")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("ParseKey(Hyper) error = %v, want ErrUnknownKey", err)
	}
	if KeyUnknown.String() != "Unknown" {
		t.Errorf("KeyUnknown.String() = %q", KeyUnknown.String())
	}
}

func TestPressed(t *testing.T) {
	events := []Event{
		Up(KeyR),
		{Type: EventKeyDown, Key: KeySpace, Repeat: true},
		Down(KeyW),
	}
	if !Pressed(events, KeyW) {
		t.Error("expected W pressed")
	}
	if Pressed(events, KeyR) {
		t.Error("key-up must not count as pressed")
	}
	if Pressed(events, KeySpace) {
		t.Error("repeat must not count as pressed")
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventKeyDown, "keydown"},
		{EventFocusLost, "focuslost"},
		{EventNone, "none"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", int(tt.typ), got, tt.want)
		}
	}
}
