// Package camera provides the first-person fly camera.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/catapult/internal/engine/input"
	"github.com/Faultbox/catapult/pkg/math"
)

// Intent is a level-triggered motion flag held while its key is down.
type Intent int

const (
	IntentNone Intent = iota
	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	LookUp
	LookDown
	LookLeft
	LookRight
	intentCount
)

var intentNames = [intentCount]string{
	IntentNone:   "none",
	MoveForward:  "forward",
	MoveBackward: "backward",
	MoveLeft:     "left",
	MoveRight:    "right",
	MoveUp:       "up",
	MoveDown:     "down",
	LookUp:       "look-up",
	LookDown:     "look-down",
	LookLeft:     "look-left",
	LookRight:    "look-right",
}

// String returns the intent name.
func (i Intent) String() string {
	if i < 0 || i >= intentCount {
		return fmt.Sprintf("Intent(%d)", int(i))
	}
	return intentNames[i]
}

// Bindings maps keys to the intent they drive.
type Bindings map[input.Key]Intent

// DefaultBindings returns the stock layout: W/S forward and back, A/D
// strafe, Q/E rise and sink, arrow keys look around.
func DefaultBindings() Bindings {
	return Bindings{
		input.KeyW:     MoveForward,
		input.KeyS:     MoveBackward,
		input.KeyA:     MoveLeft,
		input.KeyD:     MoveRight,
		input.KeyQ:     MoveUp,
		input.KeyE:     MoveDown,
		input.KeyUp:    LookUp,
		input.KeyDown:  LookDown,
		input.KeyLeft:  LookLeft,
		input.KeyRight: LookRight,
	}
}

// Defaults.
const (
	DefaultMoveSpeed   = 0.05
	DefaultRotateSpeed = 0.05
	DefaultFOVY        = math32.Pi / 2
	DefaultNear        = 0.1
	DefaultFar         = 1024
	DefaultAspect      = 1024.0 / 768.0
)

// maxPitchDot bounds |forward . worldUp|. Pitching past it would make the
// motion basis degenerate.
const maxPitchDot = 0.995

// FlyCamera moves freely through the scene driven by held keys.
type FlyCamera struct {
	Position  math.Vec3
	Direction math.Vec3 // Not kept unit length; View renormalizes.

	AspectRatio float32
	MoveSpeed   float32 // Units per tick
	RotateSpeed float32 // Radians per tick

	FOVY float32 // Vertical field of view in radians
	Near float32
	Far  float32

	Bindings Bindings

	intents [intentCount]bool
}

// NewFlyCamera creates a camera at (-5,1,1) looking down +X.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position:    math.Vec3{X: -5, Y: 1, Z: 1},
		Direction:   math.Vec3{X: 2, Y: 0, Z: 0},
		AspectRatio: DefaultAspect,
		MoveSpeed:   DefaultMoveSpeed,
		RotateSpeed: DefaultRotateSpeed,
		FOVY:        DefaultFOVY,
		Near:        DefaultNear,
		Far:         DefaultFar,
		Bindings:    DefaultBindings(),
	}
}

// ProcessInput applies a single event. Key-down on a bound key sets its
// intent, key-up clears it and losing focus clears them all. Everything
// else is ignored.
func (c *FlyCamera) ProcessInput(ev input.Event) {
	if ev.Type == input.EventFocusLost {
		c.ClearIntents()
		return
	}
	intent, ok := c.Bindings[ev.Key]
	if !ok || intent == IntentNone {
		return
	}
	switch ev.Type {
	case input.EventKeyDown:
		c.intents[intent] = true
	case input.EventKeyUp:
		c.intents[intent] = false
	}
}

// ProcessEvents applies a batch in order.
func (c *FlyCamera) ProcessEvents(events []input.Event) {
	for _, ev := range events {
		c.ProcessInput(ev)
	}
}

// Intent reports whether i is currently held.
func (c *FlyCamera) Intent(i Intent) bool {
	if i <= IntentNone || i >= intentCount {
		return false
	}
	return c.intents[i]
}

// ClearIntents releases every held intent.
func (c *FlyCamera) ClearIntents() {
	c.intents = [intentCount]bool{}
}

// basis returns the orthonormal motion basis derived from Direction.
func (c *FlyCamera) basis() (forward, right, up math.Vec3) {
	forward = c.Direction.Normalize()
	right = forward.Cross(math.WorldUp).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Update integrates held intents over one fixed tick.
func (c *FlyCamera) Update() {
	forward, right, up := c.basis()

	var move math.Vec3
	if c.intents[MoveForward] {
		move = move.Add(forward)
	}
	if c.intents[MoveBackward] {
		move = move.Sub(forward)
	}
	if c.intents[MoveRight] {
		move = move.Add(right)
	}
	if c.intents[MoveLeft] {
		move = move.Sub(right)
	}
	if c.intents[MoveUp] {
		move = move.Add(up)
	}
	if c.intents[MoveDown] {
		move = move.Sub(up)
	}
	c.Position = c.Position.Add(move.Scale(c.MoveSpeed))

	// Yaw about the local up axis, then pitch about the local right axis.
	// Both are rebuilt from Direction every tick so no orientation drifts.
	var yaw, pitch float32
	if c.intents[LookLeft] {
		yaw += c.RotateSpeed
	}
	if c.intents[LookRight] {
		yaw -= c.RotateSpeed
	}
	if c.intents[LookUp] {
		pitch += c.RotateSpeed
	}
	if c.intents[LookDown] {
		pitch -= c.RotateSpeed
	}

	dir := forward
	if yaw != 0 {
		dir = math.QuatFromAxisAngle(up, yaw).Rotate(dir)
		// Pitch about the yawed right axis, not the one from before the turn.
		right = dir.Normalize().Cross(math.WorldUp).Normalize()
	}
	if pitch != 0 {
		pitched := math.QuatFromAxisAngle(right, pitch).Rotate(dir)
		if math32.Abs(pitched.Normalize().Dot(math.WorldUp)) < maxPitchDot {
			dir = pitched
		}
	}
	if yaw != 0 || pitch != 0 {
		c.Direction = dir
	}
}

// View returns the world-to-camera transform.
func (c *FlyCamera) View() math.Mat4 {
	return math.LookDir(c.Position, c.Direction, math.WorldUp)
}

// Perspective returns the projection for the current aspect ratio.
func (c *FlyCamera) Perspective() math.Mat4 {
	return math.Perspective(c.FOVY, c.AspectRatio, c.Near, c.Far)
}

// SetAspectRatio is called on window resize.
func (c *FlyCamera) SetAspectRatio(ratio float32) {
	if ratio > 0 {
		c.AspectRatio = ratio
	}
}

// SetPosition moves the camera.
func (c *FlyCamera) SetPosition(p math.Vec3) {
	c.Position = p
}

// SetDirection points the camera along d. Zero and vertical directions
// are rejected since no basis can be derived from them.
func (c *FlyCamera) SetDirection(d math.Vec3) error {
	n, err := d.NormalizeChecked()
	if err != nil {
		return fmt.Errorf("camera direction: %w", err)
	}
	if math32.Abs(n.Dot(math.WorldUp)) >= maxPitchDot {
		return fmt.Errorf("camera direction %v is parallel to world up", d)
	}
	c.Direction = d
	return nil
}
