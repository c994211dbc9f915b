// Package catapult assembles the catapult model and animates its throw arm.
package catapult

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/catapult/internal/engine/input"
	"github.com/Faultbox/catapult/internal/engine/scene"
	"github.com/Faultbox/catapult/internal/engine/texture"
	"github.com/Faultbox/catapult/internal/logger"
	"github.com/Faultbox/catapult/pkg/math"
)

// Arm angle limits in radians. 0 is the upright, released position.
const (
	LowerBound = -math32.Pi/2 + math32.Pi/16
	UpperBound = 0
)

// WinderRatio is how far the drum turns per radian of arm travel.
const WinderRatio = 4

// State is the arm's animation state.
type State int

const (
	Idle State = iota
	Winding
	Throwing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Winding:
		return "winding"
	case Throwing:
		return "throwing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config tunes the controls and the arm motion.
type Config struct {
	WindKey  input.Key
	ThrowKey input.Key

	WindStep  float32 // Peak radians per tick while winding
	ThrowStep float32 // Peak radians per tick while throwing
	MinEase   float32 // Slowest fraction of a step, at either bound
	Epsilon   float32 // Snap distance to the target bound
}

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid catapult config")

// Validate rejects settings under which the arm could stall or leave its
// bounds. A zero MinEase stalls at the bounds, where sin(pi*p) is zero.
func (cfg Config) Validate() error {
	switch {
	case cfg.WindStep <= 0:
		return fmt.Errorf("%w: wind step %v", ErrInvalidConfig, cfg.WindStep)
	case cfg.ThrowStep <= 0:
		return fmt.Errorf("%w: throw step %v", ErrInvalidConfig, cfg.ThrowStep)
	case cfg.MinEase <= 0 || cfg.MinEase > 1:
		return fmt.Errorf("%w: min ease %v not in (0, 1]", ErrInvalidConfig, cfg.MinEase)
	case cfg.Epsilon < 0:
		return fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, cfg.Epsilon)
	case cfg.WindKey == cfg.ThrowKey:
		return fmt.Errorf("%w: wind and throw share key %s", ErrInvalidConfig, cfg.WindKey)
	}
	return nil
}

// DefaultConfig returns R to wind and Space to throw, with the throw ten
// times faster than the wind.
func DefaultConfig() Config {
	return Config{
		WindKey:   input.KeyR,
		ThrowKey:  input.KeySpace,
		WindStep:  0.01,
		ThrowStep: 0.1,
		MinEase:   0.25,
		Epsilon:   1e-3,
	}
}

// Catapult is a scene drawable made of rigid parts, two of which follow a
// single arm angle.
type Catapult struct {
	cfg       Config
	graph     *scene.Graph
	placement math.Mat4

	arm    scene.NodeID
	winder scene.NodeID

	angle float32
	state State
}

// New uploads every part and assembles the catapult at the origin. All
// parts share tex, which may be nil.
func New(up scene.Uploader, tex *texture.Handle, cfg Config) (*Catapult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Catapult{
		cfg:       cfg,
		graph:     scene.NewGraph(),
		placement: math.Identity(),
	}

	ids := make(map[string]scene.NodeID)
	for _, p := range parts() {
		node := scene.Node{Name: p.name, Local: p.local}
		if p.build != nil {
			m, err := up.UploadMesh(p.build())
			if err != nil {
				c.graph.Destroy()
				return nil, fmt.Errorf("uploading %s: %w", p.name, err)
			}
			node.Mesh = m
			node.Texture = tex
		}

		parent := scene.Root
		if p.parent != "" {
			parent = ids[p.parent]
		}
		ids[p.name] = c.graph.Add(parent, node)
	}
	c.arm = ids[NodeArm]
	c.winder = ids[NodeWinder]

	c.applyAngle()
	logger.Debug("catapult assembled", zap.Int("nodes", c.graph.Len()))
	return c, nil
}

// Angle returns the current arm angle.
func (c *Catapult) Angle() float32 {
	return c.angle
}

// State returns the animation state.
func (c *Catapult) State() State {
	return c.state
}

// Winding reports whether the arm is being wound down.
func (c *Catapult) Winding() bool {
	return c.state == Winding
}

// Throwing reports whether the arm is swinging up.
func (c *Catapult) Throwing() bool {
	return c.state == Throwing
}

// Bounds returns the arm angle limits.
func (c *Catapult) Bounds() (lower, upper float32) {
	return LowerBound, UpperBound
}

// Graph exposes the part tree.
func (c *Catapult) Graph() *scene.Graph {
	return c.graph
}

// SetPlacement positions the whole catapult in the world.
func (c *Catapult) SetPlacement(m math.Mat4) {
	c.placement = m
}

// Wind starts winding. It returns false, changing nothing, while the arm
// is already moving.
func (c *Catapult) Wind() bool {
	return c.start(Winding)
}

// Throw releases the arm. It returns false while the arm is already moving.
func (c *Catapult) Throw() bool {
	return c.start(Throwing)
}

func (c *Catapult) start(s State) bool {
	if c.state != Idle {
		logger.Debug("catapult busy, request ignored",
			zap.Stringer("state", c.state), zap.Stringer("requested", s))
		return false
	}
	c.state = s
	logger.Debug("catapult state", zap.Stringer("state", s), zap.Float32("angle", c.angle))
	return true
}

// Update handles fresh key presses in the batch and then advances the arm
// by one tick.
func (c *Catapult) Update(events []input.Event) {
	for _, ev := range events {
		if ev.Type != input.EventKeyDown || ev.Repeat {
			continue
		}
		switch ev.Key {
		case c.cfg.WindKey:
			c.Wind()
		case c.cfg.ThrowKey:
			c.Throw()
		}
	}
	c.Tick()
}

// ease scales a step by how far the arm is between the bounds: slow near
// either end, full speed in the middle, never zero.
func (c *Catapult) ease() float32 {
	p := (c.angle - LowerBound) / (UpperBound - LowerBound)
	return c.cfg.MinEase + (1-c.cfg.MinEase)*math32.Sin(math32.Pi*p)
}

// Tick advances the arm one step towards the current target bound. On
// reaching it the angle is set exactly to the bound and the arm goes idle.
func (c *Catapult) Tick() {
	switch c.state {
	case Winding:
		next := c.angle - c.cfg.WindStep*c.ease()
		if next <= LowerBound+c.cfg.Epsilon {
			c.finish(LowerBound)
			return
		}
		c.angle = next
	case Throwing:
		next := c.angle + c.cfg.ThrowStep*c.ease()
		if next >= UpperBound-c.cfg.Epsilon {
			c.finish(UpperBound)
			return
		}
		c.angle = next
	default:
		return
	}
	c.applyAngle()
}

func (c *Catapult) finish(bound float32) {
	c.angle = bound
	c.state = Idle
	c.applyAngle()
	logger.Debug("catapult state", zap.Stringer("state", Idle), zap.Float32("angle", bound))
}

// applyAngle rebuilds the arm and winder transforms from the angle.
func (c *Catapult) applyAngle() {
	c.graph.SetLocal(c.arm, ArmLocal(c.angle))
	c.graph.SetLocal(c.winder, WinderLocal(c.angle))
}

// ArmLocal returns the arm's local transform for the given angle: the
// rest pose rotated about ArmPivot.
func ArmLocal(angle float32) math.Mat4 {
	return math.QuatFromAxisAngle(math.Vec3{Z: 1}, angle).ToMat4About(ArmPivot).Mul(armRest)
}

// WinderLocal returns the drum's local transform for the given arm angle.
func WinderLocal(angle float32) math.Mat4 {
	return math.QuatFromAxisAngle(math.Vec3{Z: 1}, WinderRatio*angle).ToMat4About(WinderPivot).Mul(winderRest)
}

// Draw renders the parts under world*placement.
func (c *Catapult) Draw(ctx *scene.RenderContext, world math.Mat4) error {
	if err := c.graph.Draw(ctx, world.Mul(c.placement)); err != nil {
		return fmt.Errorf("catapult: %w", err)
	}
	return nil
}

// Destroy releases the parts' meshes and texture references.
func (c *Catapult) Destroy() {
	c.graph.Destroy()
}
