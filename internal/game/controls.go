package game

import (
	"fmt"

	"github.com/Faultbox/catapult/internal/config"
	"github.com/Faultbox/catapult/internal/engine/camera"
	"github.com/Faultbox/catapult/internal/engine/input"
	"github.com/Faultbox/catapult/internal/game/catapult"
)

// Controls is the parsed key layout.
type Controls struct {
	Camera     camera.Bindings
	Wind       input.Key
	Throw      input.Key
	Fullscreen input.Key
	Quit       input.Key
}

// ParseControls resolves the configured key names. A key may only be
// bound to one action.
func ParseControls(cfg config.ControlsConfig) (Controls, error) {
	c := Controls{Camera: make(camera.Bindings)}
	used := make(map[input.Key]string)

	bind := func(action, name string) (input.Key, error) {
		key, err := input.ParseKey(name)
		if err != nil {
			return input.KeyUnknown, fmt.Errorf("controls.%s: %w", action, err)
		}
		if prev, ok := used[key]; ok {
			return input.KeyUnknown, fmt.Errorf("controls.%s: %s already bound to %s", action, key, prev)
		}
		used[key] = action
		return key, nil
	}

	intents := []struct {
		action string
		name   string
		intent camera.Intent
	}{
		{"forward", cfg.Forward, camera.MoveForward},
		{"backward", cfg.Backward, camera.MoveBackward},
		{"left", cfg.Left, camera.MoveLeft},
		{"right", cfg.Right, camera.MoveRight},
		{"up", cfg.Up, camera.MoveUp},
		{"down", cfg.Down, camera.MoveDown},
		{"look_up", cfg.LookUp, camera.LookUp},
		{"look_down", cfg.LookDown, camera.LookDown},
		{"look_left", cfg.LookLeft, camera.LookLeft},
		{"look_right", cfg.LookRight, camera.LookRight},
	}
	for _, b := range intents {
		key, err := bind(b.action, b.name)
		if err != nil {
			return Controls{}, err
		}
		c.Camera[key] = b.intent
	}

	var err error
	if c.Wind, err = bind("wind", cfg.Wind); err != nil {
		return Controls{}, err
	}
	if c.Throw, err = bind("throw", cfg.Throw); err != nil {
		return Controls{}, err
	}
	if c.Fullscreen, err = bind("fullscreen", cfg.Fullscreen); err != nil {
		return Controls{}, err
	}
	if c.Quit, err = bind("quit", cfg.Quit); err != nil {
		return Controls{}, err
	}
	return c, nil
}

// CatapultConfig returns the catapult defaults with these keys.
func (c Controls) CatapultConfig() catapult.Config {
	cfg := catapult.DefaultConfig()
	cfg.WindKey = c.Wind
	cfg.ThrowKey = c.Throw
	return cfg
}
