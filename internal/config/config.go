// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Assets   AssetsConfig   `yaml:"assets"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	DepthBits  int  `yaml:"depth_bits"`
	TickRate   int  `yaml:"tick_rate"` // Fixed simulation ticks per second
}

// CameraConfig holds the fly camera's starting state and tuning.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Direction   [3]float32 `yaml:"direction"`
	MoveSpeed   float32    `yaml:"move_speed"`   // Units per tick
	RotateSpeed float32    `yaml:"rotate_speed"` // Radians per tick
	FOVDegrees  float32    `yaml:"fov_degrees"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// ControlsConfig maps actions to key names (see input.ParseKey).
type ControlsConfig struct {
	Forward    string `yaml:"forward"`
	Backward   string `yaml:"backward"`
	Left       string `yaml:"left"`
	Right      string `yaml:"right"`
	Up         string `yaml:"up"`
	Down       string `yaml:"down"`
	LookUp     string `yaml:"look_up"`
	LookDown   string `yaml:"look_down"`
	LookLeft   string `yaml:"look_left"`
	LookRight  string `yaml:"look_right"`
	Wind       string `yaml:"wind"`
	Throw      string `yaml:"throw"`
	Fullscreen string `yaml:"fullscreen"`
	Quit       string `yaml:"quit"`
}

// AssetsConfig holds paths of files read at startup.
type AssetsConfig struct {
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
	Texture        string `yaml:"texture"`
}

// LightingConfig places the directional light.
type LightingConfig struct {
	Longitude float32 `yaml:"longitude"` // Degrees around Y
	Latitude  float32 `yaml:"latitude"`  // Degrees above the horizon
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			DepthBits:  24,
			TickRate:   60,
		},
		Camera: CameraConfig{
			Position:    [3]float32{-5, 1, 1},
			Direction:   [3]float32{2, 0, 0},
			MoveSpeed:   0.05,
			RotateSpeed: 0.05,
			FOVDegrees:  90,
			Near:        0.1,
			Far:         1024,
		},
		Controls: ControlsConfig{
			Forward:    "W",
			Backward:   "S",
			Left:       "A",
			Right:      "D",
			Up:         "Q",
			Down:       "E",
			LookUp:     "Up",
			LookDown:   "Down",
			LookLeft:   "Left",
			LookRight:  "Right",
			Wind:       "R",
			Throw:      "Space",
			Fullscreen: "Return",
			Quit:       "Escape",
		},
		Assets: AssetsConfig{
			VertexShader:   "assets/shaders/scene.vert",
			FragmentShader: "assets/shaders/scene.frag",
			Texture:        "assets/textures/wood.tga",
		},
		Lighting: LightingConfig{
			Longitude: 60,
			Latitude:  45,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %d", ErrInvalid, c.Graphics.TickRate)
	case c.Graphics.DepthBits != 16 && c.Graphics.DepthBits != 24 && c.Graphics.DepthBits != 32:
		return fmt.Errorf("%w: depth_bits %d", ErrInvalid, c.Graphics.DepthBits)
	case c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180:
		return fmt.Errorf("%w: fov_degrees %v", ErrInvalid, c.Camera.FOVDegrees)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Direction == [3]float32{}:
		return fmt.Errorf("%w: camera direction is zero", ErrInvalid)
	case c.Assets.VertexShader == "" || c.Assets.FragmentShader == "":
		return fmt.Errorf("%w: shader paths must be set", ErrInvalid)
	case c.Assets.Texture == "":
		return fmt.Errorf("%w: texture path must be set", ErrInvalid)
	}
	return nil
}
