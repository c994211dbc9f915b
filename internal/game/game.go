// Package game implements the main loop: input, fixed-rate simulation
// ticks and drawing.
package game

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/catapult/internal/config"
	"github.com/Faultbox/catapult/internal/engine/camera"
	"github.com/Faultbox/catapult/internal/engine/input"
	"github.com/Faultbox/catapult/internal/engine/input/sdlinput"
	"github.com/Faultbox/catapult/internal/engine/lighting"
	"github.com/Faultbox/catapult/internal/engine/mesh"
	"github.com/Faultbox/catapult/internal/engine/renderer"
	"github.com/Faultbox/catapult/internal/engine/scene"
	"github.com/Faultbox/catapult/internal/engine/shader"
	"github.com/Faultbox/catapult/internal/engine/texture"
	"github.com/Faultbox/catapult/internal/engine/window"
	"github.com/Faultbox/catapult/internal/game/catapult"
	"github.com/Faultbox/catapult/internal/logger"
	"github.com/Faultbox/catapult/pkg/math"
)

// Title is the window title.
const Title = "Catapult"

const (
	groundSize   = 64
	groundRepeat = 16
)

// Game is the viewer instance.
type Game struct {
	config   *config.Config
	controls Controls
	running  bool

	window   *window.Window
	renderer *renderer.Renderer
	poller   *sdlinput.Poller

	program uint32
	camera  *camera.FlyCamera
	light   math.Vec3
	scene   *scene.Scene
}

// New opens the window and builds the scene. On error everything
// created so far is released.
func New(cfg *config.Config) (_ *Game, err error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("tick_rate", cfg.Graphics.TickRate),
	)

	controls, err := ParseControls(cfg.Controls)
	if err != nil {
		return nil, err
	}

	g := &Game{
		config:   cfg,
		controls: controls,
		poller:   sdlinput.New(),
	}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		DepthBits:  cfg.Graphics.DepthBits,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.program, err = shader.LoadProgram(cfg.Assets.VertexShader, cfg.Assets.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to load shaders: %w", err)
	}

	if g.camera, err = newCamera(cfg.Camera, controls); err != nil {
		return nil, err
	}
	g.camera.SetAspectRatio(g.renderer.AspectRatio())

	g.light = lighting.SunDirection(cfg.Lighting.Longitude, cfg.Lighting.Latitude)

	if err = g.buildScene(); err != nil {
		return nil, err
	}

	logger.Info("game initialized successfully", zap.Int("drawables", g.scene.Len()))
	return g, nil
}

func newCamera(cfg config.CameraConfig, controls Controls) (*camera.FlyCamera, error) {
	cam := camera.NewFlyCamera()
	cam.SetPosition(math.Vec3{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]})
	if err := cam.SetDirection(math.Vec3{X: cfg.Direction[0], Y: cfg.Direction[1], Z: cfg.Direction[2]}); err != nil {
		return nil, fmt.Errorf("camera direction: %w", err)
	}
	cam.MoveSpeed = cfg.MoveSpeed
	cam.RotateSpeed = cfg.RotateSpeed
	cam.FOVY = cfg.FOVDegrees * math32.Pi / 180
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.Bindings = controls.Camera
	return cam, nil
}

// buildScene loads the shared texture and assembles the ground and the
// catapult.
func (g *Game) buildScene() error {
	img, err := texture.Load(g.config.Assets.Texture)
	if err != nil {
		return fmt.Errorf("failed to load texture: %w", err)
	}
	tex, err := g.renderer.UploadTexture(img)
	if err != nil {
		return fmt.Errorf("failed to upload texture %s: %w", g.config.Assets.Texture, err)
	}
	// Nodes retain the texture; drop the loader's reference once they do.
	defer tex.Release()

	texW, texH := tex.Size()
	logger.Info("texture loaded",
		zap.String("path", g.config.Assets.Texture),
		zap.Int("width", texW),
		zap.Int("height", texH),
	)

	g.scene = scene.New()

	groundMesh, err := g.renderer.UploadMesh(mesh.Plane(groundSize, groundSize, groundRepeat))
	if err != nil {
		return fmt.Errorf("uploading ground: %w", err)
	}
	ground := scene.NewGraph()
	ground.Add(scene.Root, scene.Node{
		Name:    "ground",
		Local:   math.Identity(),
		Mesh:    groundMesh,
		Texture: tex,
	})
	g.scene.Add(ground)

	cat, err := catapult.New(g.renderer, tex, g.controls.CatapultConfig())
	if err != nil {
		return err
	}
	g.scene.Add(cat)
	return nil
}

// Run starts the main loop and returns when the window closes or the
// quit key is pressed.
func (g *Game) Run() error {
	g.running = true

	clock := newFixedStep(g.config.Graphics.TickRate)
	var pending []input.Event

	lastTime := time.Now()
	frames, ticks := 0, 0
	fpsTimer := lastTime

	logger.Info("starting game loop")

	for g.running {
		now := time.Now()
		elapsed := now.Sub(lastTime)
		lastTime = now

		if g.poller.Poll() {
			g.running = false
			break
		}
		events := g.poller.Events()
		g.handleWindowEvents(events)
		if !g.running {
			break
		}
		pending = append(pending, events...)

		for n := clock.Advance(elapsed); n > 0; n-- {
			g.tick(pending)
			pending = pending[:0]
			ticks++
		}

		if g.render() {
			g.window.SwapBuffers()
		}

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("frame stats",
				zap.Int("fps", frames),
				zap.Int("ticks", ticks),
				zap.Int("dropped_ticks", clock.dropped),
			)
			g.window.SetTitle(statsTitle(frames, ticks))
			frames, ticks = 0, 0
			clock.dropped = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("game loop ended")
	return nil
}

// handleWindowEvents reacts to quit, fullscreen and resize. These are
// acted on every frame, not per tick.
func (g *Game) handleWindowEvents(events []input.Event) {
	if input.Pressed(events, g.controls.Quit) {
		g.running = false
		return
	}
	for _, ev := range events {
		switch ev.Type {
		case input.EventQuit:
			g.running = false
			return
		case input.EventWindowResize:
			g.resize()
		}
	}
	if input.Pressed(events, g.controls.Fullscreen) {
		if err := g.window.ToggleFullscreen(); err != nil {
			logger.Warn("fullscreen toggle failed", zap.Error(err))
		}
		g.resize()
	}
}

// resize matches the viewport and camera to the drawable size.
func (g *Game) resize() {
	width, height := g.window.Size()
	if width == 0 || height == 0 {
		return
	}
	if w, h := g.renderer.Size(); w == width && h == height {
		return
	}
	g.renderer.Resize(width, height)
	g.camera.SetAspectRatio(g.renderer.AspectRatio())
}

// statsTitle is the window title carrying the last second's counters.
func statsTitle(frames, ticks int) string {
	return fmt.Sprintf("%s - %d fps, %d ticks/s", Title, frames, ticks)
}

// tick advances the simulation one fixed step.
func (g *Game) tick(events []input.Event) {
	g.camera.ProcessEvents(events)
	g.camera.Update()
	g.scene.Update(events)
}

// render draws the frame and reports whether it is fit to present.
func (g *Game) render() bool {
	g.renderer.Begin()
	ctx := &scene.RenderContext{
		Surface:     g.renderer,
		Program:     g.program,
		View:        g.camera.View(),
		Perspective: g.camera.Perspective(),
		Light:       g.light,
	}
	err := g.scene.Draw(ctx)
	g.renderer.End()
	if err != nil {
		logger.Error("draw failed, frame skipped", zap.Error(err), zap.Int("draw_calls", ctx.DrawCalls))
		return false
	}
	return true
}

// Close releases the scene and the GPU and window resources.
func (g *Game) Close() {
	logger.Info("shutting down game")

	if g.scene != nil {
		g.scene.Destroy()
		g.scene = nil
	}
	if g.program != 0 {
		shader.DeleteProgram(g.program)
		g.program = 0
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}
