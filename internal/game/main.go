// Package game is the desktop driver: a GLFW window, the GL renderer, oto
// audio output and the frame loop around the weather core.
package game

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"rainroad/internal/config"
	"rainroad/internal/scene"
	"rainroad/internal/sound"
	"rainroad/internal/weather"
)

const maxFrameDt = 0.1

type driver struct {
	log    *zap.SugaredLogger
	window *glfw.Window
	input  *Input
	rend   *Renderer
	road   *weather.RoadTiler
	sys    *weather.System
	cam    *weather.Camera
	cruise *scene.Cruise
	audio  *AudioOutput

	textures <-chan scene.LoadResult
	title    string
	paused   bool
}

// RunDesktop opens the window and drives the game until it is closed.
func RunDesktop(cfg *config.Config, log *zap.SugaredLogger) error {
	runtime.LockOSThread()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Infow("starting", "seed", seed, "weather", cfg.Weather.InitialWeather)

	window, err := initWindow(cfg.Window.Width, cfg.Window.Height, "rainroad")
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	core := cfg.Core(seed)
	rend, err := NewRenderer(cfg.Weather.RainParticles, log.Named("render"))
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	d := &driver{
		log:    log,
		window: window,
		input:  NewInput(),
		rend:   rend,
		cruise: scene.NewCruise(),
	}

	opts := []weather.Option{weather.WithLogger(log.Named("weather"))}
	if cfg.Audio.Enabled {
		bank := sound.NewBank(cfg.Audio.SampleRate, core.Mixer.ThunderSlots, seed^0x50D)
		audio, err := StartAudio(bank, log.Named("audio"))
		if err != nil {
			log.Warnw("audio init failed, continuing without sound", "error", err)
		} else {
			d.audio = audio
			defer audio.Close()
			opts = append(opts, weather.WithAudio(bank))
		}
	}

	d.road = weather.NewRoadTiler(core.Road, rend)
	if err := d.road.Initialize(cfg.Weather.SegmentCount, scene.RoadReference(0)-d.road.SegmentLength()); err != nil {
		return fmt.Errorf("road: %w", err)
	}

	cam := scene.ChaseCamera()
	d.cam = &cam
	opts = append(opts, weather.WithScreenShake(weather.NewScreenShake(d.cam, weather.NewRand(seed).Stream(weather.StreamShake))))
	d.sys = weather.NewSystem(core, d.road, opts...)
	d.sys.Events().Subscribe(weather.EventThunder, func(e weather.Event) {
		log.Debugw("thunder", "intensity", e.Intensity)
	})
	if start := cfg.StartWeather(); start != d.sys.Current() {
		d.sys.SetWeather(start)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.textures = scene.LoadRoadTextures(ctx, scene.DefaultTextureSize, seed)

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > maxFrameDt {
			dt = maxFrameDt
		}

		glfw.PollEvents()
		d.frame(dt)
	}
	log.Infow("window closed", "distance_m", d.cruise.Distance, "elapsed_s", d.sys.Elapsed())
	return nil
}

// frame runs one simulation step and draws it. A panic is logged and the
// next frame proceeds.
func (d *driver) frame(dt float64) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorw("frame panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	d.pollTextures()
	d.syncPause()

	c := d.input.ReadControls(d.window)
	if c.Quit {
		d.window.SetShouldClose(true)
		return
	}
	if c.HasWeather {
		d.sys.SetWeather(c.Weather)
	}
	if c.Thunder && !d.sys.Mixer().TryThunder(1) {
		d.log.Debugw("thunder cooling down")
	}

	d.cruise.Update(dt, c.Accelerate, c.Brake)
	d.sys.Update(dt)
	d.road.Advance(scene.RoadReference(d.cruise.Distance))

	fbW, fbH := d.window.GetFramebufferSize()
	if fbW <= 0 || fbH <= 0 {
		return
	}
	aspect := float64(fbW) / float64(fbH)
	f := Frame{
		ViewProj:   scene.ViewProjection(*d.cam, d.cruise.Distance, aspect),
		Eye:        d.cam.Position.Add(weather.Vec3{Z: d.cruise.Distance}),
		Travel:     d.cruise.Distance,
		Atmosphere: scene.AtmosphereOf(d.sys),
		Flash:      d.sys.Lightning().Opacity(),
		Aspect:     aspect,
		PointScale: rainPointSize * float64(fbH) / 720,
	}

	d.rend.BeginFrame(f, fbW, fbH)
	d.rend.DrawRoad(d.road, f)
	d.rend.DrawRain(d.sys.Rain(), f)
	d.rend.DrawOverlays(d.sys.Indicator(), f)

	if t := scene.Title(d.sys, d.cruise); t != d.title {
		d.window.SetTitle(t)
		d.title = t
	}
	d.window.SwapBuffers()
}

// pollTextures picks up the background texture load without blocking.
func (d *driver) pollTextures() {
	if d.textures == nil {
		return
	}
	select {
	case res := <-d.textures:
		d.textures = nil
		if res.Err != nil {
			d.log.Warnw("road textures unavailable, using flat shading", "error", res.Err)
			return
		}
		d.rend.UploadRoadTextures(res.Textures)
		d.road.SetTexturesLoaded(true)
		d.log.Infow("road textures loaded", "size", res.Textures.Albedo.Size)
	default:
	}
}

// syncPause mutes audio while the window is minimised.
func (d *driver) syncPause() {
	if d.audio == nil {
		return
	}
	iconified := d.window.GetAttrib(glfw.Iconified) == glfw.True
	if iconified != d.paused {
		d.audio.Pause(iconified)
		d.paused = iconified
	}
}
