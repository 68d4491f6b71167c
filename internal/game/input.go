package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"rainroad/internal/weather"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Controls is one frame of player intent.
type Controls struct {
	Weather    weather.Kind
	HasWeather bool
	Accelerate bool
	Brake      bool
	Thunder    bool
	Quit       bool
}

var weatherKeys = [...]struct {
	key  glfw.Key
	kind weather.Kind
}{
	{glfw.Key1, weather.Dry},
	{glfw.Key2, weather.Wet},
	{glfw.Key3, weather.Rainy},
}

// ReadControls samples the keyboard. Weather and thunder keys are edge
// triggered; speed keys are held.
func (in *Input) ReadControls(window *glfw.Window) Controls {
	var c Controls
	for _, wk := range weatherKeys {
		if in.JustPressed(window, wk.key) {
			c.Weather, c.HasWeather = wk.kind, true
		}
	}
	c.Accelerate = window.GetKey(glfw.KeyUp) == glfw.Press
	c.Brake = window.GetKey(glfw.KeyDown) == glfw.Press
	c.Thunder = in.JustPressed(window, glfw.KeyT)
	c.Quit = window.GetKey(glfw.KeyEscape) == glfw.Press
	return c
}
