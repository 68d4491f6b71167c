package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"rainroad/internal/weather"
)

// Per-kind sky (also used as fog colour) and fog density. DRY is a clear
// sky blue with light exponential fog.
var (
	skyColors = [...]colorful.Color{
		weather.Dry:   mustHex("#87ceeb"),
		weather.Wet:   mustHex("#8c9ba5"),
		weather.Rainy: mustHex("#4b5661"),
	}
	fogDensity = [...]float64{
		weather.Dry:   0.002,
		weather.Wet:   0.004,
		weather.Rainy: 0.009,
	}

	asphaltDry    = mustHex("#333333")
	asphaltSoaked = mustHex("#1c2024")
	MarkingColor  = mustHex("#ffffff")
	WindColor     = mustHex("#00aaff")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Atmosphere is the sky colour and fog density for one frame.
type Atmosphere struct {
	Sky colorful.Color
	Fog float64
}

// AtmosphereOf blends the kinds' skies in Lab space by the eased progress
// of the running transition, or returns the steady kind's values.
func AtmosphereOf(s *weather.System) Atmosphere {
	if tr, ok := s.Transition(); ok {
		return BlendAtmosphere(tr.From, tr.To, tr.Eased)
	}
	return BlendAtmosphere(s.Current(), s.Current(), 0)
}

func BlendAtmosphere(from, to weather.Kind, t float64) Atmosphere {
	if !from.Valid() {
		from = weather.Dry
	}
	if !to.Valid() {
		to = from
	}
	t = clamp01(t)
	return Atmosphere{
		Sky: skyColors[from].BlendLab(skyColors[to], t).Clamped(),
		Fog: fogDensity[from] + (fogDensity[to]-fogDensity[from])*t,
	}
}

// AsphaltTint darkens the road as it gets wetter. Reflection runs from the
// DRY to the RAINY table value.
func AsphaltTint(m weather.Material) colorful.Color {
	lo := weather.Dry.Params().Reflection
	hi := weather.Rainy.Params().Reflection
	wet := clamp01((m.Reflection - lo) / (hi - lo))
	return asphaltDry.BlendLab(asphaltSoaked, wet).Clamped()
}

// RGB32 unpacks a colour for GL uniforms.
func RGB32(c colorful.Color) (r, g, b float32) {
	return float32(c.R), float32(c.G), float32(c.B)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
