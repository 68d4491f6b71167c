package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rainroad/internal/weather"
)

func TestBlendAtmosphereEndpoints(t *testing.T) {
	dry := BlendAtmosphere(weather.Dry, weather.Dry, 0)
	assert.Equal(t, "#87ceeb", dry.Sky.Hex())
	assert.InDelta(t, 0.002, dry.Fog, 1e-12)

	rainy := BlendAtmosphere(weather.Dry, weather.Rainy, 1)
	assert.Equal(t, "#4b5661", rainy.Sky.Hex())
	assert.InDelta(t, 0.009, rainy.Fog, 1e-12)
}

func TestBlendAtmosphereMidway(t *testing.T) {
	mid := BlendAtmosphere(weather.Dry, weather.Rainy, 0.5)
	assert.InDelta(t, (0.002+0.009)/2, mid.Fog, 1e-12)

	// Darker than clear sky, lighter than storm.
	_, _, lDry := skyColors[weather.Dry].Hcl()
	_, _, lRainy := skyColors[weather.Rainy].Hcl()
	_, _, lMid := mid.Sky.Hcl()
	assert.Less(t, lMid, lDry)
	assert.Greater(t, lMid, lRainy)
}

func TestBlendAtmosphereClampsAndDefaults(t *testing.T) {
	assert.Equal(t, BlendAtmosphere(weather.Dry, weather.Wet, 1), BlendAtmosphere(weather.Dry, weather.Wet, 7))
	assert.Equal(t, BlendAtmosphere(weather.Dry, weather.Dry, 0), BlendAtmosphere(weather.Kind(42), weather.Kind(42), 0.5))
}

func TestAtmosphereOfSystem(t *testing.T) {
	s := weather.NewSystem(weather.DefaultConfig(), nil)
	assert.Equal(t, BlendAtmosphere(weather.Dry, weather.Dry, 0), AtmosphereOf(s))

	s.SetWeather(weather.Rainy)
	s.Update(2.5)
	tr, ok := s.Transition()
	assert.True(t, ok)
	assert.Equal(t, BlendAtmosphere(weather.Dry, weather.Rainy, tr.Eased), AtmosphereOf(s))
}

func TestAsphaltTintDarkensWhenWet(t *testing.T) {
	dry := AsphaltTint(weather.Dry.Material())
	wet := AsphaltTint(weather.Rainy.Material())
	assert.Equal(t, "#333333", dry.Hex())
	_, _, lDry := dry.Hcl()
	_, _, lWet := wet.Hcl()
	assert.Less(t, lWet, lDry)
}

func TestMustHex(t *testing.T) {
	assert.Equal(t, "#00aaff", mustHex("#00aaff").Hex())
	assert.Equal(t, "#ffffff", MarkingColor.Hex())
	assert.Panics(t, func() { mustHex("not-a-colour") })
}
