package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / ReferenceFrameRate

func TestRainPoolDefaults(t *testing.T) {
	rp := NewRainPool(0, NewRand(3))
	assert.Equal(t, DefaultRainParticles, rp.Cap())
	assert.Equal(t, 0.0, rp.Intensity())
	assert.InDelta(t, 0.2, rp.Opacity(), 1e-12)

	for i, p := range rp.Positions {
		require.True(t, p.X >= -RainHalfExtent && p.X < RainHalfExtent)
		require.True(t, p.Y >= RainSpawnMinY && p.Y < RainInitialMaxY)
		require.True(t, rp.Sizes[i] >= 0.1 && rp.Sizes[i] < 0.3)
	}
}

func TestRainPoolSetIntensity(t *testing.T) {
	rp := NewRainPool(10, nil)
	rp.SetIntensity(1)
	assert.Equal(t, 1.0, rp.Intensity())
	assert.InDelta(t, 0.8, rp.Opacity(), 1e-12)

	rp.SetIntensity(3)
	assert.Equal(t, 1.0, rp.Intensity())
	rp.SetIntensity(-1)
	assert.Equal(t, 0.0, rp.Intensity())
}

func TestRainPoolUpdateDisplacement(t *testing.T) {
	rp := NewRainPool(4, NewRand(9))
	rp.SetIntensity(1)
	before := append([]Vec3(nil), rp.Positions...)

	wind := WindField{Direction: Vec3{X: 1}, Intensity: 0.5}
	rp.Update(frame, wind)

	for i, p := range rp.Positions {
		assert.InDelta(t, before[i].X+0.05, p.X, 1e-9)
		assert.InDelta(t, before[i].Y-0.5, p.Y, 1e-9)
		assert.InDelta(t, before[i].Z, p.Z, 1e-9)
	}
}

func TestRainPoolScalesWithDt(t *testing.T) {
	a := NewRainPool(4, NewRand(9))
	b := NewRainPool(4, NewRand(9))
	a.SetIntensity(1)
	b.SetIntensity(1)
	wind := WindField{Direction: Vec3{Z: 1}, Intensity: 1}

	a.Update(2*frame, wind)
	b.Update(frame, wind)
	b.Update(frame, wind)
	for i := range a.Positions {
		assert.InDelta(t, a.Positions[i].Y, b.Positions[i].Y, 1e-9)
		assert.InDelta(t, a.Positions[i].Z, b.Positions[i].Z, 1e-9)
	}
}

func TestRainPoolIdleWithoutIntensity(t *testing.T) {
	rp := NewRainPool(8, NewRand(5))
	before := append([]Vec3(nil), rp.Positions...)
	rp.Update(frame, WindField{Direction: Vec3{X: 1}})
	assert.Equal(t, before, rp.Positions)
}

func TestRainPoolRespawnsBelowFloor(t *testing.T) {
	rp := NewRainPool(50, NewRand(11))
	rp.SetIntensity(1)
	for i := 0; i < 2000; i++ {
		rp.Update(frame, WindField{Direction: Vec3{X: 1}})
		for _, p := range rp.Positions {
			require.GreaterOrEqual(t, p.Y, RainFloor)
		}
	}

	rp.Positions[0] = Vec3{Y: RainFloor + 0.1}
	rp.Update(frame, WindField{Direction: Vec3{X: 1}})
	p := rp.Positions[0]
	assert.True(t, p.Y >= RainSpawnMinY && p.Y <= RainSpawnMaxY, "respawned at y=%v", p.Y)
	assert.True(t, p.X >= -RainHalfExtent && p.X < RainHalfExtent)
	assert.True(t, p.Z >= -RainHalfExtent && p.Z < RainHalfExtent)
}

func TestRainPoolRenderData(t *testing.T) {
	rp := NewRainPool(3, NewRand(2))
	rp.SetIntensity(0.5)
	buf := rp.RenderData(nil)
	require.Len(t, buf, 3*8)
	assert.Equal(t, float32(rp.Positions[1].X), buf[8])
	assert.Equal(t, float32(rp.Sizes[2]), buf[2*8+3])
	assert.InDelta(t, 0.5, buf[7], 1e-6)
}
