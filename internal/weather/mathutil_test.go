package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEaseInOutCubicEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOutCubic(0))
	assert.Equal(t, 1.0, EaseInOutCubic(1))
	assert.Equal(t, 0.5, EaseInOutCubic(0.5))
}

func TestEaseInOutCubicMonotonic(t *testing.T) {
	prev := EaseInOutCubic(0)
	for i := 1; i <= 1000; i++ {
		x := float64(i) / 1000
		y := EaseInOutCubic(x)
		assert.GreaterOrEqualf(t, y, prev, "ease(%v) decreased", x)
		assert.GreaterOrEqual(t, y, 0.0)
		assert.LessOrEqual(t, y, 1.0)
		prev = y
	}
}

func TestEaseInOutCubicMatchesFormula(t *testing.T) {
	assert.InDelta(t, 4*0.25*0.25*0.25, EaseInOutCubic(0.25), 1e-12)
	assert.InDelta(t, 1-0.125/2, EaseInOutCubic(0.75), 1e-12)
}

func TestRandRanges(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		assert.True(t, f >= 0 && f < 1)
		s := r.Signed()
		assert.True(t, s >= -1 && s < 1)
		n := r.Pick(3)
		assert.True(t, n >= 0 && n < 3)
		b := r.Between(-2, 5)
		assert.True(t, b >= -2 && b < 5)
	}
	assert.Equal(t, 0, r.Pick(0))
	assert.Equal(t, 1.5, r.Between(1.5, 1.5))
	assert.False(t, r.Chance(0))
	assert.True(t, r.Chance(1))
}

func TestRandDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestRandStreamsAreIndependent(t *testing.T) {
	root := NewRand(7)
	rain := root.Stream(StreamRain)
	again := NewRand(7).Stream(StreamRain)
	mixer := root.Stream(StreamMixer)

	// Draining the root or another stream does not shift a stream.
	for i := 0; i < 50; i++ {
		root.Uint64()
		mixer.Uint64()
	}
	assert.Equal(t, again.Uint64(), root.Stream(StreamRain).Uint64())
	assert.NotEqual(t, NewRand(7).Stream(StreamRain).Uint64(), NewRand(7).Stream(StreamMixer).Uint64())

	same := NewRand(7).Stream(StreamRain)
	for i := 0; i < 10; i++ {
		assert.Equal(t, same.Uint64(), rain.Uint64())
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3, Z: 4}.Normalize()
	assert.InDelta(t, 1.0, v.Len(), 1e-12)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3CrossDot(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	assert.Equal(t, Vec3{Z: 1}, x.Cross(y))
	assert.Equal(t, 0.0, x.Dot(y))
	assert.Equal(t, Vec3{X: 1, Y: -1}, x.Sub(y))
}
