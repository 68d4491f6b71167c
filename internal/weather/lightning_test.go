package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightningPattern(t *testing.T) {
	l := NewLightning()
	l.Trigger(1)
	assert.InDelta(t, 0.8, l.Opacity(), 1e-12)
	assert.True(t, l.Active())

	// The trigger frame itself does not age the flash.
	l.Update(0.04)
	assert.InDelta(t, 0.8, l.Opacity(), 1e-12)
	l.Update(0.04)
	assert.InDelta(t, 0.8, l.Opacity(), 1e-12)
	l.Update(0.02)
	assert.InDelta(t, 0.3, l.Opacity(), 1e-12)
	l.Update(0.1)
	assert.InDelta(t, 0.6, l.Opacity(), 1e-12)
	l.Update(0.05)
	assert.Equal(t, 0.0, l.Opacity())
	assert.False(t, l.Active())
}

func TestLightningScalesWithIntensity(t *testing.T) {
	l := NewLightning()
	l.Trigger(0.5)
	assert.InDelta(t, 0.4, l.Opacity(), 1e-12)
	l.Update(frame)
	l.Update(0.06)
	assert.InDelta(t, 0.15, l.Opacity(), 1e-12)
}

func TestLightningLongFrameEndsDark(t *testing.T) {
	l := NewLightning()
	l.Trigger(1)
	l.Update(1)
	assert.InDelta(t, 0.8, l.Opacity(), 1e-12)
	l.Update(1)
	assert.Equal(t, 0.0, l.Opacity())
	assert.False(t, l.Active())
}

func TestLightningStepsLandOnFrameBoundaries(t *testing.T) {
	l := NewLightning()
	l.Trigger(1)

	var got []float64
	for i := 0; i < 14; i++ {
		l.Update(1.0 / 60)
		got = append(got, l.Opacity())
	}
	want := []float64{0.8, 0.8, 0.8, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.6, 0.6, 0.6, 0, 0}
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestLightningOverlapInterleaves(t *testing.T) {
	l := NewLightning()
	l.Trigger(1)
	l.Update(frame)
	l.Update(0.12)
	assert.InDelta(t, 0.3, l.Opacity(), 1e-12)

	l.Trigger(0.5)
	assert.InDelta(t, 0.4, l.Opacity(), 1e-12)

	// First flash ages to 0.13, the second only settles.
	l.Update(0.01)
	assert.InDelta(t, 0.4, l.Opacity(), 1e-12)

	// First flash hits 0.6 at 0.15, the second hits 0.15 at its 0.05,
	// which falls later in time.
	l.Update(0.06)
	assert.InDelta(t, 0.15, l.Opacity(), 1e-12)

	// First flash goes dark at 0.2 while the second keeps running.
	l.Update(0.03)
	assert.Equal(t, 0.0, l.Opacity())
	assert.True(t, l.Active())

	l.Update(0.2)
	assert.Equal(t, 0.0, l.Opacity())
	assert.False(t, l.Active())
}
