package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHooks struct {
	created []float64
	retired []float64
}

func (h *recordingHooks) SegmentCreated(seg *RoadSegment) {
	h.created = append(h.created, seg.Position)
}
func (h *recordingHooks) SegmentRetired(seg *RoadSegment) {
	h.retired = append(h.retired, seg.Position)
}

func positions(rt *RoadTiler) []float64 {
	var out []float64
	for _, s := range rt.Segments() {
		out = append(out, s.Position)
	}
	return out
}

func TestRoadTilerAdvanceRecyclesOldest(t *testing.T) {
	rt := NewRoadTiler(RoadConfig{SegmentLength: 100}, nil)
	require.NoError(t, rt.Initialize(5, 0))
	assert.Equal(t, []float64{0, 100, 200, 300, 400}, positions(rt))

	rt.Advance(101)
	assert.Equal(t, []float64{100, 200, 300, 400, 500}, positions(rt))
}

func TestRoadTilerAdvanceBelowThresholdIsNoop(t *testing.T) {
	rt := NewRoadTiler(RoadConfig{SegmentLength: 100}, nil)
	require.NoError(t, rt.Initialize(5, 0))

	rt.Advance(100)
	assert.Equal(t, []float64{0, 100, 200, 300, 400}, positions(rt))
}

func TestRoadTilerOneSwapPerCall(t *testing.T) {
	rt := NewRoadTiler(RoadConfig{SegmentLength: 100}, nil)
	require.NoError(t, rt.Initialize(5, 0))

	rt.Advance(350)
	assert.Equal(t, []float64{100, 200, 300, 400, 500}, positions(rt))
	rt.Advance(350)
	assert.Equal(t, []float64{200, 300, 400, 500, 600}, positions(rt))
}

func TestRoadTilerWindowSizeInvariant(t *testing.T) {
	rt := NewRoadTiler(RoadConfig{SegmentLength: 10}, nil)
	require.NoError(t, rt.Initialize(7, -30))

	z := -30.0
	for i := 0; i < 5000; i++ {
		z += 3.7
		rt.Advance(z)
		require.Equal(t, 7, rt.Len())

		segs := rt.Segments()
		for j := 1; j < len(segs); j++ {
			require.Equal(t, segs[j-1].Position+10, segs[j].Position, "window must stay contiguous")
		}
	}
}

func TestRoadTilerEmptyWindow(t *testing.T) {
	rt := NewRoadTiler(DefaultRoadConfig(), nil)
	assert.NotPanics(t, func() { rt.Advance(1e9) })
	assert.Equal(t, 0, rt.Len())
	assert.ErrorIs(t, rt.Initialize(0, 0), ErrEmptyWindow)
}

func TestRoadTilerHooks(t *testing.T) {
	h := &recordingHooks{}
	rt := NewRoadTiler(RoadConfig{SegmentLength: 100}, h)
	require.NoError(t, rt.Initialize(3, 0))
	assert.Equal(t, []float64{0, 100, 200}, h.created)

	rt.Advance(150)
	assert.Equal(t, []float64{0}, h.retired)
	assert.Equal(t, []float64{0, 100, 200, 300}, h.created)

	require.NoError(t, rt.Initialize(2, 0))
	assert.Equal(t, []float64{0, 100, 200, 300}, h.retired)
}

func TestRoadTilerNewSegmentsCarryCurrentMaterial(t *testing.T) {
	rt := NewRoadTiler(RoadConfig{SegmentLength: 100}, nil)
	require.NoError(t, rt.Initialize(3, 0))

	m := Material{Roughness: 0.42, Reflection: 0.33}
	rt.ApplyMaterial(m)
	rt.Each(func(_ int, seg *RoadSegment) {
		assert.True(t, seg.Dirty)
		seg.Dirty = false
	})

	rt.Advance(101)
	segs := rt.Segments()
	newest := segs[len(segs)-1]
	assert.Equal(t, 300.0, newest.Position)
	assert.Equal(t, m, newest.Material)
	assert.True(t, newest.Dirty)
	assert.False(t, segs[0].Dirty)
}

func TestRoadTilerSegmentIDsIncrease(t *testing.T) {
	rt := NewRoadTiler(RoadConfig{SegmentLength: 1}, nil)
	require.NoError(t, rt.Initialize(4, 0))
	for z := 1.5; z < 20; z++ {
		rt.Advance(z)
	}
	segs := rt.Segments()
	for i := 1; i < len(segs); i++ {
		assert.Greater(t, segs[i].ID, segs[i-1].ID)
	}
}
