package weather

import "errors"

// ErrEmptyWindow is returned when a road window is initialised with no segments.
var ErrEmptyWindow = errors.New("road window must hold at least one segment")

// Material is the weather-driven surface state of a road segment.
type Material struct {
	Roughness  float64
	Reflection float64
}

// RoadSegment is one tile of road. Position is the forward offset of its near edge.
type RoadSegment struct {
	ID       uint64
	Position float64
	Material Material
	Dirty    bool // material changed since the renderer last cleared it
}

// SegmentHooks lets a renderer own per-segment resources. The tiler calls
// SegmentCreated after a segment enters the window and SegmentRetired before
// its slot is reused.
type SegmentHooks interface {
	SegmentCreated(seg *RoadSegment)
	SegmentRetired(seg *RoadSegment)
}

type RoadConfig struct {
	SegmentLength float64
	Width         float64
}

func DefaultRoadConfig() RoadConfig {
	return RoadConfig{
		SegmentLength: DefaultSegmentLength,
		Width:         DefaultRoadWidth,
	}
}

func (c RoadConfig) withDefaults() RoadConfig {
	if c.SegmentLength <= 0 {
		c.SegmentLength = DefaultSegmentLength
	}
	if c.Width <= 0 {
		c.Width = DefaultRoadWidth
	}
	return c
}

// RoadTiler keeps a fixed-size window of contiguous road segments around a
// moving reference point. Segments live in a ring: head is the oldest slot.
type RoadTiler struct {
	cfg      RoadConfig
	hooks    SegmentHooks
	segs     []RoadSegment
	head     int
	material Material
	nextID   uint64

	texturesLoaded bool
}

func NewRoadTiler(cfg RoadConfig, hooks SegmentHooks) *RoadTiler {
	return &RoadTiler{
		cfg:      cfg.withDefaults(),
		hooks:    hooks,
		material: Dry.Material(),
	}
}

// Initialize fills the window with count segments starting at startZ.
// Any resident segments are retired first.
func (rt *RoadTiler) Initialize(count int, startZ float64) error {
	if count <= 0 {
		return ErrEmptyWindow
	}
	rt.Each(func(_ int, seg *RoadSegment) {
		rt.retire(seg)
	})
	rt.segs = make([]RoadSegment, count)
	rt.head = 0
	for i := range rt.segs {
		rt.create(&rt.segs[i], startZ+float64(i)*rt.cfg.SegmentLength)
	}
	return nil
}

// Advance recycles the oldest segment to the front once referenceZ has passed
// its far edge. At most one segment moves per call.
func (rt *RoadTiler) Advance(referenceZ float64) {
	n := len(rt.segs)
	if n == 0 {
		return
	}
	oldest := &rt.segs[rt.head]
	if referenceZ <= oldest.Position+rt.cfg.SegmentLength {
		return
	}
	newest := rt.segs[(rt.head+n-1)%n]
	rt.retire(oldest)
	rt.create(oldest, newest.Position+rt.cfg.SegmentLength)
	rt.head = (rt.head + 1) % n
}

// ApplyMaterial writes m onto every resident segment and uses it for
// segments created from now on.
func (rt *RoadTiler) ApplyMaterial(m Material) {
	rt.material = m
	for i := range rt.segs {
		rt.segs[i].Material = m
		rt.segs[i].Dirty = true
	}
}

// Each visits resident segments oldest first.
func (rt *RoadTiler) Each(fn func(i int, seg *RoadSegment)) {
	n := len(rt.segs)
	for i := 0; i < n; i++ {
		fn(i, &rt.segs[(rt.head+i)%n])
	}
}

// Segments returns a copy of the window, oldest first.
func (rt *RoadTiler) Segments() []RoadSegment {
	out := make([]RoadSegment, 0, len(rt.segs))
	rt.Each(func(_ int, seg *RoadSegment) {
		out = append(out, *seg)
	})
	return out
}

func (rt *RoadTiler) Len() int               { return len(rt.segs) }
func (rt *RoadTiler) Material() Material     { return rt.material }
func (rt *RoadTiler) SegmentLength() float64 { return rt.cfg.SegmentLength }
func (rt *RoadTiler) Width() float64         { return rt.cfg.Width }

// TexturesLoaded reports whether road textures arrived. Until then renderers
// draw flat-shaded asphalt.
func (rt *RoadTiler) TexturesLoaded() bool     { return rt.texturesLoaded }
func (rt *RoadTiler) SetTexturesLoaded(v bool) { rt.texturesLoaded = v }

func (rt *RoadTiler) create(seg *RoadSegment, z float64) {
	rt.nextID++
	*seg = RoadSegment{
		ID:       rt.nextID,
		Position: z,
		Material: rt.material,
		Dirty:    true,
	}
	if rt.hooks != nil {
		rt.hooks.SegmentCreated(seg)
	}
}

func (rt *RoadTiler) retire(seg *RoadSegment) {
	if rt.hooks != nil {
		rt.hooks.SegmentRetired(seg)
	}
}
