package weather

// Rain drop colour (0xAAAAFF).
const (
	rainR = float32(0xAA) / 255.0
	rainG = float32(0xAA) / 255.0
	rainB = float32(0xFF) / 255.0
)

// RainPool is a fixed-capacity pool of rain drops. Drops have no identity
// beyond their slot and are respawned in place once they fall below the floor.
type RainPool struct {
	Positions []Vec3
	Sizes     []float64

	intensity float64
	opacity   float64
	rng       *Rand
}

func NewRainPool(capacity int, rng *Rand) *RainPool {
	if capacity <= 0 {
		capacity = DefaultRainParticles
	}
	if rng == nil {
		rng = NewRand(1)
	}
	rp := &RainPool{
		Positions: make([]Vec3, capacity),
		Sizes:     make([]float64, capacity),
		rng:       rng,
	}
	for i := range rp.Positions {
		rp.Positions[i] = Vec3{
			X: rng.Between(-RainHalfExtent, RainHalfExtent),
			Y: rng.Between(RainSpawnMinY, RainInitialMaxY),
			Z: rng.Between(-RainHalfExtent, RainHalfExtent),
		}
		rp.Sizes[i] = 0.1 + rng.Float64()*0.2
	}
	rp.SetIntensity(0)
	return rp
}

// Update drifts every drop with the wind and drops it by the fall speed.
// Motion is expressed per reference frame and scaled by dt.
func (rp *RainPool) Update(dt float64, wind WindField) {
	if dt <= 0 {
		return
	}
	frames := dt * ReferenceFrameRate
	drift := wind.Direction.Scale(wind.Intensity * RainHorizontalDrag * frames)
	fall := RainFallSpeed * rp.intensity * frames

	for i := range rp.Positions {
		p := &rp.Positions[i]
		p.X += drift.X
		p.Y -= fall
		p.Z += drift.Z

		if p.Y < RainFloor {
			rp.respawn(p)
		}
	}
}

func (rp *RainPool) respawn(p *Vec3) {
	p.X = rp.rng.Between(-RainHalfExtent, RainHalfExtent)
	p.Y = RainSpawnMinY + rp.rng.Float64()*(RainSpawnMaxY-RainSpawnMinY)
	p.Z = rp.rng.Between(-RainHalfExtent, RainHalfExtent)
}

// SetIntensity sets the fall multiplier and the derived drop opacity.
func (rp *RainPool) SetIntensity(v float64) {
	rp.intensity = clampF(v, 0, 1)
	rp.opacity = 0.2 + rp.intensity*0.6
}

func (rp *RainPool) Intensity() float64 { return rp.intensity }
func (rp *RainPool) Opacity() float64   { return rp.opacity }
func (rp *RainPool) Cap() int           { return len(rp.Positions) }

// RenderData flattens drops for a point-sprite renderer.
// Format: [x, y, z, size, r, g, b, a] * N.
func (rp *RainPool) RenderData(buf []float32) []float32 {
	buf = buf[:0]
	a := float32(rp.opacity)
	for i, p := range rp.Positions {
		buf = append(buf,
			float32(p.X), float32(p.Y), float32(p.Z),
			float32(rp.Sizes[i]),
			rainR, rainG, rainB, a,
		)
	}
	return buf
}
