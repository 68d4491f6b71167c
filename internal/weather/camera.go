package weather

// Camera is the view position the renderer looks from.
type Camera struct {
	Position Vec3
}

// ScreenShake jitters a camera around the position it had when the shake
// was built. The anchor is fixed: later camera moves made elsewhere are
// overwritten when a shake runs or expires.
type ScreenShake struct {
	cam       *Camera
	anchor    Vec3
	intensity float64
	remaining float64 // ms
	rng       *Rand
}

func NewScreenShake(cam *Camera, rng *Rand) *ScreenShake {
	if rng == nil {
		rng = NewRand(1)
	}
	return &ScreenShake{
		cam:    cam,
		anchor: cam.Position,
		rng:    rng,
	}
}

// Shake arms a shake. durationMs <= 0 uses the 500ms default. A new shake
// replaces any running one.
func (s *ScreenShake) Shake(intensity, durationMs float64) {
	if durationMs <= 0 {
		durationMs = DefaultShakeDuration
	}
	s.intensity = intensity
	s.remaining = durationMs
}

// Update applies a decaying random offset, full scale on X and 30% on Y.
// The camera is snapped back to the anchor in the call the countdown expires.
// A non-positive dt leaves the camera untouched.
func (s *ScreenShake) Update(dt float64) {
	if dt <= 0 || s.remaining <= 0 {
		return
	}
	k := s.intensity * (s.remaining / 1000)
	s.cam.Position.X = s.anchor.X + s.rng.Signed()*k
	s.cam.Position.Y = s.anchor.Y + s.rng.Signed()*k*0.3

	s.remaining -= dt * 1000
	if s.remaining <= 0 {
		s.remaining = 0
		s.cam.Position = s.anchor
	}
}

func (s *ScreenShake) Active() bool       { return s.remaining > 0 }
func (s *ScreenShake) Remaining() float64 { return s.remaining }
func (s *ScreenShake) Anchor() Vec3       { return s.anchor }
