package weather

import "math"

// WindField is the shared wind state read by rain and the indicator.
type WindField struct {
	Direction Vec3 // unit length, Y == 0
	Intensity float64
}

func newWindField() WindField {
	return WindField{
		Direction: Vec3{X: 1},
		Intensity: Dry.Params().WindBaseline,
	}
}

// rotate turns the direction about the Y axis by angle radians.
func (w *WindField) rotate(angle float64) {
	s, c := math.Sincos(angle)
	d := w.Direction
	w.Direction = Vec3{X: d.X*c - d.Z*s, Z: d.X*s + d.Z*c}.Normalize()
}

// windGust slowly wanders the wind direction so rain drift changes over time.
type windGust struct {
	interval float64
	angle    float64
	acc      float64
}

func (g *windGust) update(w *WindField, r *Rand, dt float64) {
	if g.interval <= 0 {
		return
	}
	g.acc += dt
	for g.acc >= g.interval {
		g.acc -= g.interval
		w.rotate(r.Between(-g.angle, g.angle))
	}
}

// WindIndicator is the on-screen wind arrow: a heading plus a line whose
// length and opacity follow intensity.
type WindIndicator struct {
	Yaw     float64 // radians, atan2(x, z)
	Tip     Vec3    // end of the wind line relative to the arrow origin
	Opacity float64
}

func (wi *WindIndicator) Update(w WindField) {
	wi.Yaw = math.Atan2(w.Direction.X, w.Direction.Z)
	wi.Tip = Vec3{X: w.Direction.X, Z: w.Direction.Z}.Scale(w.Intensity * 2)
	wi.Opacity = 0.3 + w.Intensity*0.7
}
