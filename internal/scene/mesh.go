package scene

import (
	"math"

	"rainroad/internal/weather"
)

// VertexStride is the float count per road vertex: x, y, z, u, v.
const VertexStride = 5

const (
	markingLift     = 0.01
	centerLineWidth = 0.2
	edgeMarkWidth   = 0.1
	edgeMarkLength  = 2.0
)

// AppendSegment appends the road surface of seg as two triangles spanning
// [seg.Position, seg.Position+length] on the forward axis.
func AppendSegment(buf []float32, seg *weather.RoadSegment, width, length float64) []float32 {
	hw := width / 2
	z0, z1 := seg.Position, seg.Position+length
	return appendQuad(buf, -hw, hw, z0, z1, 0, TextureRepeatU, TextureRepeatV)
}

// AppendMarkings appends the centre line and the short edge marks at the
// middle of seg, lifted just above the surface.
func AppendMarkings(buf []float32, seg *weather.RoadSegment, width, length float64) []float32 {
	z0, z1 := seg.Position, seg.Position+length
	buf = appendQuad(buf, -centerLineWidth/2, centerLineWidth/2, z0, z1, markingLift, 0, 0)

	mid := seg.Position + length/2
	for _, side := range [...]float64{-1, 1} {
		x := side * width / 2
		buf = appendQuad(buf, x-edgeMarkWidth/2, x+edgeMarkWidth/2,
			mid-edgeMarkLength/2, mid+edgeMarkLength/2, markingLift, 0, 0)
	}
	return buf
}

func appendQuad(buf []float32, x0, x1, z0, z1, y, ru, rv float64) []float32 {
	v := func(x, z, u, w float64) []float32 {
		return []float32{float32(x), float32(y), float32(z), float32(u), float32(w)}
	}
	buf = append(buf, v(x0, z0, 0, 0)...)
	buf = append(buf, v(x1, z0, ru, 0)...)
	buf = append(buf, v(x1, z1, ru, rv)...)
	buf = append(buf, v(x0, z0, 0, 0)...)
	buf = append(buf, v(x1, z1, ru, rv)...)
	buf = append(buf, v(x0, z1, 0, rv)...)
	return buf
}

// Wind gauge placement in normalized device coordinates (top right).
const (
	GaugeX     = 0.82
	GaugeY     = 0.78
	GaugeScale = 0.06
)

// AppendWindGauge appends the wind indicator as 2D triangles: an arrowhead
// rotated to the indicator's yaw and a shaft whose length follows the tip.
// Each vertex is x, y in NDC. aspect keeps the gauge round on wide windows.
func AppendWindGauge(buf []float32, ind weather.WindIndicator, aspect float64) []float32 {
	if aspect <= 0 {
		aspect = 1
	}
	sin, cos := math.Sincos(ind.Yaw)
	// Screen up is the direction the wind blows toward.
	pt := func(along, across float64) (float32, float32) {
		x := (across*cos + along*sin) * GaugeScale / aspect
		y := (along*cos - across*sin) * GaugeScale
		return float32(GaugeX + x), float32(GaugeY + y)
	}

	ax, ay := pt(1.0, 0)
	bx, by := pt(0.5, -0.4)
	cx, cy := pt(0.5, 0.4)
	buf = append(buf, ax, ay, bx, by, cx, cy)

	shaft := math.Hypot(ind.Tip.X, ind.Tip.Z) / 2 // 0..1
	tail := 0.5 - shaft
	p0x, p0y := pt(tail, -0.06)
	p1x, p1y := pt(tail, 0.06)
	p2x, p2y := pt(0.5, 0.06)
	p3x, p3y := pt(0.5, -0.06)
	buf = append(buf,
		p0x, p0y, p1x, p1y, p2x, p2y,
		p0x, p0y, p2x, p2y, p3x, p3y,
	)
	return buf
}
