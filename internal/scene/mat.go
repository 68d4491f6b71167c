// Package scene holds the GL-free half of the renderer: camera matrices,
// weather palettes, procedural road textures, mesh building and the HUD line.
package scene

import (
	"math"

	"rainroad/internal/weather"
)

// Mat4 is a column-major 4x4 matrix, laid out for glUniformMatrix4fv.
type Mat4 [16]float32

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective builds a right-handed projection. fovY is in degrees.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY*math.Pi/360)
	var m Mat4
	m[0] = float32(f / aspect)
	m[5] = float32(f)
	m[10] = float32((far + near) / (near - far))
	m[11] = -1
	m[14] = float32(2 * far * near / (near - far))
	return m
}

// LookAt builds a view matrix with eye looking at center.
func LookAt(eye, center, up weather.Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Identity()
	m[0], m[4], m[8] = float32(s.X), float32(s.Y), float32(s.Z)
	m[1], m[5], m[9] = float32(u.X), float32(u.Y), float32(u.Z)
	m[2], m[6], m[10] = float32(-f.X), float32(-f.Y), float32(-f.Z)
	m[12] = float32(-s.Dot(eye))
	m[13] = float32(-u.Dot(eye))
	m[14] = float32(f.Dot(eye))
	return m
}

// Mul returns a*b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+r] * b[c*4+k]
			}
			m[c*4+r] = sum
		}
	}
	return m
}

// Project maps a world point to normalized device coordinates.
func (a Mat4) Project(p weather.Vec3) (x, y, z float64, ok bool) {
	cx := float64(a[0])*p.X + float64(a[4])*p.Y + float64(a[8])*p.Z + float64(a[12])
	cy := float64(a[1])*p.X + float64(a[5])*p.Y + float64(a[9])*p.Z + float64(a[13])
	cz := float64(a[2])*p.X + float64(a[6])*p.Y + float64(a[10])*p.Z + float64(a[14])
	cw := float64(a[3])*p.X + float64(a[7])*p.Y + float64(a[11])*p.Z + float64(a[15])
	if cw <= 0 {
		return 0, 0, 0, false
	}
	return cx / cw, cy / cw, cz / cw, true
}

// Chase camera framing.
const (
	FieldOfView = 75.0
	NearPlane   = 0.1
	FarPlane    = 1000.0
	EyeHeight   = 5.0
	EyeBehind   = 10.0
	LookAhead   = 40.0
)

// ChaseCamera positions the rig anchor behind the car.
func ChaseCamera() weather.Camera {
	return weather.Camera{Position: weather.Vec3{Y: EyeHeight, Z: -EyeBehind}}
}

// ViewProjection combines the chase camera, shifted forward by travel, with
// the perspective for a framebuffer of the given aspect. Shake offsets on
// cam move the eye but not the look target.
func ViewProjection(cam weather.Camera, travel, aspect float64) Mat4 {
	eye := cam.Position.Add(weather.Vec3{Z: travel})
	center := weather.Vec3{Y: 1, Z: travel + LookAhead}
	view := LookAt(eye, center, weather.Vec3{Y: 1})
	return Perspective(FieldOfView, aspect, NearPlane, FarPlane).Mul(view)
}

// RoadReference is the forward position handed to RoadTiler.Advance for a
// car that has travelled distance. It trails the eye so the segment under
// the camera is only recycled once it is out of view.
func RoadReference(distance float64) float64 {
	return distance - 2*EyeBehind
}
