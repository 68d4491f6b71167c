package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainroad/internal/weather"
)

func TestIdentityMul(t *testing.T) {
	p := Perspective(75, 16.0/9, 0.1, 1000)
	assert.Equal(t, p, Identity().Mul(p))
	assert.Equal(t, p, p.Mul(Identity()))
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := weather.Vec3{X: 1, Y: 5, Z: -10}
	v := LookAt(eye, weather.Vec3{Y: 1, Z: 30}, weather.Vec3{Y: 1})

	// The eye sits at the view-space origin, facing -Z.
	x := float64(v[0])*eye.X + float64(v[4])*eye.Y + float64(v[8])*eye.Z + float64(v[12])
	y := float64(v[1])*eye.X + float64(v[5])*eye.Y + float64(v[9])*eye.Z + float64(v[13])
	z := float64(v[2])*eye.X + float64(v[6])*eye.Y + float64(v[10])*eye.Z + float64(v[14])
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
	assert.InDelta(t, 0, z, 1e-4)
}

func TestViewProjectionRoadAhead(t *testing.T) {
	vp := ViewProjection(ChaseCamera(), 0, 16.0/9)

	// The look target lands in the centre of the screen.
	x, y, z, ok := vp.Project(weather.Vec3{Y: 1, Z: LookAhead})
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)
	assert.Greater(t, z, -1.0)
	assert.Less(t, z, 1.0)

	// Road further ahead is deeper in the depth buffer.
	_, _, zNear, ok := vp.Project(weather.Vec3{Z: 20})
	require.True(t, ok)
	_, _, zFar, ok := vp.Project(weather.Vec3{Z: 200})
	require.True(t, ok)
	assert.Less(t, zNear, zFar)

	// Anything behind the eye is culled.
	_, _, _, ok = vp.Project(weather.Vec3{Y: 5, Z: -50})
	assert.False(t, ok)
}

func TestViewProjectionFollowsTravel(t *testing.T) {
	a := ViewProjection(ChaseCamera(), 0, 1)
	b := ViewProjection(ChaseCamera(), 500, 1)

	xa, ya, _, _ := a.Project(weather.Vec3{X: 2, Z: 30})
	xb, yb, _, _ := b.Project(weather.Vec3{X: 2, Z: 530})
	assert.InDelta(t, xa, xb, 1e-3)
	assert.InDelta(t, ya, yb, 1e-3)
}

func TestRoadReferenceTrailsEye(t *testing.T) {
	eyeZ := ChaseCamera().Position.Z + 100
	assert.Less(t, RoadReference(100), eyeZ)
	assert.Equal(t, 80.0, RoadReference(100))
}
