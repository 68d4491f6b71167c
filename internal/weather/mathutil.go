package weather

import (
	"math"
	"math/bits"
)

// Vec3 is a position or direction in world units. Y is up, Z is the road's
// forward axis.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns v scaled to unit length. The zero vector is returned as-is.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// EaseInOutCubic maps [0,1] onto [0,1] with zero slope at both ends.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	p := -2*t + 2
	return 1 - p*p*p/2
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Stream names an independent random sequence. Each subsystem draws from
// its own, so extra draws in one never reshuffle another.
type Stream uint64

const (
	StreamRain Stream = iota + 1
	StreamMixer
	StreamGust
	StreamShake
)

// Rand is a deterministic splitmix64 sequence. The same root seed always
// yields the same rain, thunder rolls, gusts and shake.
type Rand struct {
	root  uint64
	state uint64
}

func NewRand(seed uint64) *Rand {
	return &Rand{root: seed, state: seed}
}

// Stream derives the generator for one subsystem from the root seed. It
// does not advance r.
func (r *Rand) Stream(s Stream) *Rand {
	return NewRand(mix64(r.root ^ uint64(s)*0xD1B54A32D192ED03))
}

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (r *Rand) Uint64() uint64 {
	r.state += 0x9E3779B97F4A7C15
	return mix64(r.state)
}

// Float64 returns a value in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Pick returns an index in [0,n), or 0 when n <= 0.
func (r *Rand) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(r.Uint64(), uint64(n))
	return int(hi)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

// Between returns a value in [lo,hi), or lo for an empty range.
func (r *Rand) Between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*r.Float64()
}

// Signed returns a value in [-1,1).
func (r *Rand) Signed() float64 {
	return r.Float64()*2 - 1
}
