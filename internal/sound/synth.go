package sound

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// softSat applies gentle tanh-like saturation without hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// newVolume wraps s with a linear gain. math.Log2(0) is -Inf, so zero is
// expressed as silence.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setVolume(v, vol)
	return v
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

// rainBed is endless hiss: high-passed white noise with a light stereo
// decorrelation and sparse droplet ticks.
type rainBed struct {
	seedL, seedR uint64
	prevL, prevR float64
	hpL, hpR     float64
}

func newRainBed(seed uint64) *rainBed {
	return &rainBed{seedL: seed | 1, seedR: (seed ^ 0x5DEECE66D) | 1}
}

func (r *rainBed) Stream(samples [][2]float64) (n int, ok bool) {
	const a = 0.86 // one-pole high-pass coefficient
	for i := range samples {
		xl := lcg(&r.seedL)
		xr := lcg(&r.seedR)
		r.hpL = a * (r.hpL + xl - r.prevL)
		r.hpR = a * (r.hpR + xr - r.prevR)
		r.prevL, r.prevR = xl, xr

		tick := 0.0
		if xl > 0.9995 {
			tick = 0.6
		}
		samples[i][0] = 0.35*r.hpL + tick
		samples[i][1] = 0.35*r.hpR + tick
	}
	return len(samples), true
}

func (r *rainBed) Err() error { return nil }

// windBed is low-passed noise whose cutoff and level breathe on a slow LFO.
type windBed struct {
	sr    beep.SampleRate
	seed  uint64
	pos   int
	lpL   float64
	lpR   float64
	phase float64
}

func newWindBed(sr beep.SampleRate, seed uint64) *windBed {
	return &windBed{sr: sr, seed: seed | 1}
}

func (w *windBed) Stream(samples [][2]float64) (n int, ok bool) {
	dPhase := 0.13 / float64(w.sr) // ~8s gust cycle
	for i := range samples {
		lfo := 0.5 + 0.5*math.Sin(2*math.Pi*w.phase)
		k := 0.004 + 0.02*lfo
		x := lcg(&w.seed)
		w.lpL += (x - w.lpL) * k
		w.lpR += (x - w.lpR) * (k * 0.9)

		amp := (0.6 + 0.4*lfo) * 6.0
		samples[i][0] = softSat(w.lpL * amp)
		samples[i][1] = softSat(w.lpR * amp)

		w.phase += dPhase
		if w.phase >= 1 {
			w.phase -= 1
		}
		w.pos++
	}
	return len(samples), true
}

func (w *windBed) Err() error { return nil }

// thunderClip is a finite strike: a short bright crack followed by a long
// low rumble with random rolls.
type thunderClip struct {
	sr       beep.SampleRate
	seed     uint64
	pos      int
	total    int
	crack    int
	lp       float64
	lp2      float64
	roll     float64
	rollSeed uint64
}

func newThunderClip(sr beep.SampleRate, seed uint64, seconds float64) *thunderClip {
	return &thunderClip{
		sr:       sr,
		seed:     seed | 1,
		rollSeed: (seed * 0x9E3779B97F4A7C15) | 1,
		total:    int(seconds * float64(sr)),
		crack:    int(0.08 * float64(sr)),
		roll:     1,
	}
}

func (c *thunderClip) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= c.total {
		return 0, false
	}
	for i := range samples {
		if c.pos >= c.total {
			return i, true
		}
		t := float64(c.pos) / float64(c.sr)
		p := float64(c.pos) / float64(c.total)

		x := lcg(&c.seed)
		c.lp += (x - c.lp) * 0.03
		c.lp2 += (c.lp - c.lp2) * 0.05

		// Rolls: a slow random walk on the rumble level.
		if c.pos%512 == 0 {
			c.roll += lcg(&c.rollSeed) * 0.25
			if c.roll < 0.4 {
				c.roll = 0.4
			}
			if c.roll > 1.3 {
				c.roll = 1.3
			}
		}

		attack := math.Min(t/0.25, 1)
		rumble := c.lp2 * 14 * attack * math.Exp(-3.2*p) * c.roll

		crack := 0.0
		if c.pos < c.crack {
			cp := float64(c.pos) / float64(c.crack)
			crack = x * (1 - cp) * (1 - cp) * 0.8
		}

		s := softSat(rumble + crack)
		samples[i][0] = s
		samples[i][1] = s
		c.pos++
	}
	return len(samples), true
}

func (c *thunderClip) Err() error { return nil }
