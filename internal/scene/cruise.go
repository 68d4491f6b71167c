package scene

// Cruise control limits from the car tuning, converted from
// per-frame at 60 Hz to per-second rates.
const (
	MaxSpeedKmh     = 120.0
	StartSpeedKmh   = 60.0
	AccelKmhPerSec  = 0.2 * 60
	BrakeKmhPerSec  = 0.5 * 60
	metresPerKmhSec = 1 / 3.6
)

// Cruise is the player's forward motion. One world unit is one metre.
type Cruise struct {
	Speed    float64 // km/h
	Distance float64 // metres travelled
}

func NewCruise() *Cruise {
	return &Cruise{Speed: StartSpeedKmh}
}

// Update applies throttle or brake for dt seconds, then moves forward.
func (c *Cruise) Update(dt float64, accelerate, brake bool) {
	if dt <= 0 {
		return
	}
	switch {
	case brake:
		c.Speed -= BrakeKmhPerSec * dt
	case accelerate:
		c.Speed += AccelKmhPerSec * dt
	}
	if c.Speed < 0 {
		c.Speed = 0
	}
	if c.Speed > MaxSpeedKmh {
		c.Speed = MaxSpeedKmh
	}
	c.Distance += c.Speed * metresPerKmhSec * dt
}
