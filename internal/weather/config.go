package weather

// Defaults.
const (
	DefaultTransitionSeconds = 5.0
	DefaultSegmentCount      = 12
	DefaultSegmentLength     = 100.0
	DefaultRoadWidth         = 8.0
	DefaultRainParticles     = 2000
	DefaultThunderSlots      = 2
	DefaultThunderCooldown   = 10.0 // seconds
	DefaultGustInterval      = 0.6  // seconds
	DefaultGustAngle         = 0.05 // radians
)

// Rain volume and motion.
const (
	RainFloor          = -10.0
	RainSpawnMinY      = 20.0
	RainSpawnMaxY      = 50.0
	RainInitialMaxY    = 70.0
	RainHalfExtent     = 50.0
	RainFallSpeed      = 0.5 // units per reference frame at intensity 1
	RainHorizontalDrag = 0.1
	ReferenceFrameRate = 60.0
)

// Audio.
const (
	VolumeSmoothing    = 0.1
	ThunderProbability = 0.005 // per update at intensity 1
)

// Thunder reaction.
const (
	ThunderShakeScale    = 0.15
	ThunderShakeDuration = 600.0 // ms
	DefaultShakeDuration = 500.0 // ms
)

// Config tunes a System. Zero fields fall back to defaults.
type Config struct {
	TransitionSeconds float64
	Seed              uint64
	Road              RoadConfig
	RainParticles     int
	Mixer             MixerConfig
	GustInterval      float64 // negative disables gust drift
	GustAngle         float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		TransitionSeconds: DefaultTransitionSeconds,
		Seed:              1,
		Road:              DefaultRoadConfig(),
		RainParticles:     DefaultRainParticles,
		Mixer:             DefaultMixerConfig(),
		GustInterval:      DefaultGustInterval,
		GustAngle:         DefaultGustAngle,
	}
}

func (c Config) withDefaults() Config {
	if c.TransitionSeconds <= 0 {
		c.TransitionSeconds = DefaultTransitionSeconds
	}
	if c.RainParticles <= 0 {
		c.RainParticles = DefaultRainParticles
	}
	if c.GustInterval == 0 {
		c.GustInterval = DefaultGustInterval
	}
	if c.GustAngle <= 0 {
		c.GustAngle = DefaultGustAngle
	}
	c.Road = c.Road.withDefaults()
	c.Mixer = c.Mixer.withDefaults()
	return c
}
