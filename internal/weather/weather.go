// Package weather is the road and weather core of the driving game: it
// tiles the road ahead of the camera, runs eased transitions between weather
// kinds and fans the interpolated parameters out to road materials, rain,
// wind, audio volumes and the thunder reaction effects.
//
// Everything here runs on the frame goroutine. The driver calls
// System.Update once per frame and RoadTiler.Advance with the camera's
// forward position.
package weather

import (
	"math"

	"go.uber.org/zap"
)

// Transition is an in-flight interpolation between two kinds.
type Transition struct {
	From, To Kind
	Progress float64
}

// TransitionSnapshot is a read-only view of the active transition with its
// eased parameters.
type TransitionSnapshot struct {
	Transition
	Eased    float64
	Material Material
	Wind     float64
}

type Option func(*System)

// WithAudio routes ambient volumes and thunder clips to a backend.
func WithAudio(b AudioBackend) Option {
	return func(s *System) { s.audio = b }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRand(r *Rand) Option {
	return func(s *System) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithScreenShake makes thunder shake the given camera rig.
func WithScreenShake(sh *ScreenShake) Option {
	return func(s *System) { s.shake = sh }
}

// System owns the weather state machine: either steady on one kind, or
// transitioning from one kind to another.
type System struct {
	cfg     Config
	log     *zap.SugaredLogger
	rng     *Rand
	bus     *EventBus
	audio   AudioBackend
	elapsed float64

	current    Kind
	transition *Transition

	road      *RoadTiler
	rain      *RainPool
	wind      WindField
	gust      windGust
	gustRng   *Rand
	indicator WindIndicator
	mixer     *Mixer
	lightning *Lightning
	shake     *ScreenShake
}

// NewSystem starts steady on DRY and applies DRY's material to road.
// road may be nil when only the atmospheric effects are wanted.
func NewSystem(cfg Config, road *RoadTiler, opts ...Option) *System {
	cfg = cfg.withDefaults()
	s := &System{
		cfg:     cfg,
		log:     zap.NewNop().Sugar(),
		bus:     NewEventBus(),
		current: Dry,
		road:    road,
		wind:    newWindField(),
		gust: windGust{
			interval: cfg.GustInterval,
			angle:    cfg.GustAngle,
		},
		lightning: NewLightning(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = NewRand(cfg.Seed)
	}

	s.gustRng = s.rng.Stream(StreamGust)
	s.rain = NewRainPool(cfg.RainParticles, s.rng.Stream(StreamRain))
	s.mixer = NewMixer(cfg.Mixer, s.audio, s.bus, s.rng.Stream(StreamMixer), s.Elapsed)
	s.mixer.SetLogger(s.log)
	s.mixer.OnThunder(s.onThunder)
	s.indicator.Update(s.wind)
	if s.road != nil {
		s.road.ApplyMaterial(s.current.Material())
	}
	if s.audio == nil {
		s.log.Infow("no audio backend, weather runs silent")
	}
	return s
}

func (s *System) onThunder(intensity float64) {
	s.lightning.Trigger(intensity)
	if s.shake != nil {
		s.shake.Shake(intensity*ThunderShakeScale, ThunderShakeDuration)
	}
}

// SetWeather requests a transition to kind. Requests for the current kind,
// unknown kinds, or any request while a transition runs are ignored.
func (s *System) SetWeather(kind Kind) {
	if !kind.Valid() || kind == s.current {
		return
	}
	if s.transition != nil {
		s.log.Debugw("weather request ignored, transition in progress",
			"requested", kind, "from", s.transition.From, "to", s.transition.To)
		return
	}
	s.transition = &Transition{From: s.current, To: kind}
	s.log.Debugw("weather transition started", "from", s.current, "to", kind)
	s.bus.Emit(Event{Type: EventTransitionStarted, Kind: kind})
}

// SetWeatherName parses name ("DRY", "WET", "RAINY") and requests it.
// Unknown names are ignored.
func (s *System) SetWeatherName(name string) {
	kind, ok := ParseKind(name)
	if !ok {
		if hint, near := SuggestKind(name); near {
			s.log.Debugw("unknown weather ignored", "name", name, "did_you_mean", hint)
		} else {
			s.log.Debugw("unknown weather ignored", "name", name)
		}
		return
	}
	s.SetWeather(kind)
}

// Update advances the whole weather core by dt seconds.
func (s *System) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	s.elapsed += dt

	s.rain.Update(dt, s.wind)
	s.gust.update(&s.wind, s.gustRng, dt)
	s.indicator.Update(s.wind)
	s.mixer.Update(s.current, s.wind.Intensity)
	s.lightning.Update(dt)
	if s.shake != nil {
		s.shake.Update(dt)
	}

	if s.transition != nil {
		s.advanceTransition(dt)
	}
}

func (s *System) advanceTransition(dt float64) {
	tr := s.transition
	tr.Progress += dt / s.cfg.TransitionSeconds
	if tr.Progress >= 1 {
		s.commit(tr.To)
		return
	}

	m, wind := blend(tr.From, tr.To, EaseInOutCubic(tr.Progress))
	s.wind.Intensity = wind
	if s.road != nil {
		s.road.ApplyMaterial(m)
	}
}

func (s *System) commit(kind Kind) {
	s.current = kind
	s.transition = nil

	s.wind.Intensity = kind.Params().WindBaseline
	if kind == Rainy {
		s.rain.SetIntensity(1)
	} else {
		s.rain.SetIntensity(0)
	}
	if s.road != nil {
		s.road.ApplyMaterial(kind.Material())
	}
	s.log.Infow("weather changed", "weather", kind)
	s.bus.Emit(Event{Type: EventWeatherChanged, Kind: kind})
}

func blend(from, to Kind, t float64) (Material, float64) {
	a, b := from.Params(), to.Params()
	return Material{
		Roughness:  lerp(a.Roughness, b.Roughness, t),
		Reflection: lerp(a.Reflection, b.Reflection, t),
	}, lerp(a.WindBaseline, b.WindBaseline, t)
}

// Current is the committed weather kind. During a transition it is the
// kind being left.
func (s *System) Current() Kind { return s.current }

// Transition reports the active transition, if any.
func (s *System) Transition() (TransitionSnapshot, bool) {
	if s.transition == nil {
		return TransitionSnapshot{}, false
	}
	tr := *s.transition
	eased := EaseInOutCubic(tr.Progress)
	m, wind := blend(tr.From, tr.To, eased)
	return TransitionSnapshot{Transition: tr, Eased: eased, Material: m, Wind: wind}, true
}

func (s *System) Wind() WindField          { return s.wind }
func (s *System) Indicator() WindIndicator { return s.indicator }
func (s *System) Rain() *RainPool          { return s.rain }
func (s *System) Mixer() *Mixer            { return s.mixer }
func (s *System) Lightning() *Lightning    { return s.lightning }
func (s *System) Events() *EventBus        { return s.bus }

// Elapsed is the simulated time in seconds accumulated from Update.
func (s *System) Elapsed() float64 { return s.elapsed }
