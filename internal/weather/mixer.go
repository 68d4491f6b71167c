package weather

import (
	"math"

	"go.uber.org/zap"
)

// Channel is an ambient audio channel.
type Channel uint8

const (
	ChannelRain Channel = iota
	ChannelWind
	ChannelThunder

	channelCount
)

func (c Channel) String() string {
	switch c {
	case ChannelRain:
		return "rain"
	case ChannelWind:
		return "wind"
	case ChannelThunder:
		return "thunder"
	}
	return "unknown"
}

// volumeTable holds the target volume of each channel at intensity 1.
var volumeTable = [kindCount][channelCount]float64{
	Dry:   {ChannelRain: 0, ChannelWind: 0.2, ChannelThunder: 0},
	Wet:   {ChannelRain: 0.3, ChannelWind: 0.4, ChannelThunder: 0},
	Rainy: {ChannelRain: 0.7, ChannelWind: 0.8, ChannelThunder: 1},
}

// AudioBackend is a best-effort sound sink. Clips may be missing or still
// loading; the mixer asks before playing and never fails on absence.
// slot is only meaningful for ChannelThunder.
type AudioBackend interface {
	Available(ch Channel, slot int) bool
	SetVolume(ch Channel, volume float64)
	PlayThunder(slot int, volume float64)
}

type MixerConfig struct {
	ThunderSlots    int
	ThunderCooldown float64 // seconds
}

func DefaultMixerConfig() MixerConfig {
	return MixerConfig{
		ThunderSlots:    DefaultThunderSlots,
		ThunderCooldown: DefaultThunderCooldown,
	}
}

func (c MixerConfig) withDefaults() MixerConfig {
	if c.ThunderSlots <= 0 {
		c.ThunderSlots = DefaultThunderSlots
	}
	if c.ThunderCooldown <= 0 {
		c.ThunderCooldown = DefaultThunderCooldown
	}
	return c
}

// ChannelState is the smoothed volume of one channel.
type ChannelState struct {
	Volume float64
	Target float64
}

// ThunderSlot is one cooldown-gated thunder source.
type ThunderSlot struct {
	LastPlayed float64 // simulated seconds; -Inf until first use
	warned     bool
}

// Mixer smooths ambient channel volumes toward weather targets and rolls
// for thunder while it rains.
type Mixer struct {
	cfg      MixerConfig
	backend  AudioBackend
	bus      *EventBus
	rng      *Rand
	clock    func() float64
	log      *zap.SugaredLogger
	channels [channelCount]ChannelState
	slots    []ThunderSlot
}

// NewMixer builds a mixer. backend may be nil for silent play; clock returns
// the current simulated time in seconds.
func NewMixer(cfg MixerConfig, backend AudioBackend, bus *EventBus, rng *Rand, clock func() float64) *Mixer {
	cfg = cfg.withDefaults()
	if bus == nil {
		bus = NewEventBus()
	}
	if rng == nil {
		rng = NewRand(1)
	}
	if clock == nil {
		clock = func() float64 { return 0 }
	}
	m := &Mixer{
		cfg:     cfg,
		backend: backend,
		bus:     bus,
		rng:     rng,
		clock:   clock,
		log:     zap.NewNop().Sugar(),
		slots:   make([]ThunderSlot, cfg.ThunderSlots),
	}
	for i := range m.slots {
		m.slots[i].LastPlayed = math.Inf(-1)
	}
	return m
}

func (m *Mixer) SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		m.log = l
	}
}

// OnThunder registers a listener for thunder strikes.
func (m *Mixer) OnThunder(fn func(intensity float64)) {
	if fn == nil {
		return
	}
	m.bus.Subscribe(EventThunder, func(e Event) { fn(e.Intensity) })
}

// Update rolls for thunder and eases every channel toward its target.
// Smoothing is per call; callers run it once per frame.
func (m *Mixer) Update(kind Kind, intensity float64) {
	if !kind.Valid() {
		return
	}
	intensity = clampF(intensity, 0, 1)

	if kind == Rainy && m.rng.Chance(ThunderProbability*intensity) {
		m.TryThunder(intensity)
	}

	for ch := Channel(0); ch < channelCount; ch++ {
		st := &m.channels[ch]
		st.Target = volumeTable[kind][ch] * intensity
		st.Volume = lerp(st.Volume, st.Target, VolumeSmoothing)
		if m.backend != nil && ch != ChannelThunder && m.backend.Available(ch, 0) {
			m.backend.SetVolume(ch, st.Volume)
		}
	}
}

// TryThunder strikes a random slot whose cooldown has elapsed. It reports
// whether a strike happened. Listeners are notified even when the clip
// cannot be played.
func (m *Mixer) TryThunder(intensity float64) bool {
	now := m.clock()
	ready := make([]int, 0, len(m.slots))
	for i := range m.slots {
		if now-m.slots[i].LastPlayed > m.cfg.ThunderCooldown {
			ready = append(ready, i)
		}
	}
	if len(ready) == 0 {
		return false
	}

	idx := ready[m.rng.Pick(len(ready))]
	slot := &m.slots[idx]
	vol := 0.5 + m.rng.Float64()*0.5*intensity
	switch {
	case m.backend != nil && m.backend.Available(ChannelThunder, idx):
		m.backend.PlayThunder(idx, vol)
	case !slot.warned:
		slot.warned = true
		m.log.Warnw("thunder sound not available, using visual only", "slot", idx)
	}
	slot.LastPlayed = now

	m.bus.Emit(Event{Type: EventThunder, Intensity: intensity})
	return true
}

func (m *Mixer) Volume(ch Channel) float64 {
	if ch >= channelCount {
		return 0
	}
	return m.channels[ch].Volume
}

func (m *Mixer) Target(ch Channel) float64 {
	if ch >= channelCount {
		return 0
	}
	return m.channels[ch].Target
}

// Slots returns a copy of the thunder slots.
func (m *Mixer) Slots() []ThunderSlot {
	out := make([]ThunderSlot, len(m.slots))
	copy(out, m.slots)
	return out
}
