package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	available map[Channel]bool
	volumes   map[Channel]float64
	played    []int
}

func newFakeBackend(channels ...Channel) *fakeBackend {
	fb := &fakeBackend{
		available: make(map[Channel]bool),
		volumes:   make(map[Channel]float64),
	}
	for _, ch := range channels {
		fb.available[ch] = true
	}
	return fb
}

func (fb *fakeBackend) Available(ch Channel, _ int) bool { return fb.available[ch] }
func (fb *fakeBackend) SetVolume(ch Channel, v float64)  { fb.volumes[ch] = v }
func (fb *fakeBackend) PlayThunder(slot int, _ float64)  { fb.played = append(fb.played, slot) }

func TestMixerSmoothingFromSilence(t *testing.T) {
	m := NewMixer(DefaultMixerConfig(), nil, nil, NewRand(1), nil)
	m.Update(Dry, 1)

	assert.Equal(t, 0.0, m.Volume(ChannelRain))
	assert.InDelta(t, 0.02, m.Volume(ChannelWind), 1e-12)
	assert.Equal(t, 0.0, m.Volume(ChannelThunder))
	assert.InDelta(t, 0.2, m.Target(ChannelWind), 1e-12)
}

func TestMixerTargetsScaleWithIntensity(t *testing.T) {
	m := NewMixer(DefaultMixerConfig(), nil, nil, NewRand(1), nil)
	m.Update(Wet, 0.5)
	assert.InDelta(t, 0.15, m.Target(ChannelRain), 1e-12)
	assert.InDelta(t, 0.2, m.Target(ChannelWind), 1e-12)
	assert.Equal(t, 0.0, m.Target(ChannelThunder))
}

func TestMixerConvergesToTarget(t *testing.T) {
	m := NewMixer(DefaultMixerConfig(), nil, nil, NewRand(1), nil)
	for i := 0; i < 500; i++ {
		m.Update(Wet, 1)
	}
	assert.InDelta(t, 0.3, m.Volume(ChannelRain), 1e-9)
	assert.InDelta(t, 0.4, m.Volume(ChannelWind), 1e-9)
}

func TestMixerPushesAvailableChannels(t *testing.T) {
	fb := newFakeBackend(ChannelWind)
	m := NewMixer(DefaultMixerConfig(), fb, nil, NewRand(1), nil)
	m.Update(Dry, 1)

	assert.InDelta(t, 0.02, fb.volumes[ChannelWind], 1e-12)
	_, rainSet := fb.volumes[ChannelRain]
	assert.False(t, rainSet)
}

func TestMixerThunderCooldown(t *testing.T) {
	now := 0.0
	m := NewMixer(DefaultMixerConfig(), nil, nil, NewRand(5), func() float64 { return now })

	fired := 0
	for i := 0; i < 1000; i++ {
		now = float64(i) / 1000
		if m.TryThunder(1) {
			fired++
		}
	}
	assert.Equal(t, 2, fired)

	now = 9.9
	assert.False(t, m.TryThunder(1), "slots fired in the last 10s must stay gated")

	now = 10.5
	assert.True(t, m.TryThunder(1))
}

func TestMixerThunderSameSlotNeverTwiceWithinCooldown(t *testing.T) {
	now := 0.0
	m := NewMixer(MixerConfig{ThunderSlots: 1}, nil, nil, NewRand(2), func() float64 { return now })

	require.True(t, m.TryThunder(1))
	for now = 0; now <= 10; now += 0.25 {
		require.False(t, m.TryThunder(1), "now=%v", now)
	}
	now = 10.01
	assert.True(t, m.TryThunder(1))
}

func TestMixerThunderNotifiesWithoutAudio(t *testing.T) {
	m := NewMixer(DefaultMixerConfig(), nil, nil, NewRand(5), nil)
	var got []float64
	m.OnThunder(func(i float64) { got = append(got, i) })
	m.OnThunder(func(i float64) { got = append(got, -i) })

	require.True(t, m.TryThunder(0.75))
	assert.Equal(t, []float64{0.75, -0.75}, got)
}

func TestMixerThunderPlaysAvailableSlot(t *testing.T) {
	fb := newFakeBackend(ChannelThunder)
	m := NewMixer(DefaultMixerConfig(), fb, nil, NewRand(5), nil)
	require.True(t, m.TryThunder(1))
	require.True(t, m.TryThunder(1))
	assert.ElementsMatch(t, []int{0, 1}, fb.played)
}

func TestMixerThunderOnlyWhileRaining(t *testing.T) {
	now := 0.0
	m := NewMixer(DefaultMixerConfig(), nil, nil, NewRand(5), func() float64 { return now })
	strikes := 0
	m.OnThunder(func(float64) { strikes++ })

	for i := 0; i < 20000; i++ {
		m.Update(Wet, 1)
		m.Update(Dry, 1)
	}
	assert.Equal(t, 0, strikes)

	for i := 0; i < 20000; i++ {
		now += frame
		m.Update(Rainy, 1)
	}
	assert.Greater(t, strikes, 0)
}

func TestMixerZeroIntensityNeverThunders(t *testing.T) {
	m := NewMixer(DefaultMixerConfig(), nil, nil, NewRand(5), nil)
	strikes := 0
	m.OnThunder(func(float64) { strikes++ })
	for i := 0; i < 20000; i++ {
		m.Update(Rainy, 0)
	}
	assert.Equal(t, 0, strikes)
}
