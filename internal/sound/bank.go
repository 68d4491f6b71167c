// Package sound synthesizes the weather ambience procedurally and exposes it
// as one endless float32 stereo PCM stream.
package sound

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"rainroad/internal/weather"
)

const (
	SampleRate    = beep.SampleRate(44100)
	ChannelCount  = 2
	bytesPerFrame = 8 // two float32 channels
)

// Bank mixes the rain and wind beds with any playing thunder clips. It
// implements weather.AudioBackend and io.Reader.
type Bank struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  *beep.Mixer
	master *beep.Ctrl
	rain   *effects.Volume
	wind   *effects.Volume
	slots  int
	seed   uint64
	ready  bool
	buf    [][2]float64

	// life guards the output lifecycle. It is separate from mu because
	// starting a player may read from the bank synchronously.
	life   sync.Mutex
	out    io.Closer
	closed bool
}

// NewBank builds a bank rendering at sampleRate (0 selects SampleRate) with
// the given number of thunder slots. It starts not ready: Available reports
// false until SetReady(true).
func NewBank(sampleRate, slots int, seed uint64) *Bank {
	sr := beep.SampleRate(sampleRate)
	if sr <= 0 {
		sr = SampleRate
	}
	if slots <= 0 {
		slots = weather.DefaultThunderSlots
	}
	b := &Bank{
		sr:    sr,
		mixer: &beep.Mixer{},
		slots: slots,
		seed:  seed | 1,
	}
	b.rain = newVolume(newRainBed(b.seed), 0)
	b.wind = newVolume(newWindBed(b.sr, b.seed^0xA5A5A5A5), 0)
	b.mixer.Add(b.rain, b.wind)
	b.master = &beep.Ctrl{Streamer: b.mixer}
	return b
}

// SetReady marks the output device as up (or lost).
func (b *Bank) SetReady(ready bool) {
	b.mu.Lock()
	b.ready = ready
	b.mu.Unlock()
}

// Attach starts an output that streams from the bank and marks the bank
// ready. It returns false without calling start once Close has run, so a
// late device never outlives shutdown.
func (b *Bank) Attach(start func() io.Closer) bool {
	b.life.Lock()
	defer b.life.Unlock()
	if b.closed || b.out != nil {
		return false
	}
	b.out = start()
	b.SetReady(true)
	return true
}

// Close marks the bank not ready and closes the attached output, if any.
// Later Attach calls are refused.
func (b *Bank) Close() error {
	b.life.Lock()
	defer b.life.Unlock()
	b.closed = true
	b.SetReady(false)
	if b.out == nil {
		return nil
	}
	out := b.out
	b.out = nil
	return out.Close()
}

// SetPaused silences the whole output without dropping state.
func (b *Bank) SetPaused(paused bool) {
	b.mu.Lock()
	b.master.Paused = paused
	b.mu.Unlock()
}

func (b *Bank) Available(ch weather.Channel, slot int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return false
	}
	switch ch {
	case weather.ChannelRain, weather.ChannelWind:
		return true
	case weather.ChannelThunder:
		return slot >= 0 && slot < b.slots
	}
	return false
}

func (b *Bank) SetVolume(ch weather.Channel, volume float64) {
	volume = math.Max(0, math.Min(1, volume))
	b.mu.Lock()
	defer b.mu.Unlock()
	switch ch {
	case weather.ChannelRain:
		setVolume(b.rain, volume)
	case weather.ChannelWind:
		setVolume(b.wind, volume)
	}
}

// PlayThunder starts a fresh strike on slot. Quieter strikes are further
// away, so they arrive later.
func (b *Bank) PlayThunder(slot int, volume float64) {
	if slot < 0 || slot >= b.slots || volume <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seed = b.seed*6364136223846793005 + 1442695040888963407
	seconds := 4 + 2*float64(slot%2)
	clip := newThunderClip(b.sr, b.seed, seconds)
	delay := b.sr.N(time.Duration((1 - math.Min(volume, 1)) * float64(600*time.Millisecond)))
	b.mixer.Add(newVolume(beep.Seq(beep.Silence(delay), clip), volume))
}

func (b *Bank) SampleRate() int { return int(b.sr) }

// Playing is the number of thunder clips still sounding.
func (b *Bank) Playing() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Len() - 2
}

// Read fills p with float32 LE stereo frames. It never returns EOF; a
// trailing partial frame is left unfilled.
func (b *Bank) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if cap(b.buf) < frames {
		b.buf = make([][2]float64, frames)
	}
	buf := b.buf[:frames]
	n, _ := b.master.Stream(buf)
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}
	for i, s := range buf {
		putStereoF32LR(p, i, softSat(s[0]), softSat(s[1]))
	}
	return frames * bytesPerFrame, nil
}

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

var _ weather.AudioBackend = (*Bank)(nil)
