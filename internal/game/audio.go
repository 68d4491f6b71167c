package game

import (
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"rainroad/internal/sound"
)

const (
	ChannelCount = 2
	BitDepth     = oto.FormatFloat32LE
	readyTimeout = 3 * time.Second
)

// AudioOutput plays a sound.Bank on the default device.
type AudioOutput struct {
	ctx  *oto.Context
	bank *sound.Bank
}

// StartAudio opens the device and starts streaming bank once the context is
// ready. The bank reports itself available only after playback started, so
// the weather core runs silent until then.
func StartAudio(bank *sound.Bank, log *zap.SugaredLogger) (*AudioOutput, error) {
	ctx, ready, err := oto.NewContext(bank.SampleRate(), ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	out := &AudioOutput{ctx: ctx, bank: bank}

	go func() {
		select {
		case <-ready:
		case <-time.After(readyTimeout):
			log.Warnw("audio device not ready, continuing without sound", "timeout", readyTimeout)
			return
		}
		if out.start() {
			log.Infow("audio started", "sample_rate", bank.SampleRate())
		}
	}()
	return out, nil
}

// start plays the bank on a new player unless Close already ran.
func (a *AudioOutput) start() bool {
	return a.bank.Attach(func() io.Closer {
		p := a.ctx.NewPlayer(a.bank)
		p.Play()
		return p
	})
}

// Pause silences output without tearing the device down.
func (a *AudioOutput) Pause(paused bool) {
	a.bank.SetPaused(paused)
}

// Close stops playback. A device that becomes ready afterwards is not used.
func (a *AudioOutput) Close() error {
	return a.bank.Close()
}
