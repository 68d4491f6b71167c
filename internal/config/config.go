// Package config loads runtime tuning for the game from the environment.
//
// Values are resolved in priority order:
//
//	OS Environment (Highest) -> Dotenv File -> struct defaults (Lowest)
//
// Every variable carries the RAINROAD_ prefix plus its section, e.g.
// RAINROAD_WEATHER_TRANSITION_SECONDS or RAINROAD_AUDIO_ENABLED.
package config

import (
	"time"

	"rainroad/internal/weather"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "RAINROAD"

// Config is populated once at startup and never modified.
type Config struct {
	Debug bool   `envconfig:"DEBUG" default:"false"`
	Seed  uint64 `envconfig:"SEED" default:"0"` // 0 seeds from the clock

	Weather WeatherConfig
	Window  WindowConfig
	Audio   AudioConfig
	Log     LogConfig
}

// WeatherConfig tunes the road and weather core.
type WeatherConfig struct {
	TransitionSeconds float64       `envconfig:"TRANSITION_SECONDS" default:"5" validate:"gt=0,lte=120"`
	SegmentCount      int           `envconfig:"SEGMENT_COUNT" default:"12" validate:"gte=2,lte=256"`
	SegmentLength     float64       `envconfig:"SEGMENT_LENGTH" default:"100" validate:"gt=0"`
	RoadWidth         float64       `envconfig:"ROAD_WIDTH" default:"8" validate:"gt=0"`
	RainParticles     int           `envconfig:"RAIN_PARTICLES" default:"2000" validate:"gte=1,lte=100000"`
	ThunderSlots      int           `envconfig:"THUNDER_SLOTS" default:"2" validate:"gte=1,lte=8"`
	ThunderCooldown   time.Duration `envconfig:"THUNDER_COOLDOWN" default:"10s" validate:"gt=0"`
	GustInterval      float64       `envconfig:"GUST_INTERVAL" default:"0.6"` // negative disables drift
	GustAngle         float64       `envconfig:"GUST_ANGLE" default:"0.05" validate:"gt=0,lte=3.1416"`
	InitialWeather    string        `envconfig:"INITIAL_WEATHER" default:"DRY" validate:"oneof=DRY WET RAINY"` // any case
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int `envconfig:"WIDTH" default:"1280" validate:"gte=320"`
	Height int `envconfig:"HEIGHT" default:"720" validate:"gte=240"`
}

// AudioConfig controls the output device.
type AudioConfig struct {
	Enabled    bool `envconfig:"ENABLED" default:"true"`
	SampleRate int  `envconfig:"SAMPLE_RATE" default:"44100" validate:"oneof=22050 44100 48000"`
}

// LogConfig optionally mirrors logs into a rotating file.
type LogConfig struct {
	File       string `envconfig:"FILE"`
	MaxSizeMB  int    `envconfig:"MAX_SIZE_MB" default:"10" validate:"gte=1"`
	MaxBackups int    `envconfig:"MAX_BACKUPS" default:"3" validate:"gte=0"`
}

// Core maps the weather section onto the core's own config.
func (c *Config) Core(seed uint64) weather.Config {
	w := c.Weather
	return weather.Config{
		TransitionSeconds: w.TransitionSeconds,
		Seed:              seed,
		Road: weather.RoadConfig{
			SegmentLength: w.SegmentLength,
			Width:         w.RoadWidth,
		},
		RainParticles: w.RainParticles,
		Mixer: weather.MixerConfig{
			ThunderSlots:    w.ThunderSlots,
			ThunderCooldown: w.ThunderCooldown.Seconds(),
		},
		GustInterval: w.GustInterval,
		GustAngle:    w.GustAngle,
	}
}

// StartWeather is the parsed initial weather kind.
func (c *Config) StartWeather() weather.Kind {
	k, ok := weather.ParseKind(c.Weather.InitialWeather)
	if !ok {
		return weather.Dry
	}
	return k
}
