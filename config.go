package dieroller

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "DIEROLLER_"

// WorldConfig holds the scene constants. Every field can be overridden
// from the environment with a DIEROLLER_ prefix, e.g. DIEROLLER_GRAVITY.
type WorldConfig struct {
	Gravity float64 `env:"GRAVITY" envDefault:"1500"`
	FloorZ  float64 `env:"FLOOR_Z" envDefault:"-100"`

	FocalLength    float64 `env:"FOCAL_LENGTH" envDefault:"2200"`
	CameraDistance float64 `env:"CAMERA_DISTANCE" envDefault:"2500"`
	// Tilt is the view rotation about X, in degrees.
	Tilt    float64 `env:"TILT" envDefault:"-35"`
	OffsetX float64 `env:"OFFSET_X" envDefault:"0"`
	OffsetY float64 `env:"OFFSET_Y" envDefault:"700"`
	Width   int     `env:"WIDTH" envDefault:"1000"`
	Height  int     `env:"HEIGHT" envDefault:"800"`

	LightX   float64 `env:"LIGHT_X" envDefault:"0"`
	LightY   float64 `env:"LIGHT_Y" envDefault:"-1"`
	LightZ   float64 `env:"LIGHT_Z" envDefault:"1"`
	Darkest  float64 `env:"DARKEST" envDefault:"0.3"`
	Lightest float64 `env:"LIGHTEST" envDefault:"1.0"`

	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"16ms"`
}

// DefaultWorldConfig returns the built-in defaults, ignoring the process
// environment.
func DefaultWorldConfig() WorldConfig {
	var cfg WorldConfig
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      envPrefix,
		Environment: map[string]string{},
	}); err != nil {
		// The defaults are compile-time constants.
		panic(err)
	}
	return cfg
}

// LoadWorldConfig reads the defaults overridden by DIEROLLER_* variables.
func LoadWorldConfig() (WorldConfig, error) {
	var cfg WorldConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return WorldConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Light is the unit light direction.
func (c WorldConfig) Light() Vector3 {
	return Vector3{X: c.LightX, Y: c.LightY, Z: c.LightZ}.UnitVector()
}

func (c WorldConfig) Acceleration() Vector3 {
	return Vector3{Z: -c.Gravity}
}

func (c WorldConfig) Camera() *Camera {
	return NewCamera(c.Tilt, c.FocalLength, c.CameraDistance, NewVector2(c.OffsetX, c.OffsetY))
}
