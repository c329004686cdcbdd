// Package config loads and saves scenario configurations for the demo
// driver: timestep, gravity, contact materials and the initial ball
// state, as YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt                 = 0.0005
	DefaultDuration           = 3.0
	DefaultGravity            = 9.81
	DefaultTransitionVelocity = 0.01
	DefaultStiffness          = 1e6
	DefaultDissipation        = 0.5
	DefaultBallRadius         = 0.1
	DefaultBallMass           = 1.0
	DefaultDropHeight         = 0.5
)

type Config struct {
	Dt                 float64        `yaml:"dt"`
	Duration           float64        `yaml:"duration"`
	Gravity            float64        `yaml:"gravity"`
	TransitionVelocity float64        `yaml:"transition_velocity"`
	Ball               BallConfig     `yaml:"ball"`
	Ground             MaterialConfig `yaml:"ground"`
}

type BallConfig struct {
	Mass     float64        `yaml:"mass"`
	Radius   float64        `yaml:"radius"`
	Height   float64        `yaml:"height"`
	Velocity VelocityConfig `yaml:"velocity"`
	Material MaterialConfig `yaml:"material"`
}

type VelocityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type MaterialConfig struct {
	Stiffness       float64 `yaml:"stiffness"`
	Dissipation     float64 `yaml:"dissipation"`
	StaticFriction  float64 `yaml:"static_friction"`
	DynamicFriction float64 `yaml:"dynamic_friction"`
	ViscousFriction float64 `yaml:"viscous_friction"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:                 DefaultDt,
		Duration:           DefaultDuration,
		Gravity:            DefaultGravity,
		TransitionVelocity: DefaultTransitionVelocity,
		Ball: BallConfig{
			Mass:   DefaultBallMass,
			Radius: DefaultBallRadius,
			Height: DefaultDropHeight,
			Material: MaterialConfig{
				Stiffness:       DefaultStiffness,
				Dissipation:     DefaultDissipation,
				StaticFriction:  0.6,
				DynamicFriction: 0.4,
			},
		},
		Ground: MaterialConfig{
			Stiffness:       DefaultStiffness,
			Dissipation:     DefaultDissipation,
			StaticFriction:  0.6,
			DynamicFriction: 0.4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.TransitionVelocity <= 0 {
		return fmt.Errorf("transition velocity must be positive, got %f", c.TransitionVelocity)
	}
	if c.Ball.Mass <= 0 {
		return fmt.Errorf("ball mass must be positive, got %f", c.Ball.Mass)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %f", c.Ball.Radius)
	}
	return nil
}
