package config

import "fmt"

// Presets names a handful of ready-made drop scenarios with contrasting
// material behavior.
var Presets = map[string]func() *Config{
	"bounce": BouncePreset,
	"dead":   DeadPreset,
	"slide":  SlidePreset,
	"soft":   SoftPreset,
}

// BouncePreset is a lightly damped ball that takes many bounces to
// settle.
func BouncePreset() *Config {
	cfg := DefaultConfig()
	cfg.Ball.Material.Dissipation = 0.05
	cfg.Ground.Dissipation = 0.05
	return cfg
}

// DeadPreset is strongly damped; nearly all impact energy is shed on
// the first contact.
func DeadPreset() *Config {
	cfg := DefaultConfig()
	cfg.Ball.Material.Dissipation = 5.0
	cfg.Ground.Dissipation = 5.0
	return cfg
}

// SlidePreset launches the ball with tangential velocity so friction
// does visible work.
func SlidePreset() *Config {
	cfg := DefaultConfig()
	cfg.Ball.Height = 0 // start touching the ground
	cfg.Ball.Velocity.X = 2.0
	cfg.Duration = 2.0
	return cfg
}

// SoftPreset lowers stiffness by two orders of magnitude for deep,
// slow deformation that is easy to see in the live view.
func SoftPreset() *Config {
	cfg := DefaultConfig()
	cfg.Ball.Material.Stiffness = 1e4
	cfg.Ground.Stiffness = 1e4
	cfg.Dt = 0.0002
	return cfg
}

// Preset returns the named preset or an error listing valid names.
func Preset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (valid: bounce, dead, slide, soft)", name)
	}
	return fn(), nil
}
