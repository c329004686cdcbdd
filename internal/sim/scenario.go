// Package sim drives the compliant contact layer end to end: it builds
// the ball-on-ground demo scene from a config, steps it through the
// realization stages, and records the energy bookkeeping over time.
package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/compliant"
	"github.com/sorenkar/compliant/internal/config"
	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/multibody"
	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// Scenario is the assembled demo scene: a static ground body, one free
// ball, a tracker watching the pair, and a contact subsystem with the
// circular point generator adopted.
type Scenario struct {
	Cfg     *config.Config
	System  *multibody.System
	Tracker *BallTracker
	Sub     *compliant.Subsystem

	Ground int
	Ball   int
}

// NewScenario builds the scene described by cfg.
func NewScenario(cfg *config.Config) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	groundMat, err := contact.NewMaterial(
		cfg.Ground.Stiffness, cfg.Ground.Dissipation,
		cfg.Ground.StaticFriction, cfg.Ground.DynamicFriction, cfg.Ground.ViscousFriction)
	if err != nil {
		return nil, fmt.Errorf("ground material: %w", err)
	}
	ballMat, err := contact.NewMaterial(
		cfg.Ball.Material.Stiffness, cfg.Ball.Material.Dissipation,
		cfg.Ball.Material.StaticFriction, cfg.Ball.Material.DynamicFriction, cfg.Ball.Material.ViscousFriction)
	if err != nil {
		return nil, fmt.Errorf("ball material: %w", err)
	}

	sys := multibody.NewSystem()
	ground := sys.AddBody(multibody.Body{Name: "ground", Static: true})
	// Solid sphere inertia about its center.
	moi := 0.4 * cfg.Ball.Mass * cfg.Ball.Radius * cfg.Ball.Radius
	ball := sys.AddBody(multibody.Body{
		Name:    "ball",
		Mass:    cfg.Ball.Mass,
		Inertia: mgl64.Ident3().Mul(moi),
	})

	tracker := NewBallTracker(ground, ball, cfg.Ball.Radius, groundMat, ballMat)
	sub := compliant.New(sys, tracker)
	if err := sub.SetTransitionVelocity(cfg.TransitionVelocity); err != nil {
		return nil, err
	}
	if err := sub.AdoptGenerator(compliant.NewHertzCircular()); err != nil {
		return nil, err
	}

	return &Scenario{
		Cfg:     cfg,
		System:  sys,
		Tracker: tracker,
		Sub:     sub,
		Ground:  ground,
		Ball:    ball,
	}, nil
}

// InitialState allocates a state, realizes topology, and places the
// ball at its configured drop height and launch velocity.
func (scn *Scenario) InitialState() *state.State {
	s := state.New(scn.System.NumBodies())
	scn.Sub.RealizeTopology(s)
	s.SetQ(scn.Ball, spatial.Transform{
		R: mgl64.Ident3(),
		P: mgl64.Vec3{0, 0, scn.Cfg.Ball.Height + scn.Cfg.Ball.Radius},
	})
	s.SetU(scn.Ball, spatial.Velocity{
		V: mgl64.Vec3{scn.Cfg.Ball.Velocity.X, scn.Cfg.Ball.Velocity.Y, scn.Cfg.Ball.Velocity.Z},
	})
	return s
}
