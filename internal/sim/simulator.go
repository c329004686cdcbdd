package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/multibody"
	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// Simulator steps a scenario with semi-implicit Euler, running the full
// stage pipeline each step so every contact force comes out of the
// subsystem's caches.
type Simulator struct {
	scn    *Scenario
	forces multibody.ForceArray
}

func New(scn *Scenario) *Simulator {
	return &Simulator{
		scn:    scn,
		forces: multibody.NewForceArray(scn.System.NumBodies()),
	}
}

// Sample is one recorded instant of the run.
type Sample struct {
	Time   float64
	Height float64 // ball center above ground
	Depth  float64 // penetration, 0 when airborne

	Kinetic       float64
	Gravitational float64
	ContactPE     float64
	Dissipated    float64
}

// Total is the full energy book: everything stored plus everything
// already written off. Constant up to integration error.
func (smp Sample) Total() float64 {
	return smp.Kinetic + smp.Gravitational + smp.ContactPE + smp.Dissipated
}

// Result is the recorded history of one run.
type Result struct {
	Samples  []Sample
	Steps    int
	MaxDepth float64
}

// Final returns the last recorded sample.
func (r *Result) Final() Sample {
	return r.Samples[len(r.Samples)-1]
}

// Realize advances the state through every stage, filling the shared
// force array from the contact subsystem on the way.
func (sim *Simulator) Realize(s *state.State) error {
	s.Advance(state.StageTime)
	s.Advance(state.StagePosition)
	s.Advance(state.StageVelocity)

	sim.forces.Clear()
	if err := sim.scn.Sub.RealizeDynamics(s, sim.forces); err != nil {
		return err
	}
	s.Advance(state.StageDynamics)

	if err := sim.scn.Sub.RealizeAcceleration(s); err != nil {
		return err
	}
	s.Advance(state.StageAcceleration)
	return nil
}

// Step realizes the state and advances it by dt. Velocities update
// before positions; the dissipated-energy variable integrates with the
// derivative recorded at acceleration stage.
func (sim *Simulator) Step(s *state.State, dt float64) error {
	if err := sim.Realize(s); err != nil {
		return err
	}

	ball := sim.scn.Ball
	body := sim.scn.System.Body(ball)
	f := sim.forces[ball]

	acc := f.F.Mul(1 / body.Mass).Sub(mgl64.Vec3{0, 0, sim.scn.Cfg.Gravity})
	u := s.U(ball)
	newV := u.V.Add(acc.Mul(dt))
	newW := u.W.Add(f.T.Mul(dt / body.Inertia.At(0, 0)))

	q := s.Q(ball)
	newP := q.P.Add(newV.Mul(dt))

	s.IntegrateZ(dt)
	s.SetU(ball, spatial.Velocity{W: newW, V: newV})
	// A uniform sphere's contact does not depend on orientation, so the
	// rotation matrix stays put while the spin still evolves.
	s.SetQ(ball, spatial.Transform{R: q.R, P: newP})
	s.SetTime(s.Time() + dt)
	return nil
}

// Measure realizes the state and reads off one sample.
func (sim *Simulator) Measure(s *state.State) (Sample, error) {
	if err := sim.Realize(s); err != nil {
		return Sample{}, err
	}

	ball := sim.scn.Ball
	body := sim.scn.System.Body(ball)
	u := s.U(ball)
	center := s.Q(ball).P

	pe, err := sim.scn.Sub.PotentialEnergy(s)
	if err != nil {
		return Sample{}, err
	}

	kin := 0.5*body.Mass*u.V.Dot(u.V) + 0.5*body.Inertia.At(0, 0)*u.W.Dot(u.W)
	return Sample{
		Time:          s.Time(),
		Height:        center.Z(),
		Depth:         math.Max(0, sim.scn.Cfg.Ball.Radius-center.Z()),
		Kinetic:       kin,
		Gravitational: body.Mass * sim.scn.Cfg.Gravity * center.Z(),
		ContactPE:     pe,
		Dissipated:    sim.scn.Sub.DissipatedEnergy(s),
	}, nil
}

// Run steps the scenario for its configured duration, sampling every
// step.
func (sim *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := sim.scn.Cfg
	steps := int(cfg.Duration/cfg.Dt + 0.5)

	s := sim.scn.InitialState()
	result := &Result{Samples: make([]Sample, 0, steps+1)}

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		smp, err := sim.Measure(s)
		if err != nil {
			return result, fmt.Errorf("step %d: %w", i, err)
		}
		result.Samples = append(result.Samples, smp)
		result.MaxDepth = math.Max(result.MaxDepth, smp.Depth)

		if i == steps {
			break
		}
		if err := sim.Step(s, cfg.Dt); err != nil {
			return result, fmt.Errorf("step %d: %w", i, err)
		}
		result.Steps++
	}
	return result, nil
}
