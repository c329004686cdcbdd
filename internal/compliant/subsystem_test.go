package compliant

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/multibody"
	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// ballScene is a sphere resting on a ground plane with one active
// circular point contact between them.
type ballScene struct {
	matter  *multibody.System
	tracker *contact.FixedTracker
	sub     *Subsystem
	s       *state.State
	ground  int
	ball    int
}

func newBallScene(t *testing.T, depth float64, mat1, mat2 contact.Material) *ballScene {
	t.Helper()

	matter := multibody.NewSystem()
	ground := matter.AddBody(multibody.Body{Name: "ground", Static: true})
	ball := matter.AddBody(multibody.Body{Name: "ball", Mass: 1, Inertia: mgl64.Ident3()})

	tr := &contact.FixedTracker{
		Surfaces: []contact.Surface{
			{Body: ground, Placement: spatial.Identity(), Material: mat1},
			{Body: ball, Placement: spatial.Identity(), Material: mat2},
		},
		Contacts: []contact.Contact{{
			ID: 1, Type: contact.TypeCircularPoint,
			Surface1: 0, Surface2: 1,
			Depth:  depth,
			Normal: mgl64.Vec3{0, 0, 1},
			Origin: mgl64.Vec3{0, 0, -depth / 2},
			Radius: 1,
		}},
	}

	sub := New(matter, tr)
	if err := sub.AdoptGenerator(NewHertzCircular()); err != nil {
		t.Fatal(err)
	}

	s := state.New(matter.NumBodies())
	sub.RealizeTopology(s)
	s.SetQ(ball, spatial.Translation(mgl64.Vec3{0, 0, 1 - depth}))

	return &ballScene{matter: matter, tracker: tr, sub: sub, s: s, ground: ground, ball: ball}
}

func TestRealizeDynamicsActionReaction(t *testing.T) {
	mat := contact.MustMaterial(1e6, 0.2, 0.5, 0.3, 0)
	sc := newBallScene(t, 0.01, mat, mat)
	sc.s.Advance(state.StageVelocity)

	forces := multibody.NewForceArray(sc.matter.NumBodies())
	if err := sc.sub.RealizeDynamics(sc.s, forces); err != nil {
		t.Fatal(err)
	}

	// The pair must cancel exactly.
	net := forces[sc.ground].F.Add(forces[sc.ball].F)
	if net.Len() > 1e-9 {
		t.Errorf("net contact force = %v, want zero", net)
	}
	// The ball is pushed up, the ground down.
	if forces[sc.ball].F.Z() <= 0 {
		t.Errorf("force on ball = %v, want positive z", forces[sc.ball].F)
	}
	if forces[sc.ground].F.Z() >= 0 {
		t.Errorf("force on ground = %v, want negative z", forces[sc.ground].F)
	}
}

func TestRealizeDynamicsAddsToExistingForces(t *testing.T) {
	mat := contact.MustMaterial(1e6, 0, 0, 0, 0)
	sc := newBallScene(t, 0.01, mat, mat)
	sc.s.Advance(state.StageVelocity)

	forces := multibody.NewForceArray(sc.matter.NumBodies())
	gravity := spatial.Force{F: mgl64.Vec3{0, 0, -9.81}}
	forces.Add(sc.ball, gravity) // another contributor got there first

	if err := sc.sub.RealizeDynamics(sc.s, forces); err != nil {
		t.Fatal(err)
	}
	withoutGravity := forces[sc.ball].F.Sub(gravity.F)
	if withoutGravity.Z() <= 0 {
		t.Error("contact contribution was not additive")
	}
}

func TestRealizeDynamicsRequiresVelocityStage(t *testing.T) {
	mat := contact.MustMaterial(1e6, 0, 0, 0, 0)
	sc := newBallScene(t, 0.01, mat, mat)
	sc.s.Advance(state.StagePosition)

	forces := multibody.NewForceArray(sc.matter.NumBodies())
	err := sc.sub.RealizeDynamics(sc.s, forces)
	if !errors.Is(err, state.ErrStage) {
		t.Errorf("expected ErrStage below velocity stage, got %v", err)
	}
}

func TestRealizeAccelerationSetsPowerDerivative(t *testing.T) {
	mat := contact.MustMaterial(1e6, 0.5, 0, 0, 0)
	sc := newBallScene(t, 0.01, mat, mat)
	// Ball sinking at 1 m/s: penetration rate positive, power loss
	// positive.
	sc.s.SetU(sc.ball, spatial.Velocity{V: mgl64.Vec3{0, 0, -1}})
	sc.s.Advance(state.StageVelocity)

	if err := sc.sub.RealizeAcceleration(sc.s); err != nil {
		t.Fatal(err)
	}
	forces, err := sc.sub.ContactForces(sc.s)
	if err != nil {
		t.Fatal(err)
	}
	if len(forces) != 1 {
		t.Fatalf("got %d forces, want 1", len(forces))
	}
	if forces[0].PowerLoss <= 0 {
		t.Errorf("power loss = %v, want positive while approaching", forces[0].PowerLoss)
	}
}

func TestPotentialEnergyPositionStageMatchesVelocityStage(t *testing.T) {
	mat1 := contact.MustMaterial(1e6, 0.3, 0.5, 0.3, 0.01)
	mat2 := contact.MustMaterial(4e5, 0.1, 0.7, 0.4, 0)

	// Position stage: forces cannot be computed, PE comes from the
	// zero-velocity path.
	a := newBallScene(t, 0.02, mat1, mat2)
	a.s.Advance(state.StagePosition)
	peA, err := a.sub.PotentialEnergy(a.s)
	if err != nil {
		t.Fatal(err)
	}
	if state.LazyValid(a.s, a.sub.forceCache, a.sub.revision) {
		t.Error("position-stage PE query filled the force cache")
	}

	// Velocity stage with zero velocities: PE comes from the force
	// cache. Both paths must agree exactly.
	b := newBallScene(t, 0.02, mat1, mat2)
	b.s.Advance(state.StageVelocity)
	peB, err := b.sub.PotentialEnergy(b.s)
	if err != nil {
		t.Fatal(err)
	}
	if !state.LazyValid(b.s, b.sub.forceCache, b.sub.revision) {
		t.Error("velocity-stage PE query should realize the force cache")
	}

	if math.Abs(peA-peB) > 1e-12 {
		t.Errorf("PE paths disagree: position %v vs velocity %v", peA, peB)
	}
	if peA <= 0 {
		t.Errorf("PE = %v, want positive for positive depth", peA)
	}
}

func TestPotentialEnergyRequiresPositionStage(t *testing.T) {
	mat := contact.MustMaterial(1e6, 0, 0, 0, 0)
	sc := newBallScene(t, 0.01, mat, mat)
	// Still below position stage.
	if _, err := sc.sub.PotentialEnergy(sc.s); !errors.Is(err, state.ErrStage) {
		t.Errorf("expected ErrStage, got %v", err)
	}
}

func TestDissipatedEnergyAccessors(t *testing.T) {
	mat := contact.MustMaterial(1e6, 0, 0, 0, 0)
	sc := newBallScene(t, 0.01, mat, mat)

	if err := sc.sub.SetDissipatedEnergy(sc.s, -1); err == nil {
		t.Error("negative dissipated energy must be rejected")
	}
	if err := sc.sub.SetDissipatedEnergy(sc.s, 5); err != nil {
		t.Fatal(err)
	}
	if got := sc.sub.DissipatedEnergy(sc.s); got != 5 {
		t.Errorf("DissipatedEnergy = %v, want 5", got)
	}
}

func TestTransitionVelocityAccessors(t *testing.T) {
	sub := newTestSubsystem(&contact.FixedTracker{})

	if err := sub.SetTransitionVelocity(0); err == nil {
		t.Error("zero transition velocity must be rejected")
	}
	if err := sub.SetTransitionVelocity(-0.5); err == nil {
		t.Error("negative transition velocity must be rejected")
	}

	if err := sub.SetTransitionVelocity(0.04); err != nil {
		t.Fatal(err)
	}
	if got := sub.TransitionVelocity(); got != 0.04 {
		t.Errorf("TransitionVelocity = %v, want 0.04", got)
	}
	if prod := sub.TransitionVelocity() * sub.OOTransitionVelocity(); math.Abs(prod-1) > 1e-15 {
		t.Errorf("value * reciprocal = %v, want 1", prod)
	}
}

func TestMissingGeneratorSurfacesWhenItMatters(t *testing.T) {
	mat := contact.MustMaterial(1e6, 0, 0, 0, 0)
	sc := newBallScene(t, 0.01, mat, mat)
	sc.tracker.Contacts[0].Type = "exotic"
	sc.s.Advance(state.StageVelocity)

	_, err := sc.sub.ContactForces(sc.s)
	if !errors.Is(err, ErrNoGenerator) {
		t.Errorf("expected ErrNoGenerator, got %v", err)
	}

	// A default makes the same lookup succeed.
	sc.sub.AdoptDefaultGenerator(NewDoNothing(""))
	if _, err := sc.sub.ContactForces(sc.s); err != nil {
		t.Errorf("with a default registered: %v", err)
	}
}

func TestUnrealizedSubsystem(t *testing.T) {
	sub := newTestSubsystem(&contact.FixedTracker{})
	s := state.New(0)
	s.Advance(state.StageVelocity)

	if err := sub.RealizeDynamics(s, multibody.NewForceArray(0)); !errors.Is(err, ErrNotRealized) {
		t.Errorf("expected ErrNotRealized, got %v", err)
	}
	if _, err := sub.PotentialEnergy(s); !errors.Is(err, ErrNotRealized) {
		t.Errorf("expected ErrNotRealized, got %v", err)
	}
}
