package compliant

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// significantSpeed is the slip speed below which tangential motion is
// treated as sticking, so the friction direction is never computed from
// a vanishing slip vector.
const significantSpeed = 1e-14

// HertzCircular resolves circular point contacts with a Hertz elastic
// normal force, a Hunt-Crossley dissipation term and a Stribeck friction
// model. Material properties come from the tracker's surfaces; the
// friction transition velocity comes from the owning subsystem.
type HertzCircular struct {
	sub *Subsystem
}

func NewHertzCircular() *HertzCircular {
	return &HertzCircular{}
}

func (g *HertzCircular) Type() contact.TypeID { return contact.TypeCircularPoint }

func (g *HertzCircular) Bind(sub *Subsystem) { g.sub = sub }

func (g *HertzCircular) Force(_ *state.State, c *contact.Contact, v1, v2 spatial.Velocity) (ContactForce, bool, error) {
	x := c.Depth
	if x <= 0 {
		// Tracked as touching, but nothing to push on.
		return ContactForce{}, false, nil
	}

	tracker := g.sub.Tracker()
	surf1, err := tracker.Surface(c.Surface1)
	if err != nil {
		return ContactForce{}, false, err
	}
	surf2, err := tracker.Surface(c.Surface2)
	if err != nil {
		return ContactForce{}, false, err
	}
	mat1, mat2 := surf1.Material, surf2.Material

	// Combine stiffness on the 2/3 power scale. s1 is the fraction of
	// the apparent deformation absorbed by surface 1: if surface 2 is
	// much stiffer, surface 1 does most of the squishing.
	k1, k2 := mat1.Stiffness23(), mat2.Stiffness23()
	c1, c2 := mat1.Dissipation(), mat2.Dissipation()
	s1 := k2 / (k1 + k2)
	s2 := 1 - s1

	normal := c.Normal // surface1 -> surface2
	// The real contact point sits closer to the stiffer surface.
	contactPt := c.Origin.Add(normal.Mul(x * (0.5 - s1)))

	k := k1 * s1 // == k2*s2
	cc := c1*s1 + c2*s2
	fH := (4.0 / 3.0) * k * x * math.Sqrt(c.Radius*k*x) // conservative, >= 0

	// Relative velocity of the two material points at the contact point.
	offset := contactPt.Sub(c.Origin)
	vel := v1.Shift(offset).V.Sub(v2.Shift(offset).V)
	xdot := vel.Dot(normal) // penetration rate, signed
	velTangent := vel.Sub(normal.Mul(xdot))

	// Hunt-Crossley dissipation follows the sign of the penetration
	// rate: approaching adds force, separating subtracts.
	fHC := fH * 1.5 * cc * xdot
	fNormal := fH + fHC

	cf := ContactForce{
		ContactID:        c.ID,
		CenterOfPressure: contactPt,
	}

	// "Yanking": separating fast enough that dissipation would have the
	// surfaces pull on each other. Geometric contact persists but no
	// force is generated, and the stored elastic energy is written off.
	if fNormal <= 0 {
		return cf, true, nil
	}

	forceH := normal.Mul(fH)
	forceHC := normal.Mul(fHC)
	potentialEnergy := (2.0 / 5.0) * fH * x // Hertz integral
	powerHC := fHC * xdot                   // >= 0 while fNormal > 0

	var forceFriction mgl64.Vec3
	powerFriction := 0.0
	vslipSq := velTangent.Dot(velTangent)
	if vslipSq > significantSpeed*significantSpeed {
		vslip := math.Sqrt(vslipSq)
		us := combineFriction(mat1.StaticFriction(), mat2.StaticFriction())
		ud := combineFriction(mat1.DynamicFriction(), mat2.DynamicFriction())
		uv := combineFriction(mat1.ViscousFriction(), mat2.ViscousFriction())

		// Dimensionless slip speed; the viscous coefficient is scaled to
		// match the squeezed velocity axis.
		vtrans := g.sub.TransitionVelocity()
		v := vslip * g.sub.OOTransitionVelocity()
		mu := stribeck(us, ud, uv*vtrans, v)

		fFriction := fNormal * mu
		forceFriction = velTangent.Mul(fFriction / vslip)
		powerFriction = fFriction * vslip
	}

	cf.ForceOnSurface2 = spatial.Force{F: forceH.Add(forceHC).Add(forceFriction)}
	cf.PotentialEnergy = potentialEnergy
	// Conservative power is deliberately excluded: the elastic energy is
	// already booked as potential energy and comes back on the way out.
	cf.PowerLoss = powerHC + powerFriction
	return cf, true, nil
}
