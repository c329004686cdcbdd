package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform places one frame in another: R rotates, P translates.
type Transform struct {
	R mgl64.Mat3
	P mgl64.Vec3
}

func Identity() Transform {
	return Transform{R: mgl64.Ident3()}
}

// Translation returns a pure translation by p.
func Translation(p mgl64.Vec3) Transform {
	return Transform{R: mgl64.Ident3(), P: p}
}

// Apply maps a point expressed in the transform's frame into the parent.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.R.Mul3x1(p).Add(t.P)
}

// Compose returns the transform placing u's frame via t (t then u).
func (t Transform) Compose(u Transform) Transform {
	return Transform{R: t.R.Mul3(u.R), P: t.Apply(u.P)}
}

// Velocity is a spatial velocity: angular velocity W of a rigid body and
// the linear velocity V of the body-fixed material point currently at the
// measurement point.
type Velocity struct {
	W mgl64.Vec3
	V mgl64.Vec3
}

// Shift re-expresses the velocity at a measurement point offset by r from
// the current one (same rigid body). Angular is unchanged; linear gains
// W x r.
func (s Velocity) Shift(r mgl64.Vec3) Velocity {
	return Velocity{W: s.W, V: s.V.Add(s.W.Cross(r))}
}

func (s Velocity) Add(o Velocity) Velocity {
	return Velocity{W: s.W.Add(o.W), V: s.V.Add(o.V)}
}

func (s Velocity) Sub(o Velocity) Velocity {
	return Velocity{W: s.W.Sub(o.W), V: s.V.Sub(o.V)}
}

// Force is a spatial force: torque T and force F applied at a particular
// point.
type Force struct {
	T mgl64.Vec3
	F mgl64.Vec3
}

func (s Force) Add(o Force) Force {
	return Force{T: s.T.Add(o.T), F: s.F.Add(o.F)}
}

func (s Force) Neg() Force {
	return Force{T: s.T.Mul(-1), F: s.F.Mul(-1)}
}

// Shift moves the application point. r points from the new application
// point to the current one; the force is unchanged and the torque gains
// r x F.
func (s Force) Shift(r mgl64.Vec3) Force {
	return Force{T: s.T.Add(r.Cross(s.F)), F: s.F}
}
