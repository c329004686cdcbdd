// Package multibody is the minimal body-kinematics collaborator the
// contact layer needs: rigid bodies whose poses and spatial velocities
// live in a state snapshot, and the shared per-body force accumulation
// array filled during a dynamics pass.
package multibody

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Body is one rigid body known to the solver. Ground (or any anchored
// body) is marked Static and is never integrated.
type Body struct {
	Name    string
	Mass    float64
	Inertia mgl64.Mat3 // about the body origin, body frame
	Static  bool
}

// System is the fixed body roster. Kinematics live in the State, not
// here; the roster is immutable once simulation starts.
type System struct {
	bodies []Body
}

func NewSystem() *System {
	return &System{}
}

// AddBody appends a body and returns its index.
func (sys *System) AddBody(b Body) int {
	sys.bodies = append(sys.bodies, b)
	return len(sys.bodies) - 1
}

func (sys *System) NumBodies() int    { return len(sys.bodies) }
func (sys *System) Body(ix int) *Body { return &sys.bodies[ix] }
