package multibody

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// BodyOrigin returns the body origin location in ground.
func (sys *System) BodyOrigin(s *state.State, ix int) mgl64.Vec3 {
	return s.Q(ix).P
}

// BodyVelocity returns the body's spatial velocity measured at the body
// origin, ground frame.
func (sys *System) BodyVelocity(s *state.State, ix int) spatial.Velocity {
	return s.U(ix)
}

// VelocityAt returns the body's spatial velocity with the linear part
// taken at the world point p (the velocity of the body-fixed material
// point currently coincident with p).
func (sys *System) VelocityAt(s *state.State, ix int, p mgl64.Vec3) spatial.Velocity {
	return s.U(ix).Shift(p.Sub(s.Q(ix).P))
}

// FrameTransform returns a body-fixed frame's placement in ground.
func (sys *System) FrameTransform(s *state.State, ix int, frame spatial.Transform) spatial.Transform {
	return s.Q(ix).Compose(frame)
}
