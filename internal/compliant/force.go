package compliant

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/spatial"
)

// ContactForce is the result of evaluating one contact. The spatial
// force applies to surface 2 at the center of pressure; surface 1
// receives the negation at the same point. PotentialEnergy is the
// conservative (elastic) part only; PowerLoss is the dissipative and
// friction parts only, so stored elastic energy is not double counted.
type ContactForce struct {
	ContactID        contact.ID
	CenterOfPressure mgl64.Vec3 // world frame
	ForceOnSurface2  spatial.Force
	PotentialEnergy  float64
	PowerLoss        float64
}
