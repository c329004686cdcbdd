package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/state"
)

// BallTracker tracks a single sphere against the ground halfspace z=0.
// Surface 0 is the ground plane, surface 1 the ball; the one contact it
// ever reports keeps a stable id so force caches survive across steps.
type BallTracker struct {
	surfaces []contact.Surface
	ballBody int
	radius   float64
}

const ballContactID contact.ID = 1

func NewBallTracker(groundBody, ballBody int, radius float64, ground, ball contact.Material) *BallTracker {
	return &BallTracker{
		surfaces: []contact.Surface{
			{Body: groundBody, Material: ground},
			{Body: ballBody, Material: ball},
		},
		ballBody: ballBody,
		radius:   radius,
	}
}

func (t *BallTracker) ActiveContacts(s *state.State) (*contact.Snapshot, error) {
	center := s.Q(t.ballBody).P
	depth := t.radius - center.Z()
	if depth <= 0 {
		return contact.NewSnapshot(nil), nil
	}
	// Undeformed ball bottom at center.z - radius, plane at 0; the
	// contact origin is midway between them.
	c := contact.Contact{
		ID:       ballContactID,
		Type:     contact.TypeCircularPoint,
		Surface1: 0,
		Surface2: 1,
		Depth:    depth,
		Normal:   mgl64.Vec3{0, 0, 1},
		Origin:   mgl64.Vec3{center.X(), center.Y(), -depth / 2},
		Radius:   t.radius,
	}
	return contact.NewSnapshot([]contact.Contact{c}), nil
}

func (t *BallTracker) Surface(ix contact.SurfaceIndex) (*contact.Surface, error) {
	if ix < 0 || int(ix) >= len(t.surfaces) {
		return nil, fmt.Errorf("sim: no surface at index %d", ix)
	}
	return &t.surfaces[ix], nil
}

func (t *BallTracker) NumSurfaces() int { return len(t.surfaces) }
