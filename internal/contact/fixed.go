package contact

import (
	"fmt"

	"github.com/sorenkar/compliant/internal/state"
)

// FixedTracker reports a fixed contact set regardless of state. It
// stands in for a real tracker in tests and hand-built scenes.
type FixedTracker struct {
	Surfaces []Surface
	Contacts []Contact
}

func (t *FixedTracker) ActiveContacts(_ *state.State) (*Snapshot, error) {
	return NewSnapshot(t.Contacts), nil
}

func (t *FixedTracker) Surface(ix SurfaceIndex) (*Surface, error) {
	if ix < 0 || int(ix) >= len(t.Surfaces) {
		return nil, fmt.Errorf("contact: no surface at index %d", ix)
	}
	return &t.Surfaces[ix], nil
}

func (t *FixedTracker) NumSurfaces() int { return len(t.Surfaces) }
