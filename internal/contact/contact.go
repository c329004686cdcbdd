// Package contact defines the records exchanged with the contact
// tracking collaborator: surfaces with compliant materials, tracked
// overlaps between surface pairs, and the tracker interface itself.
// Geometry intersection is the tracker's business; this package only
// describes its results.
package contact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// SurfaceIndex identifies a contact surface within its tracker.
type SurfaceIndex int

// ID is a stable identifier for one tracked contact. It persists while
// the same pair of surfaces stays in contact.
type ID int64

// TypeID tags a contact with the kind of overlap geometry it carries,
// which selects the force model used to resolve it.
type TypeID string

// TypeCircularPoint is a point contact with a circular patch, e.g.
// sphere against sphere or sphere against plane.
const TypeCircularPoint TypeID = "circular_point"

// Contact reports one tracked overlap between two surfaces. Records are
// produced by a Tracker and are read-only downstream.
type Contact struct {
	ID       ID
	Type     TypeID
	Surface1 SurfaceIndex
	Surface2 SurfaceIndex

	// Depth is the signed penetration; <= 0 means the surfaces are
	// tracked as touching but produce no force.
	Depth float64

	// Normal is the unit contact normal pointing from surface1 toward
	// surface2, world frame.
	Normal mgl64.Vec3

	// Origin is the point midway between the two undeformed surfaces,
	// world frame.
	Origin mgl64.Vec3

	// Radius is the effective contact radius of the overlap.
	Radius float64
}

// Surface associates a rigid body, a placement on that body, and a
// compliant material.
type Surface struct {
	Body      int               // body index in the multibody system
	Placement spatial.Transform // surface frame in the body frame
	Material  Material
}

// Snapshot is the ordered set of contacts active in one state. Order is
// the tracker's reported order and is preserved for reproducibility.
type Snapshot struct {
	contacts []Contact
	byID     map[ID]int
}

func NewSnapshot(contacts []Contact) *Snapshot {
	byID := make(map[ID]int, len(contacts))
	for i := range contacts {
		byID[contacts[i].ID] = i
	}
	return &Snapshot{contacts: contacts, byID: byID}
}

func (s *Snapshot) Len() int { return len(s.contacts) }

func (s *Snapshot) At(i int) *Contact { return &s.contacts[i] }

func (s *Snapshot) ByID(id ID) (*Contact, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.contacts[i], true
}

// Tracker is the external contact-tracking collaborator. It owns the
// surface table and reports which pairs currently overlap.
type Tracker interface {
	// ActiveContacts returns the contacts active in the given state, in
	// a stable order with stable ids.
	ActiveContacts(s *state.State) (*Snapshot, error)

	// Surface returns the surface registered at the given index.
	Surface(ix SurfaceIndex) (*Surface, error)

	// NumSurfaces reports how many surfaces the tracker knows about.
	NumSurfaces() int
}
