package compliant

import (
	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// Generator computes the contact force for one kind of contact. A
// generator is adopted by exactly one Subsystem, which binds itself
// before first use.
type Generator interface {
	// Type reports the contact type this generator resolves.
	Type() contact.TypeID

	// Force evaluates one contact given each surface's spatial velocity
	// expressed at the contact origin. ok is false when the contact
	// produces no force record at all (e.g. nonpositive depth); a
	// zero-force record with ok true means geometric contact persists
	// without force this instant.
	Force(s *state.State, c *contact.Contact, v1, v2 spatial.Velocity) (cf ContactForce, ok bool, err error)

	// Bind attaches the generator to its owning subsystem. Called once
	// on adoption, before any Force call.
	Bind(sub *Subsystem)
}

// DoNothing is a generator that ignores every contact handed to it.
// Adopt it as the default to silently skip contact types that should
// not generate forces.
type DoNothing struct {
	typeID contact.TypeID
}

func NewDoNothing(typeID contact.TypeID) *DoNothing {
	return &DoNothing{typeID: typeID}
}

func (g *DoNothing) Type() contact.TypeID { return g.typeID }

func (g *DoNothing) Bind(*Subsystem) {}

func (g *DoNothing) Force(*state.State, *contact.Contact, spatial.Velocity, spatial.Velocity) (ContactForce, bool, error) {
	return ContactForce{}, false, nil
}
