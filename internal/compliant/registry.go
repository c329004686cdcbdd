package compliant

import (
	"fmt"
	"io"

	"github.com/sorenkar/compliant/internal/contact"
)

// registry owns the force generators, keyed by contact type, plus one
// optional fallback for unregistered types. Exactly one generator per
// type: adopting a duplicate replaces (and disposes) the previous one.
type registry struct {
	generators map[contact.TypeID]Generator
	fallback   Generator
}

// adopt installs g for its contact type and returns the generator it
// replaced, if any.
func (r *registry) adopt(g Generator) (replaced Generator) {
	if r.generators == nil {
		r.generators = make(map[contact.TypeID]Generator)
	}
	replaced = r.generators[g.Type()]
	r.generators[g.Type()] = g
	return replaced
}

// adoptDefault installs the fallback generator; nil is legal and means
// "no fallback". Returns the previous fallback, if any.
func (r *registry) adoptDefault(g Generator) (replaced Generator) {
	replaced = r.fallback
	r.fallback = g
	return replaced
}

func (r *registry) has(typeID contact.TypeID) bool {
	_, ok := r.generators[typeID]
	return ok
}

func (r *registry) hasDefault() bool { return r.fallback != nil }

// lookup returns the generator for the type, falling back to the
// default. No match and no default is a configuration error.
func (r *registry) lookup(typeID contact.TypeID) (Generator, error) {
	if g, ok := r.generators[typeID]; ok {
		return g, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoGenerator, typeID)
}

// dispose releases a replaced or discarded generator. Generators that
// hold resources implement io.Closer.
func dispose(g Generator) {
	if g == nil {
		return
	}
	if c, ok := g.(io.Closer); ok {
		c.Close()
	}
}
