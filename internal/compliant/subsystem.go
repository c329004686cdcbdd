package compliant

import (
	"fmt"

	"github.com/sorenkar/compliant/internal/contact"
	"github.com/sorenkar/compliant/internal/multibody"
	"github.com/sorenkar/compliant/internal/spatial"
	"github.com/sorenkar/compliant/internal/state"
)

// DefaultTransitionVelocity is the friction transition velocity used
// until SetTransitionVelocity overrides it.
const DefaultTransitionVelocity = 0.01

// Subsystem is the compliant contact force accumulator. Configuration
// (tracker, matter system, generators, transition velocity) is fixed
// topology; per-snapshot results live as stage-gated caches in the
// State. The two regions are kept strictly apart: topology changes bump
// a revision counter that stales every derived cache.
type Subsystem struct {
	tracker contact.Tracker
	matter  *multibody.System

	transitionVelocity   float64
	ooTransitionVelocity float64 // 1/transitionVelocity, cached

	reg      registry
	revision uint64

	forceCache  state.CacheIndex
	peCache     state.CacheIndex
	dissipatedZ state.ZIndex
	realized    bool
}

// New builds a subsystem over the given matter system and tracker. No
// generators are registered; adopt at least one (or a default) before
// realizing forces.
func New(matter *multibody.System, tracker contact.Tracker) *Subsystem {
	return &Subsystem{
		tracker:              tracker,
		matter:               matter,
		transitionVelocity:   DefaultTransitionVelocity,
		ooTransitionVelocity: 1 / DefaultTransitionVelocity,
	}
}

// Tracker exposes the contact tracking collaborator to generators.
func (sub *Subsystem) Tracker() contact.Tracker { return sub.tracker }

// RealizeTopology allocates the subsystem's cache entries and the
// dissipated-energy continuous variable in the state. Call once per
// state before any other realization.
func (sub *Subsystem) RealizeTopology(s *state.State) {
	// Forces (and the power they dissipate) need velocities; potential
	// energy can be produced from positions alone.
	sub.forceCache = s.AllocateLazy(state.StageVelocity)
	sub.peCache = s.AllocateLazy(state.StagePosition)
	sub.dissipatedZ = s.AllocateZ(0)
	sub.realized = true
}

// AdoptGenerator takes ownership of a generator, replacing (and
// disposing) any generator already registered for its contact type.
// Registry changes invalidate all derived caches.
func (sub *Subsystem) AdoptGenerator(g Generator) error {
	if g == nil {
		return fmt.Errorf("compliant: cannot adopt a nil generator")
	}
	g.Bind(sub)
	sub.revision++
	if old := sub.reg.adopt(g); old != nil {
		dispose(old)
	}
	return nil
}

// AdoptDefaultGenerator takes ownership of the fallback generator used
// for unregistered contact types; nil is legal and means "no fallback".
func (sub *Subsystem) AdoptDefaultGenerator(g Generator) {
	if g != nil {
		g.Bind(sub)
	}
	sub.revision++
	if old := sub.reg.adoptDefault(g); old != nil {
		dispose(old)
	}
}

// HasGenerator reports whether a generator is registered for the exact
// type (the default does not count).
func (sub *Subsystem) HasGenerator(typeID contact.TypeID) bool { return sub.reg.has(typeID) }

// HasDefaultGenerator reports whether a fallback is registered.
func (sub *Subsystem) HasDefaultGenerator() bool { return sub.reg.hasDefault() }

// Close disposes every adopted generator.
func (sub *Subsystem) Close() error {
	for _, g := range sub.reg.generators {
		dispose(g)
	}
	dispose(sub.reg.fallback)
	sub.reg = registry{}
	sub.revision++
	return nil
}

// SetTransitionVelocity sets the friction transition velocity; it must
// be positive. The reciprocal is cached alongside, and cached forces
// are invalidated since friction curves shift with it.
func (sub *Subsystem) SetTransitionVelocity(v float64) error {
	if v <= 0 {
		return fmt.Errorf("compliant: transition velocity must be positive, got %g", v)
	}
	sub.transitionVelocity = v
	sub.ooTransitionVelocity = 1 / v
	sub.revision++
	return nil
}

func (sub *Subsystem) TransitionVelocity() float64   { return sub.transitionVelocity }
func (sub *Subsystem) OOTransitionVelocity() float64 { return sub.ooTransitionVelocity }

// DissipatedEnergy reads the energy dissipated by contacts so far.
func (sub *Subsystem) DissipatedEnergy(s *state.State) float64 {
	return s.Z(sub.dissipatedZ)
}

// SetDissipatedEnergy seeds or resets the dissipated-energy variable;
// negative values are rejected.
func (sub *Subsystem) SetDissipatedEnergy(s *state.State, energy float64) error {
	if energy < 0 {
		return fmt.Errorf("compliant: dissipated energy must be nonnegative, got %g", energy)
	}
	s.SetZ(sub.dissipatedZ, energy)
	return nil
}

// RealizeDynamics is the dynamics-stage pass: it ensures the force
// cache is valid, shifts each cached contact force from its center of
// pressure to the two body origins, and adds the action/reaction pair
// into the shared force array.
func (sub *Subsystem) RealizeDynamics(s *state.State, forces multibody.ForceArray) error {
	if !sub.realized {
		return ErrNotRealized
	}
	if err := sub.ensureForceCacheValid(s); err != nil {
		return err
	}
	cache, err := state.LazyValue[[]ContactForce](s, sub.forceCache)
	if err != nil {
		return err
	}
	snap, err := sub.tracker.ActiveContacts(s)
	if err != nil {
		return err
	}

	for i := range cache {
		cf := &cache[i]
		c, ok := snap.ByID(cf.ContactID)
		if !ok {
			return fmt.Errorf("compliant: cached contact %d no longer active", cf.ContactID)
		}
		surf1, err := sub.tracker.Surface(c.Surface1)
		if err != nil {
			return err
		}
		surf2, err := sub.tracker.Surface(c.Surface2)
		if err != nil {
			return err
		}

		// Shift the point force to each body origin: force unchanged,
		// torque gains r x F. Surface 1 gets the reaction.
		r1 := cf.CenterOfPressure.Sub(sub.matter.BodyOrigin(s, surf1.Body))
		r2 := cf.CenterOfPressure.Sub(sub.matter.BodyOrigin(s, surf2.Body))
		forces.Add(surf2.Body, cf.ForceOnSurface2.Shift(r2))
		forces.Add(surf1.Body, cf.ForceOnSurface2.Neg().Shift(r1))
	}
	return nil
}

// RealizeAcceleration is the acceleration-stage pass: the summed power
// loss of all cached contact forces becomes the dissipated-energy
// variable's time derivative for this instant.
func (sub *Subsystem) RealizeAcceleration(s *state.State) error {
	if !sub.realized {
		return ErrNotRealized
	}
	if err := sub.ensureForceCacheValid(s); err != nil {
		return err
	}
	cache, err := state.LazyValue[[]ContactForce](s, sub.forceCache)
	if err != nil {
		return err
	}
	power := 0.0
	for i := range cache {
		power += cache[i].PowerLoss
	}
	s.SetZDot(sub.dissipatedZ, power)
	return nil
}

// PotentialEnergy returns the elastic energy stored in all active
// contacts. Callable from position stage on; before velocities exist it
// evaluates generators at zero relative velocity and keeps only the
// energy, without touching the force cache.
func (sub *Subsystem) PotentialEnergy(s *state.State) (float64, error) {
	if !sub.realized {
		return 0, ErrNotRealized
	}
	if err := sub.ensurePotentialEnergyCacheValid(s); err != nil {
		return 0, err
	}
	return state.LazyValue[float64](s, sub.peCache)
}

// ContactForces exposes the force cache, ensuring it first. Requires
// velocity-stage realization.
func (sub *Subsystem) ContactForces(s *state.State) ([]ContactForce, error) {
	if !sub.realized {
		return nil, ErrNotRealized
	}
	if err := sub.ensureForceCacheValid(s); err != nil {
		return nil, err
	}
	return state.LazyValue[[]ContactForce](s, sub.forceCache)
}

func (sub *Subsystem) ensureForceCacheValid(s *state.State) error {
	return state.EnsureLazy(s, sub.forceCache, sub.revision, func() ([]ContactForce, error) {
		snap, err := sub.tracker.ActiveContacts(s)
		if err != nil {
			return nil, err
		}
		forces := make([]ContactForce, 0, snap.Len())
		// Tracker order, for reproducibility.
		for i := 0; i < snap.Len(); i++ {
			c := snap.At(i)
			cf, ok, err := sub.evalContact(s, c, false)
			if err != nil {
				return nil, err
			}
			if ok {
				forces = append(forces, cf)
			}
		}
		return forces, nil
	})
}

func (sub *Subsystem) ensurePotentialEnergyCacheValid(s *state.State) error {
	return state.EnsureLazy(s, sub.peCache, sub.revision, func() (float64, error) {
		// With velocities realized the force cache already carries the
		// per-contact energies; just sum them.
		if s.Stage() >= state.StageVelocity {
			if err := sub.ensureForceCacheValid(s); err != nil {
				return 0, err
			}
			cache, err := state.LazyValue[[]ContactForce](s, sub.forceCache)
			if err != nil {
				return 0, err
			}
			pe := 0.0
			for i := range cache {
				pe += cache[i].PotentialEnergy
			}
			return pe, nil
		}

		// Position stage only: evaluate each contact at zero relative
		// velocity and keep nothing but the energy.
		snap, err := sub.tracker.ActiveContacts(s)
		if err != nil {
			return 0, err
		}
		pe := 0.0
		for i := 0; i < snap.Len(); i++ {
			cf, ok, err := sub.evalContact(s, snap.At(i), true)
			if err != nil {
				return 0, err
			}
			if ok {
				pe += cf.PotentialEnergy
			}
		}
		return pe, nil
	})
}

// evalContact dispatches one contact to its generator. With zeroVel set
// the surface velocities are clamped to zero instead of being read from
// the state, which keeps this callable at position stage.
func (sub *Subsystem) evalContact(s *state.State, c *contact.Contact, zeroVel bool) (ContactForce, bool, error) {
	gen, err := sub.reg.lookup(c.Type)
	if err != nil {
		return ContactForce{}, false, fmt.Errorf("contact %d: %w", c.ID, err)
	}
	var v1, v2 spatial.Velocity
	if !zeroVel {
		surf1, err := sub.tracker.Surface(c.Surface1)
		if err != nil {
			return ContactForce{}, false, err
		}
		surf2, err := sub.tracker.Surface(c.Surface2)
		if err != nil {
			return ContactForce{}, false, err
		}
		v1 = sub.matter.VelocityAt(s, surf1.Body, c.Origin)
		v2 = sub.matter.VelocityAt(s, surf2.Body, c.Origin)
	}
	return gen.Force(s, c, v1, v2)
}
