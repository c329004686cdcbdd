// Package state holds the realization state of one multibody simulation
// snapshot: body kinematics, continuous (Z) variables with their time
// derivatives, and stage-gated lazy cache entries.
//
// The configuration of a simulation (bodies, surfaces, registered force
// generators) is fixed after setup; everything here is the mutable side.
// Cache entries are allocated against a required [Stage] and are either
// fully valid or entirely absent: [EnsureLazy] computes an entry at most
// once per realization pass and fails loudly when the state has not been
// advanced far enough.
package state

import (
	"fmt"

	"github.com/sorenkar/compliant/internal/spatial"
)

// ZIndex identifies one continuous state variable.
type ZIndex int

// CacheIndex identifies one lazy cache entry.
type CacheIndex int

type cacheSlot struct {
	required Stage
	valid    bool
	revision uint64
	value    any
}

// State is one simulation snapshot. It is not safe for concurrent use.
type State struct {
	time  float64
	stage Stage

	q []spatial.Transform // body poses in ground
	u []spatial.Velocity  // body spatial velocities in ground

	z    []float64
	zdot []float64

	caches []cacheSlot
}

// New returns an empty state with kinematics slots for numBodies bodies.
func New(numBodies int) *State {
	q := make([]spatial.Transform, numBodies)
	for i := range q {
		q[i] = spatial.Identity()
	}
	return &State{
		q: q,
		u: make([]spatial.Velocity, numBodies),
	}
}

func (s *State) NumBodies() int { return len(s.q) }
func (s *State) Stage() Stage   { return s.stage }
func (s *State) Time() float64  { return s.time }

// Advance marks the state realized up to the given stage. Moving
// backwards is done with Invalidate, never with Advance.
func (s *State) Advance(to Stage) {
	if to > s.stage {
		s.stage = to
	}
}

// Invalidate rolls the state back below the given stage and clears every
// cache entry that requires it or anything later.
func (s *State) Invalidate(st Stage) {
	if s.stage >= st {
		s.stage = st - 1
	}
	for i := range s.caches {
		if s.caches[i].required >= st {
			s.caches[i].valid = false
			s.caches[i].value = nil
		}
	}
}

// SetTime sets the simulation time, rolling back to below Time stage.
func (s *State) SetTime(t float64) {
	s.Invalidate(StageTime)
	s.time = t
}

// SetQ sets a body's pose, invalidating Position stage and above.
func (s *State) SetQ(body int, q spatial.Transform) {
	s.Invalidate(StagePosition)
	s.q[body] = q
}

// SetU sets a body's spatial velocity, invalidating Velocity stage and
// above.
func (s *State) SetU(body int, u spatial.Velocity) {
	s.Invalidate(StageVelocity)
	s.u[body] = u
}

func (s *State) Q(body int) spatial.Transform { return s.q[body] }
func (s *State) U(body int) spatial.Velocity  { return s.u[body] }

// AllocateZ adds a continuous state variable with the given initial
// value and returns its index.
func (s *State) AllocateZ(init float64) ZIndex {
	s.z = append(s.z, init)
	s.zdot = append(s.zdot, 0)
	return ZIndex(len(s.z) - 1)
}

func (s *State) Z(ix ZIndex) float64    { return s.z[ix] }
func (s *State) ZDot(ix ZIndex) float64 { return s.zdot[ix] }

// SetZ assigns a continuous variable, invalidating Dynamics stage and
// above (derived forces may depend on it).
func (s *State) SetZ(ix ZIndex, v float64) {
	s.Invalidate(StageDynamics)
	s.z[ix] = v
}

// SetZDot records a continuous variable's time derivative for the
// current instant. Written during acceleration realization; it does not
// invalidate anything.
func (s *State) SetZDot(ix ZIndex, v float64) {
	s.zdot[ix] = v
}

// IntegrateZ advances every continuous variable by dt using its recorded
// derivative (explicit Euler; the surrounding stepper chooses dt).
func (s *State) IntegrateZ(dt float64) {
	s.Invalidate(StageDynamics)
	for i := range s.z {
		s.z[i] += dt * s.zdot[i]
	}
}

// AllocateLazy adds a cache entry that may only be computed once the
// state has reached the required stage.
func (s *State) AllocateLazy(required Stage) CacheIndex {
	s.caches = append(s.caches, cacheSlot{required: required})
	return CacheIndex(len(s.caches) - 1)
}

// EnsureLazy validates the entry at ix, computing it if it is absent or
// was filled under a different topology revision. Computing with the
// state below the entry's required stage is a stage-ordering violation
// and returns ErrStage rather than degrading silently. A failed
// compute leaves the entry absent; partial results never persist.
func EnsureLazy[T any](s *State, ix CacheIndex, revision uint64, compute func() (T, error)) error {
	slot := &s.caches[ix]
	if slot.valid && slot.revision == revision {
		return nil
	}
	if s.stage < slot.required {
		return fmt.Errorf("%w: cache requires %s stage, state is at %s",
			ErrStage, slot.required, s.stage)
	}
	slot.valid = false
	slot.value = nil
	v, err := compute()
	if err != nil {
		return err
	}
	slot.value = v
	slot.revision = revision
	slot.valid = true
	return nil
}

// LazyValue reads a previously ensured cache entry.
func LazyValue[T any](s *State, ix CacheIndex) (T, error) {
	var zero T
	slot := &s.caches[ix]
	if !slot.valid {
		return zero, fmt.Errorf("%w: entry %d read before EnsureLazy", ErrCacheInvalid, ix)
	}
	v, ok := slot.value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: entry %d holds %T", ErrCacheInvalid, ix, slot.value)
	}
	return v, nil
}

// LazyValid reports whether the entry is currently valid for the given
// topology revision.
func LazyValid(s *State, ix CacheIndex, revision uint64) bool {
	slot := &s.caches[ix]
	return slot.valid && slot.revision == revision
}
