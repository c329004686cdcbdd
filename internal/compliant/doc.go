// Package compliant computes penalty-based contact forces between pairs
// of overlapping surfaces and keeps the associated energy books.
//
// The [Subsystem] pulls active contacts from a [contact.Tracker],
// dispatches each to the [Generator] registered for its contact type,
// shifts the resulting point forces to body origins and accumulates them
// into the solver's shared [multibody.ForceArray]. Instantaneous power
// loss is integrated into a persistent dissipated-energy state variable.
//
//   - [HertzCircular]: Hertz elasticity + Hunt-Crossley dissipation +
//     Stribeck friction for circular point contacts
//   - [DoNothing]: ignores contacts of a given type
//
// Force and potential-energy results are stage-gated lazy caches on the
// [state.State]: forces require velocity-stage realization, potential
// energy only position stage (computed at zero relative velocity when
// velocities are not yet available). Replacing a generator invalidates
// everything derived from it.
package compliant
