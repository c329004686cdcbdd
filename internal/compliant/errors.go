package compliant

import "errors"

var (
	// ErrNoGenerator indicates a contact type with neither a registered
	// generator nor a default. The system does not guess a physics
	// model; register a default or cover every type the tracker emits.
	ErrNoGenerator = errors.New("compliant: no force generator registered for contact type")

	// ErrNotRealized indicates use of the subsystem before
	// RealizeTopology allocated its state resources.
	ErrNotRealized = errors.New("compliant: subsystem topology not realized")
)
