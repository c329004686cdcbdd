package state

// Stage is an ordered checkpoint in a State's realization lifecycle.
// Cached quantities may only be computed once the state has reached the
// stage they require.
type Stage int

const (
	StageEmpty Stage = iota
	StageTopology
	StageTime
	StagePosition
	StageVelocity
	StageDynamics
	StageAcceleration
)

func (st Stage) String() string {
	switch st {
	case StageEmpty:
		return "empty"
	case StageTopology:
		return "topology"
	case StageTime:
		return "time"
	case StagePosition:
		return "position"
	case StageVelocity:
		return "velocity"
	case StageDynamics:
		return "dynamics"
	case StageAcceleration:
		return "acceleration"
	default:
		return "unknown"
	}
}
