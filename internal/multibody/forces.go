package multibody

import "github.com/sorenkar/compliant/internal/spatial"

// ForceArray accumulates per-body spatial forces at body origins over
// one dynamics pass. Several force-producing components share one array;
// contributions are additive and never overwrite.
type ForceArray []spatial.Force

func NewForceArray(numBodies int) ForceArray {
	return make(ForceArray, numBodies)
}

// Add merges a spatial force (applied at the body origin) into the
// body's slot.
func (fa ForceArray) Add(body int, f spatial.Force) {
	fa[body] = fa[body].Add(f)
}

// Clear zeroes the array for the next pass.
func (fa ForceArray) Clear() {
	for i := range fa {
		fa[i] = spatial.Force{}
	}
}
