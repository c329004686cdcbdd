package contact

import (
	"fmt"
	"math"
)

// Material holds the compliant properties of one contact surface. The
// stiffness is stored both as the raw modulus and as its 2/3 power,
// which is the form the Hertz combining rule works in.
type Material struct {
	stiffness   float64
	stiffness23 float64
	dissipation float64

	staticFriction  float64
	dynamicFriction float64
	viscousFriction float64
}

// NewMaterial validates and builds a material. Stiffness must be
// positive; dissipation and friction coefficients must be nonnegative,
// with static friction at least dynamic.
func NewMaterial(stiffness, dissipation, staticFriction, dynamicFriction, viscousFriction float64) (Material, error) {
	switch {
	case stiffness <= 0:
		return Material{}, fmt.Errorf("contact: stiffness must be positive, got %g", stiffness)
	case dissipation < 0:
		return Material{}, fmt.Errorf("contact: dissipation must be nonnegative, got %g", dissipation)
	case dynamicFriction < 0:
		return Material{}, fmt.Errorf("contact: dynamic friction must be nonnegative, got %g", dynamicFriction)
	case staticFriction < dynamicFriction:
		return Material{}, fmt.Errorf("contact: static friction %g must be at least dynamic friction %g",
			staticFriction, dynamicFriction)
	case viscousFriction < 0:
		return Material{}, fmt.Errorf("contact: viscous friction must be nonnegative, got %g", viscousFriction)
	}
	return Material{
		stiffness:       stiffness,
		stiffness23:     math.Pow(stiffness, 2.0/3.0),
		dissipation:     dissipation,
		staticFriction:  staticFriction,
		dynamicFriction: dynamicFriction,
		viscousFriction: viscousFriction,
	}, nil
}

// MustMaterial is NewMaterial for compile-time-known values; it panics
// on invalid input.
func MustMaterial(stiffness, dissipation, staticFriction, dynamicFriction, viscousFriction float64) Material {
	m, err := NewMaterial(stiffness, dissipation, staticFriction, dynamicFriction, viscousFriction)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Material) Stiffness() float64   { return m.stiffness }
func (m Material) Stiffness23() float64 { return m.stiffness23 }
func (m Material) Dissipation() float64 { return m.dissipation }

func (m Material) StaticFriction() float64  { return m.staticFriction }
func (m Material) DynamicFriction() float64 { return m.dynamicFriction }
func (m Material) ViscousFriction() float64 { return m.viscousFriction }
