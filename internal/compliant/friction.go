package compliant

import "math"

// step5 is the smooth quintic 0..1 step: 10x^3 - 15x^4 + 6x^5. First and
// second derivatives vanish at both ends. Input must be in [0,1].
func step5(x float64) float64 {
	x3 := x * x * x
	return x3 * (10 + x*(6*x-15))
}

// step5d goes from 0 at x=0 to y at x=1 with zero slope at the start and
// slope yd at the end; second derivatives vanish at both ends. Used to
// blend the flat Stribeck tail into the linear viscous slope.
func step5d(y, yd, x float64) float64 {
	a := 6*y - 3*yd
	b := -15*y + 7*yd
	c := 10*y - 4*yd
	x3 := x * x * x
	return x3 * (c + x*(b+x*a))
}

// stribeck evaluates the composite friction coefficient at the
// dimensionless slip speed v (slip speed over transition velocity).
// Four segments, C1 continuous at every boundary:
//
//	v in [0,1]: stiction ramp up to us
//	v in [1,3]: Stribeck decay from us down to ud
//	v in [3,4]: blend from zero slope into the viscous slope
//	v  >    4:  linear viscous, ud + uv*(v-3)
//
// uv must already be scaled to the dimensionless velocity axis (multiply
// the raw viscous coefficient by the transition velocity). Scale the
// normal force by the result to get the friction force magnitude.
func stribeck(us, ud, uv, v float64) float64 {
	switch {
	case v <= 1:
		return us * step5(v)
	case v <= 3:
		return us - (us-ud)*step5((v-1)/2)
	case v <= 4:
		return ud + step5d(uv, uv, v-3)
	default:
		return ud + uv*(v-3)
	}
}

// hollars is an alternative composite friction curve with the same
// arguments and scaling as stribeck. Sharper: its derivative is
// discontinuous at v=1.
func hollars(us, ud, uv, v float64) float64 {
	return math.Min(v, 1)*(ud+2*(us-ud)/(1+v*v)) + uv*v
}

// combineFriction merges two per-surface friction coefficients with the
// rule 2ab/(a+b), defined as 0 when either surface is frictionless so
// 0/0 never arises.
func combineFriction(a, b float64) float64 {
	u := 2 * a * b
	if u != 0 {
		u /= a + b
	}
	return u
}
