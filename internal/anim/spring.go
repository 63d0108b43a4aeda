package anim

import "math"

// SpringConfig parameterizes a damped spring from 0 to 1. Configurations
// below critical damping are raised to critical: entrance animations must be
// monotonic and settle, never oscillate past their final value.
type SpringConfig struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// DefaultSpring matches the snappy entrance feel used for titles and panels.
var DefaultSpring = SpringConfig{Stiffness: 170, Damping: 26, Mass: 1}

// GentleSpring is a softer variant used for the lesson-wide progress fill.
var GentleSpring = SpringConfig{Stiffness: 60, Damping: 16, Mass: 1}

// settleEpsilon snaps the tail of the exponential to exactly 1 so a settled
// property is bit-stable across frames.
const settleEpsilon = 1e-3

// Spring evaluates the spring at the given elapsed frame count. It is the
// closed-form solution of the damped oscillator, so the value at any frame
// is computed directly, without stepping through earlier frames.
func Spring(frame float64, fps int, cfg SpringConfig) float64 {
	if frame <= 0 {
		return 0
	}

	mass := cfg.Mass
	if mass <= 0 {
		mass = 1
	}
	stiffness := cfg.Stiffness
	if stiffness <= 0 {
		stiffness = DefaultSpring.Stiffness
	}

	omega := math.Sqrt(stiffness / mass)
	critical := 2 * math.Sqrt(stiffness*mass)
	damping := cfg.Damping
	if damping < critical {
		damping = critical
	}
	zeta := damping / critical

	t := frame / float64(fps)

	var x float64
	if zeta <= 1+1e-9 {
		// Critically damped: x(t) = 1 - (1 + w*t) * e^(-w*t)
		x = 1 - (1+omega*t)*math.Exp(-omega*t)
	} else {
		// Overdamped: both roots real and negative
		s := math.Sqrt(zeta*zeta - 1)
		r1 := omega * (-zeta + s)
		r2 := omega * (-zeta - s)
		x = 1 - (r1*math.Exp(r2*t)-r2*math.Exp(r1*t))/(r1-r2)
	}

	if x > 1-settleEpsilon {
		return 1
	}
	if x < 0 {
		return 0
	}
	return x
}

// SpringBetween runs the spring from `from` to `to` instead of 0 to 1.
func SpringBetween(frame float64, fps int, from, to float64, cfg SpringConfig) float64 {
	return Lerp(from, to, Spring(frame, fps, cfg))
}
