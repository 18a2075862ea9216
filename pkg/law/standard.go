package law

import (
	"math/cmplx"
	"sync"

	"github.com/edp1096/lilacs/internal/consts"
	"github.com/edp1096/lilacs/pkg/quantity"
)

var (
	standard     *Registry
	standardOnce sync.Once
)

// Standard returns the shared table of Ohm's law, the power law, the
// reactance laws and the admittance reciprocal.
func Standard() *Registry {
	standardOnce.Do(func() {
		standard = buildStandard()
	})
	return standard
}

func buildStandard() *Registry {
	b := NewBuilder()

	// Ohm's law and power law, every pair of E, I, Z, P
	b.Register(quantity.Z, quantity.SetOf(quantity.E, quantity.I), func(a *Args) (complex128, bool) { return a[quantity.E] / a[quantity.I], true })
	b.Register(quantity.P, quantity.SetOf(quantity.E, quantity.I), func(a *Args) (complex128, bool) { return a[quantity.E] * a[quantity.I], true })
	b.Register(quantity.I, quantity.SetOf(quantity.E, quantity.Z), func(a *Args) (complex128, bool) { return a[quantity.E] / a[quantity.Z], true })
	b.Register(quantity.P, quantity.SetOf(quantity.E, quantity.Z), func(a *Args) (complex128, bool) { return a[quantity.E] * a[quantity.E] / a[quantity.Z], true })
	b.Register(quantity.E, quantity.SetOf(quantity.I, quantity.Z), func(a *Args) (complex128, bool) { return a[quantity.I] * a[quantity.Z], true })
	b.Register(quantity.P, quantity.SetOf(quantity.I, quantity.Z), func(a *Args) (complex128, bool) { return a[quantity.I] * a[quantity.I] * a[quantity.Z], true })
	b.Register(quantity.I, quantity.SetOf(quantity.P, quantity.E), func(a *Args) (complex128, bool) { return a[quantity.P] / a[quantity.E], true })
	b.Register(quantity.Z, quantity.SetOf(quantity.P, quantity.E), func(a *Args) (complex128, bool) { return a[quantity.E] * a[quantity.E] / a[quantity.P], true })
	b.Register(quantity.E, quantity.SetOf(quantity.P, quantity.I), func(a *Args) (complex128, bool) { return a[quantity.P] / a[quantity.I], true })
	b.Register(quantity.Z, quantity.SetOf(quantity.P, quantity.I), func(a *Args) (complex128, bool) { return a[quantity.P] / a[quantity.I] / a[quantity.I], true })
	b.RegisterRoot(quantity.I, quantity.SetOf(quantity.P, quantity.Z), func(a *Args) (complex128, bool) { return cmplx.Sqrt(a[quantity.P] / a[quantity.Z]), true })
	b.RegisterRoot(quantity.E, quantity.SetOf(quantity.P, quantity.Z), func(a *Args) (complex128, bool) { return cmplx.Sqrt(a[quantity.P] * a[quantity.Z]), true })

	// Reactance
	b.RegisterReactive(quantity.Z, quantity.SetOf(quantity.C, quantity.F), capacitiveImpedance)
	b.RegisterReactive(quantity.Z, quantity.SetOf(quantity.L, quantity.F), inductiveImpedance)
	b.Register(quantity.C, quantity.SetOf(quantity.Z, quantity.F), capacitance)
	b.Register(quantity.L, quantity.SetOf(quantity.Z, quantity.F), inductance)
	b.Register(quantity.F, quantity.SetOf(quantity.Z, quantity.C), capacitiveFrequency)
	b.Register(quantity.F, quantity.SetOf(quantity.Z, quantity.L), inductiveFrequency)

	// Admittance
	b.Register(quantity.Y, quantity.SetOf(quantity.Z), func(a *Args) (complex128, bool) { return 1 / a[quantity.Z], true })
	b.Register(quantity.Z, quantity.SetOf(quantity.Y), func(a *Args) (complex128, bool) { return 1 / a[quantity.Y], true })

	return b.Build()
}

func capacitiveImpedance(a *Args) (complex128, bool) {
	f, c := real(a[quantity.F]), real(a[quantity.C])
	return complex(0, -1/(consts.TWOPI*f*c)), true
}

func inductiveImpedance(a *Args) (complex128, bool) {
	f, l := real(a[quantity.F]), real(a[quantity.L])
	return complex(0, consts.TWOPI*f*l), true
}

// Capacitance only follows from a capacitive (negative) reactance.
func capacitance(a *Args) (complex128, bool) {
	x := imag(a[quantity.Z])
	if x >= 0 {
		return 0, false
	}
	return complex(-1/(consts.TWOPI*real(a[quantity.F])*x), 0), true
}

// Inductance only follows from an inductive (positive) reactance.
func inductance(a *Args) (complex128, bool) {
	x := imag(a[quantity.Z])
	if x <= 0 {
		return 0, false
	}
	return complex(x/(consts.TWOPI*real(a[quantity.F])), 0), true
}

func capacitiveFrequency(a *Args) (complex128, bool) {
	x := imag(a[quantity.Z])
	if x >= 0 {
		return 0, false
	}
	return complex(-1/(consts.TWOPI*real(a[quantity.C])*x), 0), true
}

func inductiveFrequency(a *Args) (complex128, bool) {
	x := imag(a[quantity.Z])
	if x <= 0 {
		return 0, false
	}
	return complex(x/(consts.TWOPI*real(a[quantity.L])), 0), true
}
