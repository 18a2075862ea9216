// Package quantity defines the electrical quantities tracked on every node of
// a network and the fixed-size value table that holds them.
package quantity

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/edp1096/lilacs/internal/consts"
)

type Quantity uint8

const (
	E Quantity = iota // Voltage
	I                 // Current
	Z                 // Impedance
	P                 // Power
	Y                 // Admittance, derived only
	C                 // Capacitance
	L                 // Inductance
	F                 // Drive frequency
	Count
)

var symbols = [Count]string{"E", "I", "Z", "P", "Y", "C", "L", "F"}

var units = [Count]string{"V", "A", "Ω", "W", "S", "F", "H", "Hz"}

func (q Quantity) String() string {
	if q >= Count {
		return "?"
	}
	return symbols[q]
}

func (q Quantity) Unit() string {
	if q >= Count {
		return ""
	}
	return units[q]
}

// Phased reports whether q is a phasor and rendered in polar form under AC.
func (q Quantity) Phased() bool { return q <= Y }

// Real reports whether q only ever carries an in-phase part.
func (q Quantity) Real() bool { return q == C || q == L || q == F }

// Lookup maps a symbol (case-insensitive) to its quantity.
func Lookup(symbol string) (Quantity, bool) {
	symbol = strings.ToUpper(symbol)
	for q, s := range symbols {
		if s == symbol {
			return Quantity(q), true
		}
	}
	return Count, false
}

// Set is a bitset of quantities, used for dependency sets and the given set.
type Set uint16

func SetOf(qs ...Quantity) Set {
	var s Set
	for _, q := range qs {
		s = s.Add(q)
	}
	return s
}

// All is every tracked quantity.
var All = Set(1<<Count - 1)

func (s Set) Has(q Quantity) bool { return s&(1<<q) != 0 }

func (s Set) Add(q Quantity) Set { return s | 1<<q }

func (s Set) Len() int {
	n := 0
	for q := Quantity(0); q < Count; q++ {
		if s.Has(q) {
			n++
		}
	}
	return n
}

// Quantities lists the members of s in enum order.
func (s Set) Quantities() []Quantity {
	qs := make([]Quantity, 0, Count)
	for q := Quantity(0); q < Count; q++ {
		if s.Has(q) {
			qs = append(qs, q)
		}
	}
	return qs
}

func (s Set) String() string {
	parts := make([]string, 0, Count)
	for _, q := range s.Quantities() {
		parts = append(parts, q.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Values holds one complex slot per quantity. A slot is either known or
// absent; zero is a valid known value.
type Values struct {
	v     [Count]complex128
	known Set
}

// NewValues builds a table from the supplied pairs.
func NewValues(pairs map[Quantity]complex128) Values {
	var vals Values
	for q, x := range pairs {
		vals.Assign(q, x)
	}
	return vals
}

func (v *Values) Get(q Quantity) (complex128, bool) {
	if !v.known.Has(q) {
		return 0, false
	}
	return v.v[q], true
}

func (v *Values) Has(q Quantity) bool { return v.known.Has(q) }

// Assign stores x in the slot for q regardless of its current state. Real
// quantities drop their imaginary part.
func (v *Values) Assign(q Quantity, x complex128) {
	if q >= Count {
		return
	}
	if q.Real() {
		x = complex(real(x), 0)
	}
	v.v[q] = x
	v.known = v.known.Add(q)
}

// Fill stores x only when q is still unknown and reports whether it did.
func (v *Values) Fill(q Quantity, x complex128) bool {
	if v.known.Has(q) {
		return false
	}
	v.Assign(q, x)
	return true
}

// Clear marks q unknown again.
func (v *Values) Clear(q Quantity) {
	if q >= Count {
		return
	}
	v.v[q] = 0
	v.known &^= 1 << q
}

func (v *Values) Known() Set { return v.known }

func (v *Values) Unknown() Set { return All &^ v.known }

// Finite reports whether x is usable as a quantity value.
func Finite(x complex128) bool {
	return !cmplx.IsInf(x) && !cmplx.IsNaN(x)
}

// Tolerance bounds the difference accepted between a stored and a
// recomputed value.
type Tolerance struct {
	Rel float64
	Abs float64
}

var DefaultTolerance = Tolerance{Rel: consts.RELTOL, Abs: consts.ABSTOL}

// Close reports |a-b| <= max(Rel*max(|a|,|b|), Abs).
func (t Tolerance) Close(a, b complex128) bool {
	if a == b {
		return true
	}
	if !Finite(a) || !Finite(b) {
		return false
	}
	diff := cmplx.Abs(a - b)
	return diff <= math.Max(t.Rel*math.Max(cmplx.Abs(a), cmplx.Abs(b)), t.Abs)
}
