// Package law holds the table of physical relationships used to derive one
// quantity from others. A table is built once and read-only afterwards, so a
// single Registry can serve any number of independent solves.
package law

import (
	"slices"

	"github.com/edp1096/lilacs/pkg/quantity"
)

// Args carries the dependency values of a law, indexed by quantity.
type Args [quantity.Count]complex128

// DeriveFunc computes a result from its dependencies. The bool is false when
// the law does not apply to these particular values.
type DeriveFunc func(a *Args) (complex128, bool)

type Law struct {
	Result quantity.Quantity
	Deps   quantity.Set
	Derive DeriveFunc
	// Root marks a principal square root: the negated result satisfies the
	// law as well.
	Root bool
	// Reactive marks a law that only yields the imaginary part of its
	// result; the real part of a stored value is not constrained by it.
	Reactive bool
}

// Satisfied reports whether stored agrees with the computed result x.
func (l Law) Satisfied(stored, x complex128, tol quantity.Tolerance) bool {
	if l.Reactive {
		return tol.Close(complex(0, imag(stored)), complex(0, imag(x)))
	}
	return tol.Close(stored, x) || (l.Root && tol.Close(stored, -x))
}

// Apply evaluates the law against v. It reports false when a dependency is
// missing, when the law declines, or when the result is not finite.
func (l Law) Apply(v *quantity.Values) (complex128, bool) {
	var a Args
	for _, q := range l.Deps.Quantities() {
		x, ok := v.Get(q)
		if !ok {
			return 0, false
		}
		a[q] = x
	}
	x, ok := l.Derive(&a)
	if !ok || !quantity.Finite(x) {
		return 0, false
	}
	if l.Result.Real() {
		x = complex(real(x), 0)
	}
	return x, true
}

type Registry struct {
	laws  [quantity.Count][]Law
	order []Law
}

// Lookup returns the laws producing q, in registration order.
func (r *Registry) Lookup(q quantity.Quantity) []Law {
	if q >= quantity.Count {
		return nil
	}
	return slices.Clone(r.laws[q])
}

// Laws returns every registered law in registration order.
func (r *Registry) Laws() []Law {
	return slices.Clone(r.order)
}

// Builder accumulates laws before freezing them into a Registry.
type Builder struct {
	reg *Registry
}

func NewBuilder() *Builder {
	return &Builder{reg: &Registry{}}
}

func (b *Builder) Register(result quantity.Quantity, deps quantity.Set, fn DeriveFunc) *Builder {
	return b.add(Law{Result: result, Deps: deps, Derive: fn})
}

// RegisterRoot adds a law whose result is only known up to its sign.
func (b *Builder) RegisterRoot(result quantity.Quantity, deps quantity.Set, fn DeriveFunc) *Builder {
	return b.add(Law{Result: result, Deps: deps, Derive: fn, Root: true})
}

// RegisterReactive adds a law that determines only the reactance of its
// result.
func (b *Builder) RegisterReactive(result quantity.Quantity, deps quantity.Set, fn DeriveFunc) *Builder {
	return b.add(Law{Result: result, Deps: deps, Derive: fn, Reactive: true})
}

func (b *Builder) add(l Law) *Builder {
	b.reg.laws[l.Result] = append(b.reg.laws[l.Result], l)
	b.reg.order = append(b.reg.order, l)
	return b
}

// Build hands over the registry. The builder must not be used afterwards.
func (b *Builder) Build() *Registry {
	reg := b.reg
	b.reg = nil
	return reg
}
