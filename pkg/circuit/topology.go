package circuit

import (
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

// Topology decides which quantities a circuit shares with its children and
// which ones sum across them.
type Topology interface {
	Kind() device.Kind
	// Propagate runs one round of sharing and summing rules on c.
	Propagate(c *Circuit) bool
}

type series struct{}

type parallel struct{}

// Series children carry one current; voltages, impedances and powers sum.
func Series() Topology { return series{} }

// Parallel children share one voltage; currents, powers and admittances sum.
func Parallel() Topology { return parallel{} }

func identity(x complex128) complex128 { return x }

func reciprocal(x complex128) complex128 { return 1 / x }

func (series) Kind() device.Kind { return device.Series }

func (series) Propagate(c *Circuit) bool {
	changed := false
	// TODO: with several sources in series their voltages should sum
	// instead of all taking the circuit voltage.
	for _, step := range []func() bool{
		func() bool { return c.propagateConstant(quantity.I, c.Sources()) },
		func() bool { return c.propagateConstant(quantity.I, c.Loads()) },
		func() bool { return c.propagateConstant(quantity.E, c.Sources()) },
		func() bool { return c.propagateConstant(quantity.F, c.Children()) },
		func() bool { return c.propagateLinear(quantity.Z, identity) },
		func() bool { return c.propagateLinear(quantity.E, identity) },
		func() bool { return c.propagateLinear(quantity.P, identity) },
	} {
		if step() {
			changed = true
		}
	}
	return changed
}

func (parallel) Kind() device.Kind { return device.Parallel }

func (parallel) Propagate(c *Circuit) bool {
	changed := false
	for _, step := range []func() bool{
		func() bool { return c.propagateConstant(quantity.E, c.Children()) },
		func() bool { return c.propagateConstant(quantity.F, c.Children()) },
		func() bool { return c.propagateLinear(quantity.I, identity) },
		func() bool { return c.propagateLinear(quantity.P, identity) },
		func() bool { return c.propagateLinear(quantity.Z, reciprocal) },
	} {
		if step() {
			changed = true
		}
	}
	return changed
}
