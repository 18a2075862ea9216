package device

import "github.com/edp1096/lilacs/pkg/quantity"

// NewCapacitor is a load with a given capacitance. Its impedance follows once
// a drive frequency reaches it.
func NewCapacitor(n *Namer, farads float64, opts ...Option) *Component {
	return NewLoad(n, quantity.NewValues(map[quantity.Quantity]complex128{
		quantity.C: complex(farads, 0),
	}), opts...)
}
