package device

import "github.com/edp1096/lilacs/pkg/quantity"

// NewInductor is a load with a given inductance.
func NewInductor(n *Namer, henries float64, opts ...Option) *Component {
	return NewLoad(n, quantity.NewValues(map[quantity.Quantity]complex128{
		quantity.L: complex(henries, 0),
	}), opts...)
}
