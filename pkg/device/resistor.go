package device

import "github.com/edp1096/lilacs/pkg/quantity"

// NewResistor is a load with a given real impedance.
func NewResistor(n *Namer, ohms float64, opts ...Option) *Component {
	return NewImpedance(n, complex(ohms, 0), opts...)
}

// NewImpedance is a load with a given complex impedance.
func NewImpedance(n *Namer, z complex128, opts ...Option) *Component {
	return NewLoad(n, quantity.NewValues(map[quantity.Quantity]complex128{quantity.Z: z}), opts...)
}
