package device

import (
	"math/cmplx"

	"github.com/edp1096/lilacs/internal/consts"
	"github.com/edp1096/lilacs/pkg/quantity"
)

func NewDCVoltageSource(n *Namer, volts float64, opts ...Option) *Component {
	return NewSource(n, quantity.NewValues(map[quantity.Quantity]complex128{
		quantity.E: complex(volts, 0),
	}), opts...)
}

// NewSinVoltageSource drives the network at freq with a phasor of the given
// amplitude and phase (degrees).
func NewSinVoltageSource(n *Namer, amplitude, freq, phase float64, opts ...Option) *Component {
	return NewSource(n, quantity.NewValues(map[quantity.Quantity]complex128{
		quantity.E: cmplx.Rect(amplitude, phase/consts.DEGREE),
		quantity.F: complex(freq, 0),
	}), opts...)
}
