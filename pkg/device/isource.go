package device

import (
	"math/cmplx"

	"github.com/edp1096/lilacs/internal/consts"
	"github.com/edp1096/lilacs/pkg/quantity"
)

func NewDCCurrentSource(n *Namer, amps float64, opts ...Option) *Component {
	return NewSource(n, quantity.NewValues(map[quantity.Quantity]complex128{
		quantity.I: complex(amps, 0),
	}), opts...)
}

func NewSinCurrentSource(n *Namer, amplitude, freq, phase float64, opts ...Option) *Component {
	return NewSource(n, quantity.NewValues(map[quantity.Quantity]complex128{
		quantity.I: cmplx.Rect(amplitude, phase/consts.DEGREE),
		quantity.F: complex(freq, 0),
	}), opts...)
}
