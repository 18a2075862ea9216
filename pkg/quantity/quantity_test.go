package quantity

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, tt := range []struct {
		symbol string
		want   Quantity
		ok     bool
	}{
		{"E", E, true},
		{"i", I, true},
		{"z", Z, true},
		{"Y", Y, true},
		{"f", F, true},
		{"R", Count, false},
		{"", Count, false},
	} {
		got, ok := Lookup(tt.symbol)
		assert.Equal(t, tt.ok, ok, tt.symbol)
		assert.Equal(t, tt.want, got, tt.symbol)
	}
}

func TestQuantityUnits(t *testing.T) {
	assert.Equal(t, "Ω", Z.Unit())
	assert.Equal(t, "Hz", F.Unit())
	assert.Equal(t, "?", Count.String())
	assert.True(t, P.Phased())
	assert.False(t, C.Phased())
	assert.True(t, L.Real())
	assert.False(t, E.Real())
}

func TestSet(t *testing.T) {
	s := SetOf(P, E)
	assert.True(t, s.Has(E))
	assert.True(t, s.Has(P))
	assert.False(t, s.Has(I))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Quantity{E, P}, s.Quantities())
	assert.Equal(t, "(E, P)", s.String())
	assert.Equal(t, int(Count), All.Len())
	assert.Equal(t, "()", Set(0).String())
}

func TestValues(t *testing.T) {
	v := NewValues(map[Quantity]complex128{E: 12, Z: 0})

	x, ok := v.Get(E)
	require.True(t, ok)
	assert.Equal(t, complex128(12), x)

	// zero is a known value, not an absent one
	x, ok = v.Get(Z)
	require.True(t, ok)
	assert.Equal(t, complex128(0), x)

	_, ok = v.Get(I)
	assert.False(t, ok)
	assert.Equal(t, SetOf(E, Z), v.Known())
	assert.Equal(t, All&^SetOf(E, Z), v.Unknown())
}

func TestValuesFill(t *testing.T) {
	var v Values
	assert.True(t, v.Fill(I, 4))
	assert.False(t, v.Fill(I, 5))

	x, _ := v.Get(I)
	assert.Equal(t, complex128(4), x)

	v.Assign(I, 5)
	x, _ = v.Get(I)
	assert.Equal(t, complex128(5), x)
}

func TestValuesRealQuantities(t *testing.T) {
	var v Values
	v.Assign(C, complex(1e-3, 2))
	x, ok := v.Get(C)
	require.True(t, ok)
	assert.Equal(t, complex(1e-3, 0), x)

	v.Assign(Count, 1)
	assert.Equal(t, SetOf(C), v.Known())
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(complex(1, -1)))
	assert.False(t, Finite(cmplx.Inf()))
	assert.False(t, Finite(cmplx.NaN()))
	assert.False(t, Finite(complex(math.Inf(1), 0)))
}

func TestToleranceClose(t *testing.T) {
	tol := DefaultTolerance
	assert.True(t, tol.Close(3, 3))
	assert.True(t, tol.Close(3, 3+1e-12))
	assert.True(t, tol.Close(0, 1e-13))
	assert.False(t, tol.Close(3, 2.6))
	assert.False(t, tol.Close(complex(0, 2), complex(0, -2)))
	assert.False(t, tol.Close(cmplx.NaN(), cmplx.NaN()))

	loose := Tolerance{Rel: 0.1}
	assert.True(t, loose.Close(100, 95))
	assert.False(t, loose.Close(100, 80))
}

func TestValuesClear(t *testing.T) {
	v := NewValues(map[Quantity]complex128{E: 12, I: 4})
	v.Clear(E)
	assert.False(t, v.Has(E))
	assert.True(t, v.Has(I))
	v.Clear(Count)
	assert.Equal(t, SetOf(I), v.Known())
}
