package analysis

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/lilacs/pkg/circuit"
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

func TestDCSweep(t *testing.T) {
	var logs bytes.Buffer
	root := divider()
	dc := NewDCSweep("Source1", quantity.E, 0, 10, 5, WithLogger(quietLogger(&logs)), WithVerify(true))
	require.NoError(t, dc.Setup(root))
	require.NoError(t, dc.Execute())

	points := dc.Points()
	require.Len(t, points, 3)
	for i, want := range []float64{0, 5e-3 / 2, 5e-3} {
		assert.InDelta(t, float64(i)*5, points[i].Value, 1e-12)
		assert.InDelta(t, want, real(points[i].Results["I(Series1)"]), 1e-12)
	}
	assert.Equal(t, "E(Source1)", dc.Swept())
	assert.Equal(t, points[2].Results, dc.GetResults())

	// the network keeps its own givens once the sweep is done
	e, ok := find(root, "Source1").Values().Get(quantity.E)
	require.True(t, ok)
	assert.Equal(t, complex128(10), e)
	assert.False(t, root.Values().Has(quantity.I))
}

func TestDCSweepAddsGiven(t *testing.T) {
	n := device.NewNamer()
	load := device.NewLoad(n, quantity.Values{})
	root := circuit.NewSeries(n, quantity.Values{}, device.NewDCCurrentSource(n, 2), load)

	dc := NewDCSweep("Load1", quantity.Z, 1, 3, 1)
	require.NoError(t, dc.Setup(root))
	require.NoError(t, dc.Execute())

	require.Len(t, dc.Points(), 3)
	assert.InDelta(t, 6, real(dc.Points()[2].Results["E(Series1)"]), 1e-12)
	assert.False(t, load.Given().Has(quantity.Z))
	assert.False(t, load.Values().Has(quantity.Z))
}

func TestDCSweepSetupErrors(t *testing.T) {
	for name, dc := range map[string]*DCSweep{
		"missing node":   NewDCSweep("Source9", quantity.E, 0, 1, 1),
		"zero increment": NewDCSweep("Source1", quantity.E, 0, 1, 0),
		"empty range":    NewDCSweep("Source1", quantity.E, 2, 1, 1),
		"admittance":     NewDCSweep("Load1", quantity.Y, 0, 1, 1),
	} {
		assert.Error(t, dc.Setup(divider()), name)
	}
	assert.Error(t, NewDCSweep("Source1", quantity.E, 0, 1, 1).Setup(nil))
}
