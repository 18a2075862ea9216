package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/lilacs/pkg/circuit"
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

func TestFormatMagnitude(t *testing.T) {
	for _, tt := range []struct {
		value float64
		unit  string
		want  string
	}{
		{12, "V", "12V"},
		{0, "A", "0A"},
		{48, "W", "48W"},
		{0.0035197, "A", "3.52mA"},
		{3394.1, "W", "3.39kW"},
		{999.9, "Ω", "1kΩ"},
		{24100, "Ω", "24.1kΩ"},
		{110e-9, "F", "110nF"},
		{2.2e-6, "H", "2.2uH"},
		{-4, "V", "-4V"},
		{102.34, "A", "102A"},
	} {
		assert.Equal(t, tt.want, FormatMagnitude(tt.value, tt.unit), "%g", tt.value)
	}
}

func TestFormatPhase(t *testing.T) {
	assert.Equal(t, "∠45°", FormatPhase(45.02))
	assert.Equal(t, "∠-45°", FormatPhase(-45.00000000000001))
	assert.Equal(t, "∠0°", FormatPhase(-1e-15))
	assert.Equal(t, "∠90°", FormatPhase(90))
}

func load(pairs map[quantity.Quantity]complex128) *device.Component {
	return device.NewLoad(device.NewNamer(), quantity.NewValues(pairs))
}

func TestFormatLineDC(t *testing.T) {
	primary := []quantity.Quantity{quantity.E, quantity.I, quantity.Z, quantity.P}
	reference := map[quantity.Quantity]complex128{quantity.E: 12, quantity.I: 4, quantity.Z: 3, quantity.P: 48}

	for i, a := range primary {
		for _, b := range primary[i+1:] {
			c := load(map[quantity.Quantity]complex128{a: reference[a], b: reference[b]})
			c.Solve()
			got, err := FormatLine(c)
			require.NoError(t, err)
			assert.Equal(t, "Load1( E=12V, I=4A, Z=3Ω, P=48W )", got)
		}
	}
}

func TestFormatLineAC(t *testing.T) {
	reference := map[quantity.Quantity]complex128{
		quantity.E: 120,
		quantity.I: complex(20, -20),
		quantity.Z: complex(3, 3),
		quantity.P: complex(2400, -2400),
	}
	primary := []quantity.Quantity{quantity.E, quantity.I, quantity.Z, quantity.P}

	for i, a := range primary {
		for _, b := range primary[i+1:] {
			c := load(map[quantity.Quantity]complex128{a: reference[a], b: reference[b], quantity.F: 60})
			c.Solve()
			got, err := FormatLine(c)
			require.NoError(t, err)
			assert.Equal(t, "Load1( E=120V∠0°, I=28.3A∠-45°, Z=4.24Ω∠45°, P=3.39kW∠-45°, L=7.96mH )", got,
				"from %s", quantity.SetOf(a, b))
		}
	}
}

func TestFormatReactiveWithoutFrequency(t *testing.T) {
	c := load(map[quantity.Quantity]complex128{quantity.E: 120, quantity.Z: complex(100, -100)})
	c.Solve()

	_, err := FormatLine(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReactiveWithoutFrequency))

	_, err = FormatQuantity(quantity.Z, c.Values())
	assert.ErrorIs(t, err, ErrReactiveWithoutFrequency)
}

func TestFormatUnknown(t *testing.T) {
	c := load(map[quantity.Quantity]complex128{quantity.E: 12})
	got, err := FormatLine(c)
	require.NoError(t, err)
	assert.Equal(t, "Load1( E=12V, I=?, Z=?, P=? )", got)
}

func TestFormatNodeSeries(t *testing.T) {
	n := device.NewNamer()
	s := circuit.NewSeries(n, quantity.NewValues(map[quantity.Quantity]complex128{quantity.E: 12}),
		device.NewResistor(n, 1),
		device.NewResistor(n, 2),
	)
	s.Solve()

	got, err := FormatNode(s)
	require.NoError(t, err)
	assert.Equal(t, "Series1( E=12V, I=4A, P=48W )\n"+
		"  Load1( E=4V, I=4A, Z=1Ω, P=16W )\n"+
		"  Load2( E=8V, I=4A, Z=2Ω, P=32W )", got)
}

func TestFormatNodeParallel(t *testing.T) {
	n := device.NewNamer()
	p := circuit.NewParallel(n, quantity.NewValues(map[quantity.Quantity]complex128{quantity.E: 12}),
		device.NewResistor(n, 6),
		device.NewResistor(n, 6),
	)
	p.Solve()

	got, err := FormatNode(p)
	require.NoError(t, err)
	assert.Equal(t, "Parallel1( E=12V, I=4A, P=48W )\n"+
		"  Load1( E=12V, I=2A, Z=6Ω, P=24W )\n"+
		"  Load2( E=12V, I=2A, Z=6Ω, P=24W )", got)
}

func TestFormatNodeNested(t *testing.T) {
	n := device.NewNamer()
	branch := circuit.NewParallel(n, quantity.Values{}, device.NewResistor(n, 2), device.NewResistor(n, 2))
	s := circuit.NewSeries(n, quantity.Values{}, device.NewDCVoltageSource(n, 6), branch, device.NewResistor(n, 2))
	s.Solve()

	got, err := FormatNode(s)
	require.NoError(t, err)
	assert.Equal(t, "Series1( E=6V, I=2A, P=12W )\n"+
		"  Source1( E=6V, I=2A, P=12W )\n"+
		"  Parallel1( E=2V, I=2A, P=4W )\n"+
		"    Load1( E=2V, I=1A, Z=2Ω, P=2W )\n"+
		"    Load2( E=2V, I=1A, Z=2Ω, P=2W )\n"+
		"  Load3( E=4V, I=2A, Z=2Ω, P=8W )", got)
}

func TestFormatSourceFrequency(t *testing.T) {
	n := device.NewNamer()
	src := device.NewSinVoltageSource(n, 120, 60, 0)
	s := circuit.NewSeries(n, quantity.Values{}, src, device.NewResistor(n, 2), device.NewInductor(n, 2.2e-3))
	s.Solve()

	got, err := FormatNode(s)
	require.NoError(t, err)
	assert.Contains(t, got, "Source1(")
	assert.Contains(t, got, "F=60Hz )")
	assert.Contains(t, got, "L=2.2mH )")
}

func TestFormatResult(t *testing.T) {
	results := map[string]complex128{
		"E(Load1)":   12,
		"I(Series1)": complex(1, 1),
		"F(Series1)": 60,
		"Z(Load2)":   complex(0, 2),
	}

	got, err := FormatResult("E(Load1)", results)
	require.NoError(t, err)
	assert.Equal(t, "E(Load1)=12V", got)

	got, err = FormatResult("I(Series1)", results)
	require.NoError(t, err)
	assert.Equal(t, "I(Series1)=1.41A∠45°", got)

	got, err = FormatResult("P(Load1)", results)
	require.NoError(t, err)
	assert.Equal(t, "P(Load1)=?", got)

	_, err = FormatResult("Z(Load2)", results)
	assert.ErrorIs(t, err, ErrReactiveWithoutFrequency)

	_, err = FormatResult("Load1", results)
	assert.Error(t, err)
	_, err = FormatResult("Q(Load1)", results)
	assert.Error(t, err)
}
