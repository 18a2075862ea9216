package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

const dividers = `* Divider test
* two resistors
s(e=12) + l(r=1)
+ + l(r=2)
.verify

parallel(e=12)(l(r=6),
+ l(r=6))
.end
l(r=1)
`

func TestParse(t *testing.T) {
	data, err := Parse(dividers)
	require.NoError(t, err)

	assert.Equal(t, "Divider test", data.Title)
	assert.True(t, data.Verify)
	require.Len(t, data.Networks, 2)

	first := data.Networks[0]
	assert.Equal(t, 3, first.Line)
	assert.Equal(t, "s(e=12) + l(r=1) + l(r=2)", first.Expr)
	assert.Equal(t, device.Series, first.Root.Kind())
	assert.Len(t, first.Root.Children(), 3)

	second := data.Networks[1]
	assert.Equal(t, 7, second.Line)
	assert.Equal(t, "parallel(e=12)(l(r=6), l(r=6))", second.Expr)
	assert.Equal(t, "Parallel1", second.Root.Name())

	// names restart for every network
	assert.Equal(t, "Load1", second.Root.Children()[0].Name())
}

func TestParseIndentedContinuation(t *testing.T) {
	data, err := Parse("title\nseries(e=12)(\n+ l(r=1),\n   l(r=2))\n")
	require.NoError(t, err)
	require.Len(t, data.Networks, 1)
	assert.Equal(t, "series(e=12)( l(r=1), l(r=2))", data.Networks[0].Expr)
	assert.Len(t, data.Networks[0].Root.Children(), 2)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("title\nl(r=1)\nl(r=\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	_, err = Parse("title\n.tran 1ms\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported command: .tran")
}

func TestParseEmpty(t *testing.T) {
	data, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, data.Title)
	assert.Empty(t, data.Networks)
}

func TestParseValue(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want float64
	}{
		{"1", 1},
		{"4.7k", 4700},
		{"2.2meg", 2.2e6},
		{"3M", 3e6},
		{"100n", 100e-9},
		{"-1.5m", -1.5e-3},
		{"1e3", 1000},
		{"10p", 10e-12},
	} {
		got, err := ParseValue(tt.in)
		require.NoError(t, err, tt.in)
		assert.InEpsilon(t, tt.want, got, 1e-12, tt.in)
	}

	_, err := ParseValue("abc")
	assert.Error(t, err)
}

func TestParseAnalysis(t *testing.T) {
	data, err := Parse("dc\ns(e=1) + l(r=1k)\n.dc Source1 0 10 2.5\n")
	require.NoError(t, err)
	assert.Equal(t, AnalysisDC, data.Analysis)
	assert.Equal(t, "Source1", data.DCParam.Node)
	assert.Equal(t, quantity.E, data.DCParam.Quantity)
	assert.Equal(t, 2.5, data.DCParam.Increment)

	data, err = Parse("dc\ns(i=1) / l(r=1k)\n.dc Source1 i 1m 10m 1m\n")
	require.NoError(t, err)
	assert.Equal(t, quantity.I, data.DCParam.Quantity)
	assert.InDelta(t, 10e-3, data.DCParam.Stop, 1e-15)

	data, err = Parse("op\nl(r=1)\n.op\n")
	require.NoError(t, err)
	assert.Equal(t, AnalysisOP, data.Analysis)

	for _, bad := range []string{".ac dec 5 10 100", ".dc Source1 1", ".dc Source1 q 0 1 1", ".dc Source1 0 x 1"} {
		_, err := Parse("bad\n" + bad + "\n")
		assert.Error(t, err, bad)
	}
}
