package util

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/edp1096/lilacs/internal/consts"
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

// ErrReactiveWithoutFrequency is returned when a value with a reactive part
// is displayed on a node whose drive frequency is unknown.
var ErrReactiveWithoutFrequency = errors.New("reactive quantity requires an AC frequency to display")

var prefixes = strings.NewReplacer("µ", "u", "μ", "u")

// FormatMagnitude renders value with three significant digits and an SI
// prefix, e.g. 0.003517 -> 3.52mA.
func FormatMagnitude(value float64, unit string) string {
	if value == 0 {
		return "0" + unit
	}
	scaled, prefix := humanize.ComputeSI(roundSignificant(value, 3))
	return fmt.Sprintf("%.3g%s%s", scaled, prefixes.Replace(prefix), unit)
}

// FormatPhase renders an angle in degrees, e.g. ∠-45°.
func FormatPhase(deg float64) string {
	// rounding residue of a real value must not print as 1e-15°
	deg = math.Round(deg*1e6) / 1e6
	if deg == 0 {
		deg = 0 // drop the sign of -0
	}
	return fmt.Sprintf("∠%.3g°", deg)
}

// FormatQuantity renders q as read from vals, e.g. I=28.3A∠-45°.
func FormatQuantity(q quantity.Quantity, vals *quantity.Values) (string, error) {
	v, ok := vals.Get(q)
	if !ok {
		return q.String() + "=?", nil
	}
	text, err := formatValue(q, v, vals.Has(quantity.F))
	if err != nil {
		return "", err
	}
	return q.String() + "=" + text, nil
}

// FormatResult renders one entry of an analysis result map keyed like
// I(Load1). Phasors print in polar form when the same node has F.
func FormatResult(key string, results map[string]complex128) (string, error) {
	open := strings.IndexByte(key, '(')
	if open < 0 || !strings.HasSuffix(key, ")") {
		return "", fmt.Errorf("malformed result key %q", key)
	}
	q, ok := quantity.Lookup(key[:open])
	if !ok {
		return "", fmt.Errorf("unknown quantity in %q", key)
	}
	v, ok := results[key]
	if !ok {
		return key + "=?", nil
	}
	_, ac := results["F"+key[open:]]
	text, err := formatValue(q, v, ac)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return key + "=" + text, nil
}

func formatValue(q quantity.Quantity, v complex128, ac bool) (string, error) {
	if !ac && imag(v) != 0 {
		return "", fmt.Errorf("%s=%v: %w", q, v, ErrReactiveWithoutFrequency)
	}
	if ac && q.Phased() {
		mag, angle := cmplx.Polar(v)
		return FormatMagnitude(mag, q.Unit()) + FormatPhase(angle*consts.DEGREE), nil
	}
	return FormatMagnitude(real(v), q.Unit()), nil
}

// Shown quantities per kind. Optional ones only appear once known.
var display = map[device.Kind]struct {
	show     []quantity.Quantity
	optional []quantity.Quantity
}{
	device.Load:     {show: []quantity.Quantity{quantity.E, quantity.I, quantity.Z, quantity.P}, optional: []quantity.Quantity{quantity.L, quantity.C}},
	device.Source:   {show: []quantity.Quantity{quantity.E, quantity.I, quantity.P}, optional: []quantity.Quantity{quantity.F}},
	device.Series:   {show: []quantity.Quantity{quantity.E, quantity.I, quantity.P}},
	device.Parallel: {show: []quantity.Quantity{quantity.E, quantity.I, quantity.P}},
}

// FormatLine renders one node without its children.
func FormatLine(n device.Node) (string, error) {
	d := display[n.Kind()]
	vals := n.Values()
	parts := make([]string, 0, len(d.show)+len(d.optional))
	for _, q := range d.show {
		s, err := FormatQuantity(q, vals)
		if err != nil {
			return "", fmt.Errorf("%s: %w", n.Name(), err)
		}
		parts = append(parts, s)
	}
	for _, q := range d.optional {
		if !vals.Has(q) {
			continue
		}
		s, err := FormatQuantity(q, vals)
		if err != nil {
			return "", fmt.Errorf("%s: %w", n.Name(), err)
		}
		parts = append(parts, s)
	}
	return fmt.Sprintf("%s( %s )", n.Name(), strings.Join(parts, ", ")), nil
}

// FormatNode renders n and its descendants, one line each, children
// indented two spaces per level.
func FormatNode(n device.Node) (string, error) {
	var sb strings.Builder
	if err := formatTree(&sb, n, ""); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatTree(sb *strings.Builder, n device.Node, indent string) error {
	line, err := FormatLine(n)
	if err != nil {
		return err
	}
	sb.WriteString(line)
	indent += "  "
	for _, child := range n.Children() {
		sb.WriteString("\n" + indent)
		if err := formatTree(sb, child, indent); err != nil {
			return err
		}
	}
	return nil
}

func roundSignificant(value float64, digits int) float64 {
	if value == 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return value
	}
	scale := math.Pow(10, float64(digits-1)-math.Floor(math.Log10(math.Abs(value))))
	return math.Round(value*scale) / scale
}
