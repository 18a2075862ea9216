package netlist

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/edp1096/lilacs/internal/consts"
	"github.com/edp1096/lilacs/pkg/circuit"
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

var shorthand = participle.MustBuild[Expression](
	participle.Lexer(ShorthandLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseExpr builds one network from a shorthand expression. Names are
// numbered from 1 for each call.
func ParseExpr(expr string) (device.Node, error) {
	ast, err := shorthand.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	b := &builder{namer: device.NewNamer()}
	return b.expression(ast)
}

// builder turns the AST into a tree, naming nodes in evaluation order.
type builder struct {
	namer *device.Namer
}

func (b *builder) expression(e *Expression) (device.Node, error) {
	return b.chain(len(e.Terms), func(i int) (device.Node, error) {
		return b.term(e.Terms[i])
	}, device.Series)
}

func (b *builder) term(t *Term) (device.Node, error) {
	return b.chain(len(t.Factors), func(i int) (device.Node, error) {
		return b.factor(t.Factors[i])
	}, device.Parallel)
}

// chain folds operands left to right. A left operand that already is a
// circuit of the requested kind absorbs the operands that follow it.
func (b *builder) chain(n int, operand func(int) (device.Node, error), kind device.Kind) (device.Node, error) {
	first, err := operand(0)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return first, nil
	}
	acc, ok := first.(*circuit.Circuit)
	absorbing := ok && acc.Kind() == kind
	for i := 1; i < n; i++ {
		next, err := operand(i)
		if err != nil {
			return nil, err
		}
		if !absorbing {
			acc = b.newCircuit(kind, b.namer.Next(kind), quantity.Values{}).Add(first)
			absorbing = true
		}
		acc.Add(next)
	}
	return acc, nil
}

func (b *builder) newCircuit(kind device.Kind, name string, given quantity.Values) *circuit.Circuit {
	if kind == device.Parallel {
		return circuit.New(circuit.Parallel(), name, given)
	}
	return circuit.New(circuit.Series(), name, given)
}

func (b *builder) factor(f *Factor) (device.Node, error) {
	if f.Group != nil {
		return b.expression(f.Group)
	}
	return b.element(f.Element)
}

func (b *builder) element(el *Element) (device.Node, error) {
	var kind device.Kind
	switch strings.ToLower(el.Kind) {
	case "l", "load":
		kind = device.Load
	case "s", "source":
		kind = device.Source
	case "series":
		kind = device.Series
	case "parallel":
		kind = device.Parallel
	default:
		return nil, fmt.Errorf("%s: unknown element %q", el.Pos, el.Kind)
	}

	given, err := params(el.Params)
	if err != nil {
		return nil, err
	}

	if kind.Leaf() {
		if len(el.Children) > 0 {
			return nil, fmt.Errorf("%s: %s cannot have children", el.Pos, kind)
		}
		return device.NewComponent(kind, b.namer.Next(kind), given), nil
	}

	c := b.newCircuit(kind, b.namer.Next(kind), given)
	for _, child := range el.Children {
		n, err := b.expression(child)
		if err != nil {
			return nil, err
		}
		c.Add(n)
	}
	return c, nil
}

func params(ps []*Param) (quantity.Values, error) {
	var given quantity.Values
	for _, p := range ps {
		name := strings.ToUpper(p.Name)
		if name == "R" {
			name = "Z"
		}
		q, ok := quantity.Lookup(name)
		if !ok {
			return given, fmt.Errorf("%s: unknown quantity %q", p.Pos, p.Name)
		}
		if q == quantity.Y {
			return given, fmt.Errorf("%s: admittance is derived only", p.Pos)
		}
		if given.Has(q) {
			return given, fmt.Errorf("%s: %s given twice", p.Pos, q)
		}
		x, err := p.Value.complex()
		if err != nil {
			return given, fmt.Errorf("%s: %s: %w", p.Pos, p.Name, err)
		}
		if q.Real() && imag(x) != 0 {
			return given, fmt.Errorf("%s: %s must be real", p.Pos, q)
		}
		given.Assign(q, x)
	}
	return given, nil
}

func (v *Value) complex() (complex128, error) {
	x, err := parseNumber(v.First.Sign, v.First.Value)
	if err != nil {
		return 0, err
	}
	for _, r := range v.Rest {
		y, err := parseNumber(r.Sign, r.Value)
		if err != nil {
			return 0, err
		}
		x += y
	}
	if v.Angle == nil {
		return x, nil
	}
	angle, err := parseNumber(v.Angle.Sign, v.Angle.Value)
	if err != nil {
		return 0, err
	}
	if imag(x) != 0 || imag(angle) != 0 {
		return 0, fmt.Errorf("polar form takes a real magnitude and angle")
	}
	return cmplx.Rect(real(x), real(angle)/consts.DEGREE), nil
}

// parseNumber reads one token such as 2.2m or 100j.
func parseNumber(sign, token string) (complex128, error) {
	imaginary := strings.HasSuffix(token, "j")
	token = strings.TrimSuffix(token, "j")
	x, err := ParseValue(sign + token)
	if err != nil {
		return 0, err
	}
	if imaginary {
		return complex(0, x), nil
	}
	return complex(x, 0), nil
}
