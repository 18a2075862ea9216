package analysis

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/edp1096/lilacs/internal/consts"
	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

type Analysis interface {
	Setup(root device.Node) error
	Execute() error
	GetResults() map[string]complex128
}

type BaseAnalysis struct {
	Root        device.Node
	logger      *slog.Logger
	results     map[string]complex128 // key: quantity(node), e.g. E(Load1)
	convergence struct {
		maxPasses int // 0 selects circuit.PassLimit
		abstol    float64
		reltol    float64
	}
	verify bool
}

type Option func(*BaseAnalysis)

func WithLogger(logger *slog.Logger) Option {
	return func(a *BaseAnalysis) { a.logger = logger }
}

func WithTolerance(reltol, abstol float64) Option {
	return func(a *BaseAnalysis) {
		a.convergence.reltol = reltol
		a.convergence.abstol = abstol
	}
}

func WithMaxPasses(n int) Option {
	return func(a *BaseAnalysis) { a.convergence.maxPasses = n }
}

// WithVerify makes Execute fail when the solved values break a law.
func WithVerify(verify bool) Option {
	return func(a *BaseAnalysis) { a.verify = verify }
}

func NewBaseAnalysis(opts ...Option) *BaseAnalysis {
	ba := &BaseAnalysis{
		logger:  slog.Default(),
		results: make(map[string]complex128),
	}

	ba.convergence.abstol = consts.ABSTOL
	ba.convergence.reltol = consts.RELTOL

	for _, opt := range opts {
		opt(ba)
	}
	return ba
}

func (a *BaseAnalysis) Tolerance() quantity.Tolerance {
	return quantity.Tolerance{Rel: a.convergence.reltol, Abs: a.convergence.abstol}
}

// StoreResults records every known quantity of the tree.
func (a *BaseAnalysis) StoreResults() {
	walk(a.Root, func(n device.Node) {
		vals := n.Values()
		for _, q := range vals.Known().Quantities() {
			v, _ := vals.Get(q)
			a.results[Key(q, n.Name())] = v
		}
	})
}

func (a *BaseAnalysis) GetResults() map[string]complex128 {
	return a.results
}

// Unresolved lists the E, I, Z, P slots still unknown after solving, sorted.
// An under-determined network is not an error.
func (a *BaseAnalysis) Unresolved() []string {
	var missing []string
	primary := quantity.SetOf(quantity.E, quantity.I, quantity.Z, quantity.P)
	walk(a.Root, func(n device.Node) {
		for _, q := range (n.Values().Unknown() & primary).Quantities() {
			missing = append(missing, Key(q, n.Name()))
		}
	})
	sort.Strings(missing)
	return missing
}

// Point is one solved step of a sweep.
type Point struct {
	Value   float64
	Results map[string]complex128
}

// overrider is implemented by every component and circuit.
type overrider interface {
	Override(q quantity.Quantity, x complex128) (restore func())
}

// sweep solves the tree once per value with q of target forced to that
// value. The tree is left reset, holding its own given values only.
func (a *BaseAnalysis) sweep(target device.Node, q quantity.Quantity, values []float64) ([]Point, error) {
	o, ok := target.(overrider)
	if !ok {
		return nil, fmt.Errorf("%s cannot be swept", target.Name())
	}
	defer a.Root.Reset()

	points := make([]Point, 0, len(values))
	for _, v := range values {
		restore := o.Override(q, complex(v, 0))
		a.Root.Reset()

		op := &OperatingPoint{BaseAnalysis: *a}
		op.results = make(map[string]complex128)
		err := op.Execute()
		restore()
		if err != nil {
			return points, fmt.Errorf("%s(%s)=%g: %w", q, target.Name(), v, err)
		}
		points = append(points, Point{Value: v, Results: op.results})
		a.results = op.results
	}
	return points, nil
}

// find returns the node called name in the subtree of n.
func find(n device.Node, name string) device.Node {
	var found device.Node
	walk(n, func(node device.Node) {
		if found == nil && node.Name() == name {
			found = node
		}
	})
	return found
}

// Key names one result, e.g. I(Load2).
func Key(q quantity.Quantity, node string) string {
	return fmt.Sprintf("%s(%s)", q, node)
}

func walk(n device.Node, fn func(device.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children() {
		walk(child, fn)
	}
}
