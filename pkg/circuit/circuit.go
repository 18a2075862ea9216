package circuit

import (
	"errors"
	"fmt"

	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

// ErrNoFixedPoint is reported when solving keeps producing values past the
// pass limit. The standard laws cannot cause it.
var ErrNoFixedPoint = errors.New("circuit: no fixed point within pass limit")

// Circuit is a sub-network. Its own values are the aggregate quantities and
// its children carry the per-branch ones.
type Circuit struct {
	*device.Component
	topology Topology
	nodes    []device.Node
	err      error
}

func New(topo Topology, name string, given quantity.Values, opts ...device.Option) *Circuit {
	return &Circuit{
		Component: device.NewComponent(topo.Kind(), name, given, opts...),
		topology:  topo,
	}
}

func NewSeries(n *device.Namer, given quantity.Values, nodes ...device.Node) *Circuit {
	c := New(Series(), n.Next(device.Series), given)
	return c.Add(nodes...)
}

func NewParallel(n *device.Namer, given quantity.Values, nodes ...device.Node) *Circuit {
	c := New(Parallel(), n.Next(device.Parallel), given)
	return c.Add(nodes...)
}

// Add appends children and returns c for chaining.
func (c *Circuit) Add(nodes ...device.Node) *Circuit {
	c.nodes = append(c.nodes, nodes...)
	return c
}

func (c *Circuit) Kind() device.Kind { return c.topology.Kind() }

func (c *Circuit) Children() []device.Node { return c.nodes }

func (c *Circuit) Topology() Topology { return c.topology }

// Loads returns every child that is not a source.
func (c *Circuit) Loads() []device.Node {
	loads := make([]device.Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if n.Kind() != device.Source {
			loads = append(loads, n)
		}
	}
	return loads
}

func (c *Circuit) Sources() []device.Node {
	var sources []device.Node
	for _, n := range c.nodes {
		if n.Kind() == device.Source {
			sources = append(sources, n)
		}
	}
	return sources
}

// Solve runs passes until the subtree reaches a fixed point. A run that
// exhausts PassLimit stops early and leaves its error in Err.
func (c *Circuit) Solve() bool {
	changed, err := c.SolveWithin(PassLimit(c))
	if err != nil {
		c.err = err
	}
	return changed
}

// SolveWithin runs at most maxPasses passes.
func (c *Circuit) SolveWithin(maxPasses int) (bool, error) {
	changed := false
	for i := 0; i < maxPasses; i++ {
		if !c.pass() {
			return changed, nil
		}
		changed = true
	}
	if c.pass() {
		return true, fmt.Errorf("%s after %d passes: %w", c.Name(), maxPasses, ErrNoFixedPoint)
	}
	return changed, nil
}

// pass runs the engine on this node and every child, then the topology
// rules once.
func (c *Circuit) pass() bool {
	changed := c.Component.Solve()
	for _, n := range c.nodes {
		if n.Solve() {
			changed = true
		}
	}
	if c.topology.Propagate(c) {
		changed = true
	}
	return changed
}

// Err returns the first pass-limit error recorded anywhere in the subtree.
func (c *Circuit) Err() error {
	if c.err != nil {
		return c.err
	}
	for _, n := range c.nodes {
		if sub, ok := n.(*Circuit); ok {
			if err := sub.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reset clears derived values in the subtree along with any recorded error.
func (c *Circuit) Reset() {
	c.Component.Reset()
	for _, n := range c.nodes {
		n.Reset()
	}
	c.err = nil
}

func (c *Circuit) Check(tol quantity.Tolerance) []device.Violation {
	violations := c.Component.Check(tol)
	for _, n := range c.nodes {
		violations = append(violations, n.Check(tol)...)
	}
	return violations
}

func (c *Circuit) Verify() error {
	return device.Verify(c)
}

// PassLimit bounds the passes needed by the subtree of n: every productive
// pass fills at least one slot.
func PassLimit(n device.Node) int {
	limit := n.Values().Unknown().Len() + 1
	for _, child := range n.Children() {
		limit += PassLimit(child)
	}
	return limit
}

func (c *Circuit) propagateConstant(q quantity.Quantity, group []device.Node) bool {
	changed := false
	self := c.Values()
	if !self.Has(q) {
		for _, n := range group {
			if x, ok := n.Values().Get(q); ok {
				self.Assign(q, x)
				changed = true
				break
			}
		}
	}
	x, ok := self.Get(q)
	if !ok {
		return changed
	}
	for _, n := range group {
		if n.Values().Fill(q, x) {
			changed = true
		}
	}
	return changed
}

func (c *Circuit) propagateLinear(q quantity.Quantity, combine func(complex128) complex128) bool {
	loads := c.Loads()
	if len(loads) == 0 {
		return false
	}
	var sum complex128
	var missing []device.Node
	for _, n := range loads {
		if x, ok := n.Values().Get(q); ok {
			sum += combine(x)
		} else {
			missing = append(missing, n)
		}
	}

	self := c.Values()
	total, known := self.Get(q)
	switch {
	case !known && len(missing) == 0:
		x := combine(sum)
		if !quantity.Finite(x) {
			return false
		}
		self.Assign(q, x)
		return true
	case known && len(missing) == 1:
		x := combine(combine(total) - sum)
		if !quantity.Finite(x) {
			return false
		}
		return missing[0].Values().Fill(q, x)
	}
	return false
}
