package device

import (
	"github.com/edp1096/lilacs/pkg/law"
	"github.com/edp1096/lilacs/pkg/quantity"
)

type Kind int

const (
	Load Kind = iota
	Source
	Series
	Parallel
)

func (k Kind) String() string {
	switch k {
	case Load:
		return "Load"
	case Source:
		return "Source"
	case Series:
		return "Series"
	case Parallel:
		return "Parallel"
	}
	return "Unknown"
}

// Leaf reports whether nodes of kind k never own children.
func (k Kind) Leaf() bool { return k == Load || k == Source }

// Node is one element of a network tree, a leaf or a sub-network.
type Node interface {
	Name() string
	Kind() Kind
	Values() *quantity.Values
	Given() quantity.Set
	Children() []Node
	// Solve fills whatever it can and reports whether anything changed.
	Solve() bool
	// Check recomputes held quantities and returns every mismatch in the
	// subtree rooted at this node.
	Check(tol quantity.Tolerance) []Violation
	// Reset drops every derived value in the subtree, keeping given ones.
	Reset()
}

// Component is a leaf node and the quantity engine shared by every node.
type Component struct {
	name   string
	kind   Kind
	values quantity.Values
	given  quantity.Set
	laws   *law.Registry
}

type Option func(*Component)

// WithLaws replaces the standard law table.
func WithLaws(reg *law.Registry) Option {
	return func(c *Component) { c.laws = reg }
}

// NewComponent builds a node whose given set is exactly the quantities known
// in given.
func NewComponent(kind Kind, name string, given quantity.Values, opts ...Option) *Component {
	c := &Component{
		name:   name,
		kind:   kind,
		values: given,
		given:  given.Known(),
		laws:   law.Standard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewLoad(n *Namer, given quantity.Values, opts ...Option) *Component {
	return NewComponent(Load, n.Next(Load), given, opts...)
}

func NewSource(n *Namer, given quantity.Values, opts ...Option) *Component {
	return NewComponent(Source, n.Next(Source), given, opts...)
}

func (c *Component) Name() string { return c.name }

func (c *Component) Kind() Kind { return c.kind }

func (c *Component) Values() *quantity.Values { return &c.values }

func (c *Component) Given() quantity.Set { return c.given }

func (c *Component) Children() []Node { return nil }

func (c *Component) Laws() *law.Registry { return c.laws }

// Solve assigns every unknown quantity for which some law has all of its
// dependencies on this node. The first law that yields a result wins. Passes
// repeat while they make progress and unknowns remain.
func (c *Component) Solve() bool {
	changed := false
	for {
		progress := false
		for _, q := range c.values.Unknown().Quantities() {
			for _, l := range c.laws.Lookup(q) {
				x, ok := l.Apply(&c.values)
				if !ok {
					continue
				}
				c.values.Assign(q, x)
				progress = true
				break
			}
		}
		if !progress {
			return changed
		}
		changed = true
		if c.values.Unknown() == 0 {
			return changed
		}
	}
}

func (c *Component) Check(tol quantity.Tolerance) []Violation {
	var violations []Violation
	for _, q := range c.values.Known().Quantities() {
		stored, _ := c.values.Get(q)
		for _, l := range c.laws.Lookup(q) {
			x, ok := l.Apply(&c.values)
			if !ok {
				continue
			}
			if !l.Satisfied(stored, x, tol) {
				violations = append(violations, Violation{
					Node:       c.name,
					Deps:       l.Deps,
					Result:     q,
					Stored:     stored,
					Recomputed: x,
				})
			}
		}
	}
	return violations
}

func (c *Component) Reset() {
	var v quantity.Values
	for _, q := range c.given.Quantities() {
		x, _ := c.values.Get(q)
		v.Assign(q, x)
	}
	c.values = v
}

// Override makes x the given value of q until restore is called. Derived
// values are left alone; Reset the tree before solving again.
func (c *Component) Override(q quantity.Quantity, x complex128) (restore func()) {
	old, had := c.values.Get(q)
	wasGiven := c.given.Has(q)
	c.given = c.given.Add(q)
	c.values.Assign(q, x)
	return func() {
		switch {
		case wasGiven:
			c.values.Assign(q, old)
		case had:
			c.given &^= quantity.SetOf(q)
			c.values.Assign(q, old)
		default:
			c.given &^= quantity.SetOf(q)
			c.values.Clear(q)
		}
	}
}

// Verify checks the subtree with the default tolerance.
func (c *Component) Verify() error {
	return Verify(c)
}
