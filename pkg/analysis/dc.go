package analysis

import (
	"errors"
	"fmt"

	"github.com/edp1096/lilacs/pkg/device"
	"github.com/edp1096/lilacs/pkg/quantity"
)

// DCSweep steps one given quantity of a named node across a range and solves
// the network at every step.
type DCSweep struct {
	BaseAnalysis
	nodeName  string            // Node whose quantity is swept
	quantity  quantity.Quantity // Swept quantity
	startVal  float64
	stopVal   float64
	increment float64
	sweepVals []float64 // Generated sweep values
	target    device.Node
	points    []Point
}

func NewDCSweep(node string, q quantity.Quantity, start, stop, increment float64, opts ...Option) *DCSweep {
	dc := &DCSweep{
		BaseAnalysis: *NewBaseAnalysis(opts...),
		nodeName:     node,
		quantity:     q,
		startVal:     start,
		stopVal:      stop,
		increment:    increment,
	}

	// Generate sweep values, stop inclusive
	if increment > 0 {
		for i := 0; ; i++ {
			v := start + float64(i)*increment
			if v > stop+increment*1e-9 {
				break
			}
			dc.sweepVals = append(dc.sweepVals, v)
		}
	}

	return dc
}

func (dc *DCSweep) Setup(root device.Node) error {
	if root == nil {
		return errors.New("no network to sweep")
	}
	if dc.increment <= 0 {
		return fmt.Errorf("sweep increment must be positive: %g", dc.increment)
	}
	if len(dc.sweepVals) == 0 {
		return fmt.Errorf("empty sweep from %g to %g", dc.startVal, dc.stopVal)
	}
	if dc.quantity >= quantity.Count || dc.quantity == quantity.Y {
		return fmt.Errorf("%s cannot be swept", dc.quantity)
	}

	dc.target = find(root, dc.nodeName)
	if dc.target == nil {
		return fmt.Errorf("node %s not found", dc.nodeName)
	}
	dc.Root = root
	return nil
}

func (dc *DCSweep) Execute() error {
	if dc.Root == nil {
		return errors.New("network not set")
	}
	dc.logger.Debug("dc sweep", "node", dc.nodeName, "quantity", dc.quantity, "points", len(dc.sweepVals))

	points, err := dc.sweep(dc.target, dc.quantity, dc.sweepVals)
	dc.points = points
	return err
}

// Points returns every solved step in sweep order.
func (dc *DCSweep) Points() []Point {
	return dc.points
}

// Swept names the swept quantity, e.g. E(Source1).
func (dc *DCSweep) Swept() string {
	return Key(dc.quantity, dc.nodeName)
}
