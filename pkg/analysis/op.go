package analysis

import (
	"errors"
	"fmt"

	"github.com/edp1096/lilacs/pkg/circuit"
	"github.com/edp1096/lilacs/pkg/device"
)

// OperatingPoint solves a network to its fixed point and optionally verifies
// the result.
type OperatingPoint struct{ BaseAnalysis }

func NewOP(opts ...Option) *OperatingPoint {
	return &OperatingPoint{
		BaseAnalysis: *NewBaseAnalysis(opts...),
	}
}

func (op *OperatingPoint) Setup(root device.Node) error {
	if root == nil {
		return errors.New("no network to solve")
	}
	op.Root = root
	return nil
}

// boundedSolver is implemented by sub-networks.
type boundedSolver interface {
	SolveWithin(maxPasses int) (bool, error)
}

func (op *OperatingPoint) Execute() error {
	if op.Root == nil {
		return errors.New("analysis not set up")
	}
	log := op.logger.With("network", op.Root.Name())

	maxPasses := op.convergence.maxPasses
	if maxPasses <= 0 {
		maxPasses = circuit.PassLimit(op.Root)
	}

	if s, ok := op.Root.(boundedSolver); ok {
		changed, err := s.SolveWithin(maxPasses)
		if err != nil {
			return fmt.Errorf("solving %s: %w", op.Root.Name(), err)
		}
		log.Debug("solved", "changed", changed, "max_passes", maxPasses)
	} else {
		changed := op.Root.Solve()
		log.Debug("solved", "changed", changed)
	}
	if c, ok := op.Root.(*circuit.Circuit); ok {
		if err := c.Err(); err != nil {
			return fmt.Errorf("solving %s: %w", op.Root.Name(), err)
		}
	}

	op.StoreResults()

	if missing := op.Unresolved(); len(missing) > 0 {
		log.Warn("network is under-determined", "unresolved", missing)
	}

	if op.verify {
		if err := device.VerifyWithin(op.Root, op.Tolerance()); err != nil {
			log.Error("verification failed", "error", err)
			return fmt.Errorf("verifying %s: %w", op.Root.Name(), err)
		}
		log.Debug("verified")
	}

	return nil
}
