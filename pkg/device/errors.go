package device

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/edp1096/lilacs/pkg/quantity"
)

// ErrInconsistent marks a network whose held values break at least one law.
var ErrInconsistent = errors.New("device: values violate a law")

// Violation is one law whose recomputed result disagrees with the stored one.
type Violation struct {
	Node       string
	Deps       quantity.Set
	Result     quantity.Quantity
	Stored     complex128
	Recomputed complex128
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s -> %s: %s != %s",
		v.Node, v.Deps, v.Result, formatComplex(v.Stored), formatComplex(v.Recomputed))
}

func formatComplex(x complex128) string {
	if imag(x) == 0 {
		return strconv.FormatFloat(real(x), 'g', -1, 64)
	}
	return strconv.FormatComplex(x, 'g', -1, 128)
}

// VerificationError lists every violated law found in a tree.
type VerificationError struct {
	Violations []Violation
}

func (e *VerificationError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, fmt.Sprintf("%d law violation(s)", len(e.Violations)))
	for _, v := range e.Violations {
		lines = append(lines, "  "+v.String())
	}
	return strings.Join(lines, "\n")
}

func (e *VerificationError) Unwrap() error {
	return ErrInconsistent
}

// Verify checks n and its descendants against every applicable law using
// the default tolerance.
func Verify(n Node) error {
	return VerifyWithin(n, quantity.DefaultTolerance)
}

func VerifyWithin(n Node, tol quantity.Tolerance) error {
	violations := n.Check(tol)
	if len(violations) == 0 {
		return nil
	}
	return &VerificationError{Violations: violations}
}
