package consts

import "math"

const (
	TWOPI = 2 * math.Pi // Angular frequency factor (rad/cycle)

	RELTOL = 1e-9  // Default relative tolerance for law verification
	ABSTOL = 1e-12 // Default absolute tolerance for law verification

	DEGREE = 180 / math.Pi // Radian to degree
)
