package simplex

import "github.com/pkg/errors"

var (
	ErrNilProblem      = errors.New("simplex: nil problem")
	ErrShape           = errors.New("simplex: tableau shape mismatch")
	ErrNotCanonical    = errors.New("simplex: tableau is not in canonical form")
	ErrInfeasibleStart = errors.New("simplex: initial basis is not feasible")
	ErrZeroPivot       = errors.New("simplex: zero pivot")
	ErrUnknownRule     = errors.New("simplex: unknown pivoting rule")

	// Terminal states other than Optimal, as errors.
	ErrUnbounded      = errors.New("simplex: problem is unbounded")
	ErrInfeasible     = errors.New("simplex: problem is infeasible")
	ErrIterationLimit = errors.New("simplex: iteration limit reached")
)
