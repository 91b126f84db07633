// Package shooting converts the Taylor-Maccoll boundary-value problem
// into a sequence of initial-value problems: a Newton-Raphson root
// finder adjusts the trial shock angle until the integrated flow
// becomes purely radial at the target cone half-angle.
package shooting

import (
	"fmt"
	"math"
	"sync"

	"github.com/wrosendoeng/coneflow/internal/flow"
)

// Status tracks the root finder's state machine:
// Initialized -> Iterating -> {Converged, MaxIterations, SingularDerivative}.
type Status int

const (
	StatusInitialized Status = iota
	StatusIterating
	StatusConverged
	StatusMaxIterations
	StatusSingularDerivative
)

func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusIterating:
		return "iterating"
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max iterations"
	case StatusSingularDerivative:
		return "singular derivative"
	}
	return "unknown"
}

// ResidualFunc evaluates the boundary residual at a trial parameter.
type ResidualFunc func(x float64) (float64, error)

// RootResult reports one Newton-Raphson run.
type RootResult struct {
	Root       float64
	Residual   float64
	Iterations int
	Status     Status
}

// derivTol is the threshold below which the finite-difference
// derivative counts as numerically zero.
const derivTol = 1e-14

// FindRoot runs Newton-Raphson with a central finite-difference
// derivative, h = sqrt(machine epsilon) * max(1, |x|). The two probe
// evaluations are independent and run concurrently. Terminal
// conditions: |F(x)| < tol, the iteration budget, or a numerically
// zero derivative. No trial value is ever re-evaluated after a
// residual error; the error is surfaced to the caller.
func FindRoot(f ResidualFunc, guess, tol float64, maxIter int) (RootResult, error) {
	if tol <= 0 || maxIter <= 0 {
		return RootResult{}, fmt.Errorf("%w: tolerance and iteration budget must be positive", flow.ErrInvalidConfiguration)
	}

	res := RootResult{Root: guess, Status: StatusInitialized}
	x := guess

	for i := 0; i < maxIter; i++ {
		fx, err := f(x)
		if err != nil {
			return res, fmt.Errorf("residual at %.9f: %w", x, err)
		}
		res.Status = StatusIterating
		res.Root = x
		res.Residual = fx
		res.Iterations = i + 1

		if math.Abs(fx) < tol {
			res.Status = StatusConverged
			return res, nil
		}

		h := math.Sqrt(machineEps) * math.Max(1, math.Abs(x))
		fp, fm, err := probe(f, x, h)
		if err != nil {
			return res, fmt.Errorf("probe near %.9f: %w", x, err)
		}

		deriv := (fp - fm) / (2 * h)
		if math.Abs(deriv) < derivTol {
			res.Status = StatusSingularDerivative
			return res, fmt.Errorf("%w: F'=%.3e at guess %.9f", flow.ErrDerivativeSingularity, deriv, x)
		}

		x -= fx / deriv
	}

	res.Status = StatusMaxIterations
	return res, fmt.Errorf("%w: %d Newton iterations, residual %.3e at %.9f", flow.ErrNonConvergence, maxIter, res.Residual, res.Root)
}

var machineEps = math.Nextafter(1, 2) - 1

// probe evaluates f at x+h and x-h concurrently.
func probe(f ResidualFunc, x, h float64) (fp, fm float64, err error) {
	var (
		wg         sync.WaitGroup
		errP, errM error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		fp, errP = f(x + h)
	}()
	go func() {
		defer wg.Done()
		fm, errM = f(x - h)
	}()
	wg.Wait()

	if errP != nil {
		return 0, 0, errP
	}
	if errM != nil {
		return 0, 0, errM
	}
	return fp, fm, nil
}
