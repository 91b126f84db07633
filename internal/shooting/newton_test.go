package shooting

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/wrosendoeng/coneflow/internal/flow"
)

func TestFindRootSqrtTwo(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x - 2, nil }

	res, err := FindRoot(f, 1.0, 1e-12, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusConverged {
		t.Errorf("status: got %v", res.Status)
	}
	if math.Abs(res.Root-math.Sqrt2) > 1e-10 {
		t.Errorf("root: got %.12f, want sqrt(2)", res.Root)
	}
	if res.Iterations >= 20 {
		t.Errorf("quadratic convergence expected, took %d iterations", res.Iterations)
	}
}

func TestFindRootSingularDerivative(t *testing.T) {
	flat := func(x float64) (float64, error) { return 1.0, nil }

	res, err := FindRoot(flat, 0.5, 1e-8, 50)
	if !errors.Is(err, flow.ErrDerivativeSingularity) {
		t.Fatalf("want ErrDerivativeSingularity, got %v", err)
	}
	if res.Status != StatusSingularDerivative {
		t.Errorf("status: got %v", res.Status)
	}
}

// Newton diverges on atan from beyond its basin; the iteration budget
// must terminate the run.
func TestFindRootIterationBudget(t *testing.T) {
	f := func(x float64) (float64, error) { return math.Atan(x), nil }

	res, err := FindRoot(f, 1.5, 1e-14, 5)
	if !errors.Is(err, flow.ErrNonConvergence) {
		t.Fatalf("want ErrNonConvergence, got %v", err)
	}
	if res.Status != StatusMaxIterations {
		t.Errorf("status: got %v", res.Status)
	}
	if res.Iterations != 5 {
		t.Errorf("iterations: got %d, want 5", res.Iterations)
	}
}

func TestFindRootSurfacesResidualError(t *testing.T) {
	boom := errors.New("boom")
	f := func(x float64) (float64, error) {
		if x > 1.2 {
			return 0, fmt.Errorf("trial rejected: %w", boom)
		}
		return x - 2, nil // drives the iteration upward
	}

	if _, err := FindRoot(f, 1.0, 1e-10, 50); !errors.Is(err, boom) {
		t.Fatalf("residual error not surfaced: %v", err)
	}
}

func TestFindRootRejectsBadArguments(t *testing.T) {
	f := func(x float64) (float64, error) { return x, nil }
	if _, err := FindRoot(f, 1, 0, 10); !errors.Is(err, flow.ErrInvalidConfiguration) {
		t.Errorf("zero tolerance: want ErrInvalidConfiguration, got %v", err)
	}
	if _, err := FindRoot(f, 1, 1e-8, 0); !errors.Is(err, flow.ErrInvalidConfiguration) {
		t.Errorf("zero budget: want ErrInvalidConfiguration, got %v", err)
	}
}
