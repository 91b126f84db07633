// Package sweep runs independent conical-flow solves concurrently.
// Each case is a self-contained computation over value types, so the
// only coordination needed is a WaitGroup.
package sweep

import (
	"context"
	"math"
	"sync"

	"github.com/wrosendoeng/coneflow/internal/shooting"
)

// Case is one independent solve: free-stream Mach, target cone
// half-angle (radians), specific-heat ratio and the initial shock
// angle guess. A zero Guess selects the built-in heuristic.
type Case struct {
	Mach      float64
	ConeAngle float64
	Gamma     float64
	Guess     float64
}

// Outcome pairs a case with its solve result or error.
type Outcome struct {
	Case   Case
	Result shooting.Result
	Err    error
}

// GuessShockAngle picks a starting shock angle between the Mach angle
// and the wave angle of a comparable wedge: comfortably above the weak
// limit, scaling with the cone half-angle.
func GuessShockAngle(mach, halfAngle float64) float64 {
	mu := math.Asin(1 / mach)
	return math.Max(1.05*mu, halfAngle+0.8*mu)
}

// Run solves every case, one goroutine per case. Cases not yet started
// when ctx is canceled report ctx.Err(); running solves finish (each is
// a short, bounded CPU loop).
func Run(ctx context.Context, cases []Case) []Outcome {
	outcomes := make([]Outcome, len(cases))

	var wg sync.WaitGroup
	for i, c := range cases {
		wg.Add(1)
		go func(idx int, c Case) {
			defer wg.Done()
			outcomes[idx] = Outcome{Case: c}

			if err := ctx.Err(); err != nil {
				outcomes[idx].Err = err
				return
			}

			guess := c.Guess
			if guess == 0 {
				guess = GuessShockAngle(c.Mach, c.ConeAngle)
			}
			solver := shooting.NewSolver(c.Mach, c.Gamma)
			outcomes[idx].Result, outcomes[idx].Err = solver.Solve(c.ConeAngle, guess)
		}(i, c)
	}
	wg.Wait()

	return outcomes
}

// MachRange expands [lo, hi] with the given increment into sweep cases
// at a fixed cone angle and gamma.
func MachRange(lo, hi, step, coneAngle, gamma float64) []Case {
	if step <= 0 || hi < lo {
		return nil
	}
	var cases []Case
	for m := lo; m <= hi+1e-12; m += step {
		cases = append(cases, Case{Mach: m, ConeAngle: coneAngle, Gamma: gamma})
	}
	return cases
}
