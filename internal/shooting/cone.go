package shooting

import (
	"fmt"

	"github.com/wrosendoeng/coneflow/internal/conical"
	"github.com/wrosendoeng/coneflow/internal/flow"
	"github.com/wrosendoeng/coneflow/internal/integrators"
	"github.com/wrosendoeng/coneflow/internal/shock"
)

// Solver finds the shock angle producing a given cone half-angle.
//
// The residual is F(beta) = theta*(beta) - thetaCone, where theta* is
// the ray angle at which the tangential velocity crosses zero,
// linearly interpolated inside the crossing step. Interpolation keeps
// F nearly continuous in beta, which the central finite difference of
// FindRoot relies on.
type Solver struct {
	Mach     float64
	Gamma    float64
	Step     float64 // integration step magnitude, radians
	MaxSteps int
	Tol      float64
	MaxIter  int
}

// NewSolver returns a Solver with the default numerical settings.
func NewSolver(mach, gamma float64) Solver {
	return Solver{
		Mach:     mach,
		Gamma:    gamma,
		Step:     1e-4,
		MaxSteps: 20000,
		Tol:      1e-8,
		MaxIter:  100,
	}
}

// Result is a converged conical-flow solution.
type Result struct {
	ShockAngle float64
	ConeAngle  float64
	Shock      shock.Result
	Surface    conical.Surface
	Trace      *flow.Trace
	Iterations int
	Residual   float64
	Status     Status
}

// Integrate runs one shot at the trial shock angle beta: jump
// conditions, then Taylor-Maccoll integration from the shock toward
// the axis until the tangential velocity vanishes. It returns the
// trace and the interpolated surface ray angle.
func (s Solver) Integrate(beta float64) (*flow.Trace, float64, error) {
	fs := flow.FreeStream{Mach: s.Mach, ShockAngle: beta, Gamma: s.Gamma}
	js, err := shock.Solve(fs)
	if err != nil {
		return nil, 0, err
	}

	theta0, y0 := conical.InitialConditions(fs, js)
	field := conical.NewField(s.Gamma)

	surface := func(theta float64, y flow.State) bool {
		return y[flow.VT] >= 0
	}

	tr, err := integrators.Integrate(integrators.NewRK4(), field, theta0, y0, -s.Step, s.MaxSteps, surface)
	if err != nil {
		return tr, 0, err
	}

	cross, err := crossingAngle(tr)
	if err != nil {
		return tr, 0, err
	}
	return tr, cross, nil
}

// Solve finds the shock angle for the target cone half-angle starting
// from initialGuess (radians). On success the returned Result carries
// the converged shock angle and the trace of a final integration at
// that angle.
func (s Solver) Solve(targetHalfAngle, initialGuess float64) (Result, error) {
	if targetHalfAngle <= 0 {
		return Result{}, fmt.Errorf("%w: cone half-angle %g rad must be positive", flow.ErrInvalidConfiguration, targetHalfAngle)
	}

	residual := func(beta float64) (float64, error) {
		_, cross, err := s.Integrate(beta)
		if err != nil {
			return 0, err
		}
		return cross - targetHalfAngle, nil
	}

	root, err := FindRoot(residual, initialGuess, s.Tol, s.MaxIter)
	if err != nil {
		return Result{Status: root.Status, Iterations: root.Iterations, ShockAngle: root.Root, Residual: root.Residual}, err
	}

	// Re-run at the converged angle so the reported trace, shock state
	// and surface quantities all belong to the root.
	fs := flow.FreeStream{Mach: s.Mach, ShockAngle: root.Root, Gamma: s.Gamma}
	js, err := shock.Solve(fs)
	if err != nil {
		return Result{}, err
	}
	tr, cross, err := s.Integrate(root.Root)
	if err != nil {
		return Result{}, err
	}

	return Result{
		ShockAngle: root.Root,
		ConeAngle:  cross,
		Shock:      js,
		Surface:    conical.SurfaceConditions(fs, js, tr),
		Trace:      tr,
		Iterations: root.Iterations,
		Residual:   root.Residual,
		Status:     root.Status,
	}, nil
}

// crossingAngle interpolates the ray angle where the tangential
// velocity crosses zero, using the last two trace rows.
func crossingAngle(tr *flow.Trace) (float64, error) {
	n := tr.Len()
	if n < 2 {
		return 0, fmt.Errorf("%w: trace too short to locate the cone surface", flow.ErrNonConvergence)
	}
	var (
		t0, t1 = tr.Thetas[n-2], tr.Thetas[n-1]
		v0, v1 = tr.States[n-2][flow.VT], tr.States[n-1][flow.VT]
	)
	if v1 == v0 {
		return t1, nil
	}
	return t0 + (0-v0)*(t1-t0)/(v1-v0), nil
}
