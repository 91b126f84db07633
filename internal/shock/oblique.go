// Package shock implements the closed-form oblique-shock jump
// relations (NACA TR-1135 forms) for a straight shock inclined to a
// supersonic free stream.
package shock

import (
	"fmt"
	"math"

	"github.com/wrosendoeng/coneflow/internal/flow"
)

// Result holds the post-shock state produced by Solve. Ratios are
// downstream over upstream.
type Result struct {
	Deflection       float64 // flow turning angle delta, radians
	MachDownstream   float64 // M2, resolved in the deflected direction
	MachNormal       float64 // upstream normal Mach M1*sin(beta)
	DensityRatio     float64
	PressureRatio    float64
	TemperatureRatio float64
}

const denomTol = 1e-14

// Solve evaluates the jump conditions for the given free stream.
// It fails with flow.ErrInvalidConfiguration when the configuration
// admits no attached shock (normal Mach at or below 1) and guards the
// closed-form denominators against numerical zeroes.
func Solve(fs flow.FreeStream) (Result, error) {
	if err := fs.Validate(); err != nil {
		return Result{}, err
	}

	var (
		g    = fs.Gamma
		beta = fs.ShockAngle
		mn1  = fs.Mach * math.Sin(beta)
		mn2  = mn1 * mn1
	)
	if mn1 <= 1 {
		return Result{}, fmt.Errorf("%w: normal Mach %g admits no shock", flow.ErrInvalidConfiguration, mn1)
	}

	res := Result{MachNormal: mn1}
	res.DensityRatio = (g + 1) * mn2 / (2 + (g-1)*mn2)
	res.PressureRatio = 1 + 2*g/(g+1)*(mn2-1)
	res.TemperatureRatio = res.PressureRatio / res.DensityRatio

	postDenom := g*mn2 - 0.5*(g-1)
	if math.Abs(postDenom) < denomTol {
		return Result{}, fmt.Errorf("%w: degenerate post-shock normal Mach denominator", flow.ErrInvalidConfiguration)
	}
	machNormal2 := math.Sqrt((1 + 0.5*(g-1)*mn2) / postDenom)

	// theta-beta-M relation, NACA TR-1135 eq. 138.
	deflDenom := fs.Mach*fs.Mach*(g+math.Cos(2*beta)) + 2
	if math.Abs(deflDenom) < denomTol {
		return Result{}, fmt.Errorf("%w: degenerate deflection denominator", flow.ErrInvalidConfiguration)
	}
	res.Deflection = math.Atan(2 / math.Tan(beta) * (mn2 - 1) / deflDenom)

	resolve := math.Sin(beta - res.Deflection)
	if math.Abs(resolve) < denomTol {
		return Result{}, fmt.Errorf("%w: wave and deflected flow are parallel", flow.ErrInvalidConfiguration)
	}
	res.MachDownstream = machNormal2 / resolve

	return res, nil
}
