// Package conical implements the Taylor-Maccoll equation for
// self-similar, irrotational, inviscid supersonic flow behind an
// attached conical shock, together with its post-shock initial
// conditions and derived surface quantities.
package conical

import (
	"fmt"
	"math"

	"github.com/wrosendoeng/coneflow/internal/flow"
)

// singularTol bounds how close the governing denominator may approach
// zero before the evaluation is rejected as a limit-line crossing.
const singularTol = 1e-10

// Field is the Taylor-Maccoll ODE right-hand side over the state
// (Vr, Vtheta), with the polar ray angle theta as the independent
// variable:
//
//	dVr/dtheta     = Vtheta
//	dVtheta/dtheta = [ (gamma-1)/2 (1-v^2)(2 Vr + Vtheta cot(theta))
//	                   - Vr Vtheta^2 ] /
//	                 [ Vtheta^2 + (gamma-1)/2 (v^2 - 1) ]
//
// where v^2 = Vr^2 + Vtheta^2 with velocities normalized by the
// maximum speed.
type Field struct {
	Gamma float64
}

func NewField(gamma float64) Field {
	return Field{Gamma: gamma}
}

// Derive implements flow.Field. It fails with flow.ErrSingularity when
// the governing denominator magnitude drops below 1e-10 (limit line)
// or when theta is at or below zero, where cot(theta) is undefined.
func (f Field) Derive(theta float64, y flow.State) (flow.State, error) {
	if len(y) != 2 {
		return nil, fmt.Errorf("%w: want 2 components, got %d", flow.ErrInvalidState, len(y))
	}

	sinTheta := math.Sin(theta)
	if theta <= 0 || math.Abs(sinTheta) < singularTol {
		return nil, fmt.Errorf("%w: cot(theta) undefined at theta=%.6f rad", flow.ErrSingularity, theta)
	}

	var (
		vr = y[flow.VR]
		vt = y[flow.VT]
		v2 = vr*vr + vt*vt
		gm = 0.5 * (f.Gamma - 1)
	)

	denom := vt*vt + gm*(v2-1)
	if math.Abs(denom) < singularTol {
		return nil, fmt.Errorf("%w: limit line reached at theta=%.6f rad (denominator %.3e)", flow.ErrSingularity, theta, denom)
	}

	cot := math.Cos(theta) / sinTheta
	dvt := (gm*(1-v2)*(2*vr+vt*cot) - vr*vt*vt) / denom

	return flow.State{vt, dvt}, nil
}
