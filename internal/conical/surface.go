package conical

import (
	"math"

	"github.com/wrosendoeng/coneflow/internal/flow"
	"github.com/wrosendoeng/coneflow/internal/shock"
)

// Surface holds quantities recovered on the cone surface from a
// converged trace: the local Mach number and the surface pressure
// coefficient referenced to the free stream.
type Surface struct {
	Mach          float64
	PressureRatio float64 // cone-surface static pressure over free-stream
	PressureCoeff float64
	SpeedRatio    float64 // surface speed over maximum speed
	ConeAngle     float64 // ray angle of the surface, radians
}

// SurfaceConditions evaluates the surface state at the last trace row.
// Flow behind the shock is isentropic, so the surface pressure follows
// from the shock static-pressure jump and the isentropic relation
// between the post-shock and surface Mach numbers.
func SurfaceConditions(fs flow.FreeStream, js shock.Result, tr *flow.Trace) Surface {
	theta, y := tr.Last()
	var (
		g  = fs.Gamma
		v  = y.Speed()
		mc = flow.LocalMach(v, g)
		m2 = js.MachDownstream
	)

	isentropic := math.Pow((1+0.5*(g-1)*m2*m2)/(1+0.5*(g-1)*mc*mc), g/(g-1))
	pRatio := js.PressureRatio * isentropic

	return Surface{
		Mach:          mc,
		PressureRatio: pRatio,
		PressureCoeff: (pRatio - 1) / (0.5 * g * fs.Mach * fs.Mach),
		SpeedRatio:    v,
		ConeAngle:     theta,
	}
}
