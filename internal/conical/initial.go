package conical

import (
	"math"

	"github.com/wrosendoeng/coneflow/internal/flow"
	"github.com/wrosendoeng/coneflow/internal/shock"
)

// InitialConditions resolves the post-shock state onto the shock ray.
// The non-dimensional speed follows from the energy equation applied
// to the downstream Mach number; the components are its projections
// along and normal to the ray at the angle (beta - delta). The
// tangential component points toward the cone, hence the sign.
func InitialConditions(fs flow.FreeStream, js shock.Result) (theta0 float64, y flow.State) {
	v := 1 / math.Sqrt(2/((fs.Gamma-1)*js.MachDownstream*js.MachDownstream)+1)
	incl := fs.ShockAngle - js.Deflection
	return fs.ShockAngle, flow.State{v * math.Cos(incl), -v * math.Sin(incl)}
}
