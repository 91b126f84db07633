package conical

import (
	"errors"
	"math"
	"testing"

	"github.com/wrosendoeng/coneflow/internal/flow"
	"github.com/wrosendoeng/coneflow/internal/shock"
)

func TestDeriveRadialComponent(t *testing.T) {
	f := NewField(1.4)

	y := flow.State{0.69, -0.21}
	dy, err := f.Derive(0.5, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// dVr/dtheta = Vtheta by construction.
	if dy[flow.VR] != y[flow.VT] {
		t.Errorf("dVr/dtheta: got %g, want %g", dy[flow.VR], y[flow.VT])
	}
}

// On the limit line Vt^2 = (gamma-1)/2 (1-v^2) the governing
// denominator vanishes; the evaluator must fail, not emit NaN.
func TestDeriveLimitLine(t *testing.T) {
	f := NewField(1.4)

	vr := 0.8
	vt := -math.Sqrt(0.06) // v^2 = 0.7, denominator exactly zero
	dy, err := f.Derive(0.5, flow.State{vr, vt})
	if !errors.Is(err, flow.ErrSingularity) {
		t.Fatalf("want ErrSingularity, got state %v, err %v", dy, err)
	}
}

func TestDeriveDomain(t *testing.T) {
	f := NewField(1.4)

	if _, err := f.Derive(0, flow.State{0.7, -0.2}); !errors.Is(err, flow.ErrSingularity) {
		t.Errorf("theta=0: want ErrSingularity, got %v", err)
	}
	if _, err := f.Derive(-0.1, flow.State{0.7, -0.2}); !errors.Is(err, flow.ErrSingularity) {
		t.Errorf("theta<0: want ErrSingularity, got %v", err)
	}
	if _, err := f.Derive(0.5, flow.State{0.7}); !errors.Is(err, flow.ErrInvalidState) {
		t.Errorf("short state: want ErrInvalidState, got %v", err)
	}
}

func TestInitialConditions(t *testing.T) {
	fs := flow.FreeStream{Mach: 3.0, ShockAngle: 30 * math.Pi / 180, Gamma: 1.4}
	js, err := shock.Solve(fs)
	if err != nil {
		t.Fatalf("shock solve: %v", err)
	}

	theta0, y := InitialConditions(fs, js)
	if theta0 != fs.ShockAngle {
		t.Errorf("integration starts at the shock: got %g, want %g", theta0, fs.ShockAngle)
	}
	if y[flow.VT] >= 0 {
		t.Errorf("tangential component must point toward the cone: got %g", y[flow.VT])
	}
	if v := y.Speed(); v <= 0 || v >= 1 {
		t.Errorf("post-shock speed %g outside (0,1)", v)
	}

	// Pinned for M=3, beta=30 deg, gamma=1.4.
	if math.Abs(y[flow.VR]-0.69437) > 1e-3 {
		t.Errorf("Vr: got %.5f, want 0.69437", y[flow.VR])
	}
	if math.Abs(y[flow.VT]+0.21529) > 1e-3 {
		t.Errorf("Vt: got %.5f, want -0.21529", y[flow.VT])
	}

	// The components resolve the energy-equation speed of M2.
	want := 1 / math.Sqrt(2/((fs.Gamma-1)*js.MachDownstream*js.MachDownstream)+1)
	if math.Abs(y.Speed()-want) > 1e-12 {
		t.Errorf("speed: got %.12f, want %.12f", y.Speed(), want)
	}
}
