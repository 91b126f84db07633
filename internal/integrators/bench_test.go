package integrators

import (
	"testing"

	"github.com/wrosendoeng/coneflow/internal/conical"
	"github.com/wrosendoeng/coneflow/internal/flow"
)

// Post-shock state for M=3, beta=30 deg, gamma=1.4.
var benchState = flow.State{0.6944, -0.2153}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	field := conical.NewField(1.4)
	y := benchState.Clone()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _ = integ.Step(field, 0.5236, y, -1e-6)
	}
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	field := conical.NewField(1.4)
	y := benchState.Clone()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y, _ = integ.Step(field, 0.5236, y, -1e-6)
	}
}
