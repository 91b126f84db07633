package sweep_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wrosendoeng/coneflow/internal/shooting"
	"github.com/wrosendoeng/coneflow/internal/sweep"
)

const deg = math.Pi / 180

var _ = Describe("Run", func() {
	It("solves a Mach sweep over a slender cone", func() {
		cases := []sweep.Case{
			{Mach: 2.0, ConeAngle: 10 * deg, Gamma: 1.4},
			{Mach: 2.5, ConeAngle: 10 * deg, Gamma: 1.4},
			{Mach: 3.0, ConeAngle: 10 * deg, Gamma: 1.4},
		}

		outcomes := sweep.Run(context.Background(), cases)
		Expect(outcomes).To(HaveLen(len(cases)))

		for _, o := range outcomes {
			Expect(o.Err).NotTo(HaveOccurred(), "M=%.1f", o.Case.Mach)
			Expect(o.Result.Status).To(Equal(shooting.StatusConverged))
			Expect(o.Result.ShockAngle).To(BeNumerically(">", o.Case.ConeAngle))
		}

		// The wave leans back as the free stream speeds up.
		Expect(outcomes[1].Result.ShockAngle).To(BeNumerically("<", outcomes[0].Result.ShockAngle))
		Expect(outcomes[2].Result.ShockAngle).To(BeNumerically("<", outcomes[1].Result.ShockAngle))
	})

	It("preserves case order in the outcomes", func() {
		cases := sweep.MachRange(2.0, 4.0, 0.5, 12*deg, 1.4)
		outcomes := sweep.Run(context.Background(), cases)

		Expect(outcomes).To(HaveLen(len(cases)))
		for i, o := range outcomes {
			Expect(o.Case.Mach).To(Equal(cases[i].Mach))
		}
	})

	It("honors an explicit initial guess", func() {
		cases := []sweep.Case{
			{Mach: 3.0, ConeAngle: 10 * deg, Gamma: 1.4, Guess: 25 * deg},
		}

		outcomes := sweep.Run(context.Background(), cases)
		Expect(outcomes[0].Err).NotTo(HaveOccurred())
		Expect(outcomes[0].Result.Status).To(Equal(shooting.StatusConverged))
	})

	It("reports the context error for canceled cases", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		outcomes := sweep.Run(ctx, []sweep.Case{
			{Mach: 3.0, ConeAngle: 10 * deg, Gamma: 1.4},
		})
		Expect(outcomes[0].Err).To(MatchError(context.Canceled))
	})

	It("carries per-case failures without aborting the batch", func() {
		cases := []sweep.Case{
			{Mach: 3.0, ConeAngle: 10 * deg, Gamma: 1.4},
			{Mach: 0.5, ConeAngle: 10 * deg, Gamma: 1.4}, // subsonic, must fail
		}

		outcomes := sweep.Run(context.Background(), cases)
		Expect(outcomes[0].Err).NotTo(HaveOccurred())
		Expect(outcomes[1].Err).To(HaveOccurred())
	})
})

var _ = Describe("GuessShockAngle", func() {
	It("stays above the Mach angle", func() {
		for _, mach := range []float64{1.5, 2, 3, 5, 10} {
			mu := math.Asin(1 / mach)
			Expect(sweep.GuessShockAngle(mach, 5*deg)).To(BeNumerically(">", mu))
			Expect(sweep.GuessShockAngle(mach, 30*deg)).To(BeNumerically(">", mu))
		}
	})

	It("grows with the cone half-angle", func() {
		lo := sweep.GuessShockAngle(3, 5*deg)
		hi := sweep.GuessShockAngle(3, 30*deg)
		Expect(hi).To(BeNumerically(">", lo))
	})
})

var _ = Describe("MachRange", func() {
	It("expands an inclusive range", func() {
		cases := sweep.MachRange(2.0, 3.0, 0.5, 10*deg, 1.4)
		Expect(cases).To(HaveLen(3))
		Expect(cases[0].Mach).To(Equal(2.0))
		Expect(cases[2].Mach).To(BeNumerically("~", 3.0, 1e-9))
	})

	It("rejects degenerate ranges", func() {
		Expect(sweep.MachRange(3, 2, 0.5, 10*deg, 1.4)).To(BeNil())
		Expect(sweep.MachRange(2, 3, 0, 10*deg, 1.4)).To(BeNil())
	})
})
