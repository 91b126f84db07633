package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/wrosendoeng/coneflow/internal/config"
	"github.com/wrosendoeng/coneflow/internal/flow"
	"github.com/wrosendoeng/coneflow/internal/shock"
	"github.com/wrosendoeng/coneflow/internal/shooting"
	"github.com/wrosendoeng/coneflow/internal/store"
	"github.com/wrosendoeng/coneflow/internal/sweep"
	"github.com/wrosendoeng/coneflow/internal/tui"
)

var (
	dataDir    string
	mach       float64
	gamma      float64
	coneDeg    float64
	betaDeg    float64
	guessDeg   float64
	stepRad    float64
	tol        float64
	maxIter    int
	maxSteps   int
	configFile string
	preset     string
	machMin    float64
	machMax    float64
	machStep   float64
)

const deg = math.Pi / 180

func main() {
	rootCmd := &cobra.Command{
		Use:   "coneflow",
		Short: "conical shock-wave flow solver (Taylor-Maccoll)",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".coneflow", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "find the shock angle for a cone half-angle",
		RunE:  runSolve,
	}
	solveCmd.Flags().Float64Var(&mach, "mach", config.DefaultMach, "free-stream Mach number")
	solveCmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "ratio of specific heats")
	solveCmd.Flags().Float64Var(&coneDeg, "cone", config.DefaultConeDeg, "cone half-angle (degrees)")
	solveCmd.Flags().Float64Var(&guessDeg, "guess", 0, "initial shock angle guess (degrees, 0 = heuristic)")
	solveCmd.Flags().Float64Var(&stepRad, "step", config.DefaultStep, "integration step (radians)")
	solveCmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "convergence tolerance (radians)")
	solveCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "Newton iteration budget")
	solveCmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "integration step budget")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	shockCmd := &cobra.Command{
		Use:   "shock",
		Short: "evaluate oblique-shock jump conditions",
		RunE:  runShock,
	}
	shockCmd.Flags().Float64Var(&mach, "mach", config.DefaultMach, "free-stream Mach number")
	shockCmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "ratio of specific heats")
	shockCmd.Flags().Float64Var(&betaDeg, "beta", 30, "shock wave angle (degrees)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve a Mach range at a fixed cone angle",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&coneDeg, "cone", config.DefaultConeDeg, "cone half-angle (degrees)")
	sweepCmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "ratio of specific heats")
	sweepCmd.Flags().Float64Var(&machMin, "mach-min", 1.5, "lowest Mach number")
	sweepCmd.Flags().Float64Var(&machMax, "mach-max", 5.0, "highest Mach number")
	sweepCmd.Flags().Float64Var(&machStep, "mach-step", 0.5, "Mach increment")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-20s M=%.3g  cone=%.3g°  gamma=%.4g\n", name, p.Mach, p.ConeAngleDeg, p.Gamma)
			}
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run()
		},
	}

	rootCmd.AddCommand(solveCmd, shockCmd, sweepCmd, listCmd, plotCmd, exportCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	// CLI flags override file and preset values.
	if cmd.Flags().Changed("mach") {
		cfg.Mach = mach
	}
	if cmd.Flags().Changed("gamma") {
		cfg.Gamma = gamma
	}
	if cmd.Flags().Changed("cone") {
		cfg.ConeAngleDeg = coneDeg
	}
	if cmd.Flags().Changed("guess") {
		cfg.GuessDeg = guessDeg
	}
	if cmd.Flags().Changed("step") {
		cfg.StepRad = stepRad
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tol
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}

	solver := shooting.Solver{
		Mach:     cfg.Mach,
		Gamma:    cfg.Gamma,
		Step:     cfg.StepRad,
		MaxSteps: cfg.MaxSteps,
		Tol:      cfg.Tolerance,
		MaxIter:  cfg.MaxIter,
	}

	guess := cfg.GuessRad()
	if guess == 0 {
		guess = sweep.GuessShockAngle(cfg.Mach, cfg.ConeAngleRad())
	}

	fmt.Printf("solving M=%.4g cone=%.4g° gamma=%.4g...\n", cfg.Mach, cfg.ConeAngleDeg, cfg.Gamma)
	start := time.Now()

	res, err := solver.Solve(cfg.ConeAngleRad(), guess)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Mach, cfg.Gamma, res)
	if err != nil {
		return err
	}

	fmt.Printf("converged in %d iterations (%v)\n", res.Iterations, time.Since(start))
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Printf("  shock angle:      %.4f° (%.6f rad)\n", res.ShockAngle/deg, res.ShockAngle)
	fmt.Printf("  flow deflection:  %.4f°\n", res.Shock.Deflection/deg)
	fmt.Printf("  post-shock Mach:  %.4f\n", res.Shock.MachDownstream)
	fmt.Printf("  surface Mach:     %.4f\n", res.Surface.Mach)
	fmt.Printf("  surface Cp:       %.5f\n", res.Surface.PressureCoeff)
	fmt.Printf("  p2/p1:            %.4f\n", res.Shock.PressureRatio)
	fmt.Printf("  residual:         %.3e rad\n", res.Residual)
	return nil
}

func runShock(cmd *cobra.Command, args []string) error {
	fs := flow.FreeStream{Mach: mach, ShockAngle: betaDeg * deg, Gamma: gamma}
	res, err := shock.Solve(fs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "normal Mach\t%.4f\n", res.MachNormal)
	fmt.Fprintf(w, "deflection\t%.4f°\n", res.Deflection/deg)
	fmt.Fprintf(w, "post-shock Mach\t%.4f\n", res.MachDownstream)
	fmt.Fprintf(w, "rho2/rho1\t%.4f\n", res.DensityRatio)
	fmt.Fprintf(w, "p2/p1\t%.4f\n", res.PressureRatio)
	fmt.Fprintf(w, "T2/T1\t%.4f\n", res.TemperatureRatio)
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cases := sweep.MachRange(machMin, machMax, machStep, coneDeg*deg, gamma)
	if len(cases) == 0 {
		return fmt.Errorf("empty Mach range [%g, %g] step %g", machMin, machMax, machStep)
	}

	start := time.Now()
	outcomes := sweep.Run(context.Background(), cases)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MACH\tSHOCK ANGLE\tDEFLECTION\tM2\tSURFACE MACH\tCP\tITER")

	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%.3f\t%v\n", o.Case.Mach, o.Err)
			continue
		}
		r := o.Result
		fmt.Fprintf(w, "%.3f\t%.4f°\t%.4f°\t%.4f\t%.4f\t%.5f\t%d\n",
			o.Case.Mach,
			r.ShockAngle/deg,
			r.Shock.Deflection/deg,
			r.Shock.MachDownstream,
			r.Surface.Mach,
			r.Surface.PressureCoeff,
			r.Iterations,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d cases in %v\n", len(cases), time.Since(start))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMACH\tCONE\tSHOCK ANGLE\tITER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f°\t%.3f°\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mach,
			run.ConeAngle/deg,
			run.ShockAngle/deg,
			run.Iterations,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("M=%.4g  cone=%.4f°  shock=%.4f°\n\n", meta.Mach, meta.ConeAngle/deg, meta.ShockAngle/deg)

	series := []struct {
		caption string
		value   func(s flow.State) float64
	}{
		{"Vr (radial velocity)", func(s flow.State) float64 { return s[flow.VR] }},
		{"|Vtheta| (tangential velocity)", func(s flow.State) float64 { return -s[flow.VT] }},
		{"local Mach", func(s flow.State) float64 { return flow.LocalMach(s.Speed(), meta.Gamma) }},
	}

	for _, sr := range series {
		data := make([]float64, tr.Len())
		for i, s := range tr.States {
			data[i] = sr.value(s)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption+" — shock to cone surface"),
		))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
