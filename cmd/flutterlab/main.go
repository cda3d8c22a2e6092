package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/aerolab/flutterlab/internal/atmosphere"
	"github.com/aerolab/flutterlab/internal/config"
	"github.com/aerolab/flutterlab/internal/curves"
	"github.com/aerolab/flutterlab/internal/flutter"
	"github.com/aerolab/flutterlab/internal/panel"
	"github.com/aerolab/flutterlab/internal/solver"
	"github.com/aerolab/flutterlab/internal/viz"
)

var (
	configFile string
	preset     string

	// Panel flags (meters unless noted).
	length    float64
	width     float64
	thickness float64
	material  string
	boundary  string
	zeta      float64

	// Flow flags.
	mach     float64
	altitude float64

	// Analysis flags.
	method      string
	vmin        float64
	vmax        float64
	points      int
	corrections bool
	modeCount   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flutterlab",
		Short: "rectangular-panel flutter analysis",
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "calibration file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use a named preset case")
	rootCmd.PersistentFlags().Float64Var(&length, "length", 0.5, "panel length, m (streamwise)")
	rootCmd.PersistentFlags().Float64Var(&width, "width", 0.4, "panel width, m")
	rootCmd.PersistentFlags().Float64Var(&thickness, "thickness", 0.003, "panel thickness, m")
	rootCmd.PersistentFlags().StringVar(&material, "material", "aluminum-2024", "material name")
	rootCmd.PersistentFlags().StringVar(&boundary, "bc", "ss", "boundary condition (ss|clamped|cantilever)")
	rootCmd.PersistentFlags().Float64Var(&zeta, "damping", 0.01, "structural damping ratio")
	rootCmd.PersistentFlags().Float64Var(&mach, "mach", 2.0, "Mach number")
	rootCmd.PersistentFlags().Float64Var(&altitude, "alt", 10000, "altitude, m")
	rootCmd.PersistentFlags().StringVar(&method, "method", "auto", "aerodynamic theory (auto|piston|doublet)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "run a flutter analysis",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Float64Var(&vmin, "vmin", 0, "sweep start velocity, m/s (0 = calibration default)")
	analyzeCmd.Flags().Float64Var(&vmax, "vmax", 0, "sweep end velocity, m/s (0 = calibration default)")
	analyzeCmd.Flags().IntVar(&points, "points", 0, "coarse sweep points (0 = calibration default)")
	analyzeCmd.Flags().BoolVar(&corrections, "corrections", true, "apply transonic/thermal corrections")

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "print the panel's natural frequencies",
		RunE:  runModes,
	}
	modesCmd.Flags().IntVar(&modeCount, "count", 6, "number of modes")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "plot damping and frequency vs velocity",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&vmin, "vmin", 0, "sweep start velocity, m/s")
	sweepCmd.Flags().Float64Var(&vmax, "vmax", 0, "sweep end velocity, m/s")
	sweepCmd.Flags().IntVar(&points, "points", 80, "sample points")

	atmosphereCmd := &cobra.Command{
		Use:   "atmosphere",
		Short: "print standard-atmosphere properties at the flight condition",
		RunE:  runAtmosphere,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset cases and materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-20s %s\n", name, config.Presets[name].Description)
			}
			fmt.Println("\nmaterials:")
			for _, name := range config.MaterialNames() {
				m := config.Materials[name]
				fmt.Printf("  %-20s E=%.1f GPa rho=%.0f kg/m3 (%v)\n",
					name, m.YoungsModulus/1e9, m.Density, m.Class)
			}
			return nil
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export damping/frequency curves to CSV on stdout",
		RunE:  exportCurves(func(set *curves.Set) error { return set.WriteCSV(os.Stdout) }),
	}
	exportCSVCmd.Flags().Float64Var(&vmin, "vmin", 0, "sweep start velocity, m/s")
	exportCSVCmd.Flags().Float64Var(&vmax, "vmax", 0, "sweep end velocity, m/s")
	exportCSVCmd.Flags().IntVar(&points, "points", 80, "sample points")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export damping/frequency curves to JSON on stdout",
		RunE:  exportCurves(func(set *curves.Set) error { return set.WriteJSON(os.Stdout) }),
	}
	exportJSONCmd.Flags().Float64Var(&vmin, "vmin", 0, "sweep start velocity, m/s")
	exportJSONCmd.Flags().Float64Var(&vmax, "vmax", 0, "sweep end velocity, m/s")
	exportJSONCmd.Flags().IntVar(&points, "points", 80, "sample points")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the damping sweep live in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&vmin, "vmin", 0, "sweep start velocity, m/s")
	liveCmd.Flags().Float64Var(&vmax, "vmax", 0, "sweep end velocity, m/s")
	liveCmd.Flags().IntVar(&points, "points", 80, "sample points")
	liveCmd.Flags().BoolVar(&corrections, "corrections", true, "apply corrections to the final result")

	rootCmd.AddCommand(analyzeCmd, modesCmd, sweepCmd, atmosphereCmd, presetsCmd, exportCSVCmd, exportJSONCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCalibration() (*config.Calibration, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

// applyPreset overwrites the case flags from a named preset; explicit
// flags are not re-read, matching how presets behave elsewhere.
func applyPreset() error {
	if preset == "" {
		return nil
	}
	p := config.GetPreset(preset)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	length = p.Length
	width = p.Width
	thickness = p.Thickness
	material = p.Material
	boundary = p.Boundary
	zeta = p.Damping
	mach = p.Mach
	altitude = p.Altitude
	method = p.Method
	return nil
}

func buildCase() (panel.Properties, atmosphere.Flow, flutter.Method, error) {
	if err := applyPreset(); err != nil {
		return panel.Properties{}, atmosphere.Flow{}, 0, err
	}
	mat, err := config.GetMaterial(material)
	if err != nil {
		return panel.Properties{}, atmosphere.Flow{}, 0, err
	}
	bc, err := panel.ParseBoundary(boundary)
	if err != nil {
		return panel.Properties{}, atmosphere.Flow{}, 0, err
	}
	p, err := panel.New(length, width, thickness, mat, bc, zeta)
	if err != nil {
		return panel.Properties{}, atmosphere.Flow{}, 0, err
	}
	fl, err := atmosphere.New(mach, altitude)
	if err != nil {
		return panel.Properties{}, atmosphere.Flow{}, 0, err
	}
	m, err := flutter.ParseMethod(method)
	if err != nil {
		return panel.Properties{}, atmosphere.Flow{}, 0, err
	}
	return p, fl, m, nil
}

func resolveRange(cal *config.Calibration) (float64, float64) {
	lo, hi := vmin, vmax
	if lo == 0 {
		lo = cal.Search.VMin
	}
	if hi == 0 {
		hi = cal.Search.VMax
	}
	return lo, hi
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cal, err := loadCalibration()
	if err != nil {
		return err
	}
	p, fl, m, err := buildCase()
	if err != nil {
		return err
	}

	s := solver.New(cal)
	res, err := s.Analyze(p, fl, solver.Options{
		Method:           m,
		VMin:             vmin,
		VMax:             vmax,
		Points:           points,
		ApplyCorrections: corrections,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "method\t%v\n", res.Method)
	if res.Found {
		fmt.Fprintf(w, "flutter speed\t%.1f m/s\n", res.Speed)
		fmt.Fprintf(w, "frequency\t%.2f Hz\n", res.FrequencyHz)
		fmt.Fprintf(w, "mode\t%v\n", res.Mode)
		fmt.Fprintf(w, "converged\t%v\n", res.Converged)
	} else {
		fmt.Fprintf(w, "flutter\tnot found in searched range\n")
	}
	fmt.Fprintf(w, "transonic factor\t%.3f\n", res.TransonicFactor)
	fmt.Fprintf(w, "thermal factor\t%.3f\n", res.ThermalFactor)
	fmt.Fprintf(w, "uncertainty\t+%.0f%% / -%.0f%%\n", res.UncertaintyUp, res.UncertaintyDown)
	if err := w.Flush(); err != nil {
		return err
	}

	for _, note := range res.Notes {
		fmt.Printf("  note: %s\n", note)
	}
	return nil
}

func runModes(cmd *cobra.Command, args []string) error {
	cal, err := loadCalibration()
	if err != nil {
		return err
	}
	p, _, _, err := buildCase()
	if err != nil {
		return err
	}

	cal.ModeCount = modeCount
	st, err := solver.New(cal).Modes(p)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tFREQUENCY (Hz)")
	for _, m := range st.Modes {
		fmt.Fprintf(w, "%v\t%.2f\n", m.Mode, m.FrequencyHz)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if st.Approximate {
		fmt.Println("  note: boundary-condition factor is approximate")
	}
	return nil
}

func sampleCurves(cal *config.Calibration) (*curves.Set, error) {
	p, fl, m, err := buildCase()
	if err != nil {
		return nil, err
	}
	s := solver.New(cal)
	modes, err := s.Modes(p)
	if err != nil {
		return nil, err
	}
	ev, _, err := s.Evaluator(m, fl)
	if err != nil {
		return nil, err
	}
	lo, hi := resolveRange(cal)
	return curves.Sample(ev, p, fl, modes, lo, hi, points)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cal, err := loadCalibration()
	if err != nil {
		return err
	}
	set, err := sampleCurves(cal)
	if err != nil {
		return err
	}

	for _, c := range set.Curves {
		fmt.Println(asciigraph.Plot(c.Damping,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("mode %v total damping", c.Mode)),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(c.FrequencyHz,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("mode %v coupled frequency (Hz)", c.Mode)),
		))
		fmt.Println(strings.Repeat("-", 80))
	}
	return nil
}

func exportCurves(write func(*curves.Set) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cal, err := loadCalibration()
		if err != nil {
			return err
		}
		set, err := sampleCurves(cal)
		if err != nil {
			return err
		}
		return write(set)
	}
}

func runAtmosphere(cmd *cobra.Command, args []string) error {
	fl, err := atmosphere.New(mach, altitude)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "altitude\t%.0f m\n", fl.Altitude)
	fmt.Fprintf(w, "temperature\t%.2f K\n", fl.Temperature())
	fmt.Fprintf(w, "pressure\t%.0f Pa\n", fl.Pressure())
	fmt.Fprintf(w, "density\t%.4f kg/m3\n", fl.Density())
	fmt.Fprintf(w, "speed of sound\t%.1f m/s\n", fl.SpeedOfSound())
	fmt.Fprintf(w, "velocity\t%.1f m/s (Mach %.2f)\n", fl.Velocity(), fl.Mach)
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cal, err := loadCalibration()
	if err != nil {
		return err
	}
	p, fl, m, err := buildCase()
	if err != nil {
		return err
	}

	lo, hi := resolveRange(cal)
	opts := solver.Options{
		Method:           m,
		VMin:             lo,
		VMax:             hi,
		Points:           points,
		ApplyCorrections: corrections,
	}
	return viz.RunSweep(solver.New(cal), p, fl, opts, points)
}
