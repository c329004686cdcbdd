package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/sorenkar/compliant/internal/config"
	"github.com/sorenkar/compliant/internal/sim"
	"github.com/sorenkar/compliant/internal/viz"
)

var (
	configFile  string
	preset      string
	dt          float64
	duration    float64
	dropHeight  float64
	stiffness   float64
	dissipation float64
	launchVx    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "compliant",
		Short: "compliant contact force sandbox",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the drop scenario and plot the energy book",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the drop scenario with live visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	csvCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "run the drop scenario and write samples as CSV",
		RunE:  exportCSV,
	}
	addScenarioFlags(csvCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for name := range config.Presets {
				fmt.Println(name)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a default scenario config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, csvCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&dropHeight, "height", config.DefaultDropHeight, "drop height")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "material stiffness")
	cmd.Flags().Float64Var(&dissipation, "dissipation", config.DefaultDissipation, "material dissipation")
	cmd.Flags().Float64Var(&launchVx, "vx", 0, "initial horizontal velocity")
}

// loadConfig resolves preset, config file and explicit flags, flags
// winning over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.Preset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("height") {
		cfg.Ball.Height = dropHeight
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Ball.Material.Stiffness = stiffness
		cfg.Ground.Stiffness = stiffness
	}
	if cmd.Flags().Changed("dissipation") {
		cfg.Ball.Material.Dissipation = dissipation
		cfg.Ground.Dissipation = dissipation
	}
	if cmd.Flags().Changed("vx") {
		cfg.Ball.Velocity.X = launchVx
	}
	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scn, err := sim.NewScenario(cfg)
	if err != nil {
		return err
	}

	fmt.Println("running drop scenario...")
	start := time.Now()
	result, err := sim.New(scn).Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	final := result.Final()
	fmt.Printf("completed in %v\n\n", elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPS\tMAX DEPTH\tDISSIPATED\tKINETIC\tCONTACT PE\tTOTAL")
	fmt.Fprintf(w, "%d\t%.4fm\t%.4fJ\t%.4fJ\t%.4fJ\t%.4fJ\n",
		result.Steps, result.MaxDepth, final.Dissipated, final.Kinetic, final.ContactPE, final.Total())
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	heights := make([]float64, len(result.Samples))
	dissipated := make([]float64, len(result.Samples))
	for i, smp := range result.Samples {
		heights[i] = smp.Height
		dissipated[i] = smp.Dissipated
	}
	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("ball height (m)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(dissipated,
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("dissipated energy (J)")))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scn, err := sim.NewScenario(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(scn))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scn, err := sim.NewScenario(cfg)
	if err != nil {
		return err
	}
	result, err := sim.New(scn).Run(context.Background())
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "height", "depth", "kinetic", "gravitational", "contact_pe", "dissipated"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, smp := range result.Samples {
		row := []string{f(smp.Time), f(smp.Height), f(smp.Depth), f(smp.Kinetic),
			f(smp.Gravitational), f(smp.ContactPE), f(smp.Dissipated)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
