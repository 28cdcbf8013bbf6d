package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sweepsim/internal/config"
	"github.com/san-kum/sweepsim/internal/dashboard"
	"github.com/san-kum/sweepsim/internal/match"
	"github.com/san-kum/sweepsim/internal/metrics"
	"github.com/san-kum/sweepsim/internal/planar"
	"github.com/san-kum/sweepsim/internal/robot"
	"github.com/san-kum/sweepsim/internal/storage"
	"github.com/san-kum/sweepsim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	subleague  string
	seed       int64
	driverName string
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sweepsim",
		Short: "vacuum cleaning competition simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sweepsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "u19", "competition preset")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a match headless and store the result",
		RunE:  runMatch,
	}
	runCmd.Flags().StringVar(&subleague, "subleague", "", "override subleague (U14, U19, FS)")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&driverName, "driver", "", "robot driver")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a match with live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&driverName, "driver", "", "robot driver")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the web dashboard",
		RunE:  serveDashboard,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list competition presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if subleague != "" {
		cfg.Subleague = subleague
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if driverName != "" {
		cfg.Robot.Driver = driverName
	}
	return cfg, cfg.Validate()
}

func buildDriver(cfg *config.Config) (robot.Driver, error) {
	switch cfg.Robot.Driver {
	case "bump_and_turn", "":
		return robot.NewBumpAndTurn(cfg.Seed), nil
	case "none":
		return robot.NewNone(), nil
	default:
		return nil, fmt.Errorf("unknown driver: %s", cfg.Robot.Driver)
	}
}

func buildRunner(cfg *config.Config) (*match.Runner, error) {
	driver, err := buildDriver(cfg)
	if err != nil {
		return nil, err
	}
	r := match.NewRunner(cfg, driver)
	maintainerCfg := planar.DefaultConfig(cfg.Robot.Name)
	maintainerCfg.GroundHeight = cfg.Robot.GroundHeight
	r.AddPlugin(planar.New(maintainerCfg))
	r.AddMetric(metrics.NewCoverage())
	r.AddMetric(metrics.NewDistance())
	r.AddMetric(metrics.NewBatteryUsed())
	return r, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	result, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "step error: %v\n", e)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Subleague, cfg.Robot.Driver, cfg.TimeStep, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("run:     %s\n", runID)
	fmt.Printf("score:   %d\n", result.Score)
	fmt.Printf("cleaned: %.1f%%\n", result.CleanedPercent)
	fmt.Printf("steps:   %d\n", result.StepsTaken)
	for name, value := range result.Metrics {
		fmt.Printf("%-8s %.3f\n", name+":", value)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	return tui.Run(cfg, r)
}

func serveDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Dashboard.Addr = addr
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := newMatchController(cfg, st, logger)
	srv := dashboard.NewServer(cfg.Dashboard, ctrl, logger)
	return srv.Run(ctx)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBLEAGUE\tDRIVER\tSCORE\tCLEANED\tSTEPS\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f%%\t%d\t%s\n",
			run.ID, run.Subleague, run.Driver, run.Score,
			run.CleanedPercent, run.Steps, run.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	poses, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(poses) < 2 {
		fmt.Println("trajectory too short to plot")
		return nil
	}

	xs := make([]float64, len(poses))
	ys := make([]float64, len(poses))
	for i, p := range poses {
		xs[i] = p.X
		ys[i] = p.Y
	}

	fmt.Println(asciigraph.Plot(xs, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("x position (m)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ys, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("y position (m)")))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	poses, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta       *storage.RunMetadata `json:"meta"`
		Times      []float64            `json:"times"`
		Trajectory []match.Pose         `json:"trajectory"`
	}{meta, times, poses}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
