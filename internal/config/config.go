package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeStep     = 0.016
	DefaultRunTimeLimit = 360.0
	DefaultGroundHeight = 0.0442
	DefaultGroundMeters = 20.0
	DefaultGroundPixels = 400
	DefaultCellSize     = 5
	DefaultCleanRadius  = 5
)

type Config struct {
	Subleague    string  `yaml:"subleague"`
	TimeStep     float64 `yaml:"time_step"`
	RunTimeLimit float64 `yaml:"run_time_limit"`
	Seed         int64   `yaml:"seed"`

	Robot     RobotConfig     `yaml:"robot"`
	Ground    GroundConfig    `yaml:"ground"`
	Battery   BatteryConfig   `yaml:"battery"`
	Boost     BoostConfig     `yaml:"boost"`
	Relocate  RelocateConfig  `yaml:"relocate"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Rooms     [][][2]float64  `yaml:"rooms"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type RobotConfig struct {
	Name         string     `yaml:"name"`
	Translation  [3]float64 `yaml:"translation"`
	GroundHeight float64    `yaml:"ground_height"`
	Driver       string     `yaml:"driver"`
}

type GroundConfig struct {
	SizeMeters  float64 `yaml:"size_meters"`
	SizePixels  int     `yaml:"size_pixels"`
	CellSize    int     `yaml:"cell_size"`
	CleanRadius int     `yaml:"clean_radius"`
}

type BatteryConfig struct {
	DrainRate    float64      `yaml:"drain_rate"`
	ChargeRadius float64      `yaml:"charge_radius"`
	Positions    [][3]float64 `yaml:"positions"`
}

type BoostConfig struct {
	Radius    float64      `yaml:"radius"`
	Points    int          `yaml:"points"`
	Positions [][3]float64 `yaml:"positions"`
}

type RelocateConfig struct {
	Penalty   int          `yaml:"penalty"`
	Positions [][3]float64 `yaml:"positions"`
}

type ScoringConfig struct {
	BaseScore        int `yaml:"base_score"`
	PointsPerPercent int `yaml:"points_per_percent"`
}

type DashboardConfig struct {
	Addr       string `yaml:"addr"`
	UploadsDir string `yaml:"uploads_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Subleague:    "U19",
		TimeStep:     DefaultTimeStep,
		RunTimeLimit: DefaultRunTimeLimit,
		Robot: RobotConfig{
			Name:         "VACUUM",
			Translation:  [3]float64{1.8761, -6.3738, DefaultGroundHeight},
			GroundHeight: DefaultGroundHeight,
			Driver:       "bump_and_turn",
		},
		Ground: GroundConfig{
			SizeMeters:  DefaultGroundMeters,
			SizePixels:  DefaultGroundPixels,
			CellSize:    DefaultCellSize,
			CleanRadius: DefaultCleanRadius,
		},
		Battery: BatteryConfig{
			DrainRate:    1.0,
			ChargeRadius: 0.3,
		},
		Boost: BoostConfig{
			Radius: 0.35,
			Points: 200,
		},
		Relocate: RelocateConfig{
			Penalty: 40,
		},
		Scoring: ScoringConfig{
			BaseScore:        1000,
			PointsPerPercent: 40,
		},
		Dashboard: DashboardConfig{
			Addr:       "localhost:8000",
			UploadsDir: "uploads",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.TimeStep <= 0 {
		return fmt.Errorf("time_step must be positive, got %f", c.TimeStep)
	}
	if c.RunTimeLimit <= 0 {
		return fmt.Errorf("run_time_limit must be positive, got %f", c.RunTimeLimit)
	}
	if c.Ground.SizeMeters <= 0 || c.Ground.SizePixels <= 0 || c.Ground.CellSize <= 0 {
		return fmt.Errorf("ground geometry must be positive")
	}
	switch c.Subleague {
	case "U14", "U19", "FS":
	default:
		return fmt.Errorf("unknown subleague: %s", c.Subleague)
	}
	return nil
}
