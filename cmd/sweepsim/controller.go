package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/sweepsim/internal/config"
	"github.com/san-kum/sweepsim/internal/dashboard"
	"github.com/san-kum/sweepsim/internal/match"
	"github.com/san-kum/sweepsim/internal/storage"
)

// matchController runs one match at a time on behalf of the dashboard,
// pacing it to wall-clock speed and storing results when it ends.
type matchController struct {
	cfg *config.Config
	st  *storage.Store
	log *zap.Logger

	mu      sync.Mutex
	running bool
	cmds    chan match.Command
	team    string
	status  dashboard.Status
}

func newMatchController(cfg *config.Config, st *storage.Store, log *zap.Logger) *matchController {
	return &matchController{cfg: cfg, st: st, log: log}
}

func (c *matchController) Start(subleague string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return fmt.Errorf("a match is already running")
	}

	cfg := *c.cfg
	if subleague != "" {
		preset := config.GetPreset(map[string]string{
			"U14": "u14", "U19": "u19", "FS": "fs",
		}[subleague])
		if preset == nil {
			return fmt.Errorf("unknown subleague: %s", subleague)
		}
		preset.Dashboard = c.cfg.Dashboard
		cfg = *preset
	}

	runner, err := buildRunner(&cfg)
	if err != nil {
		return err
	}
	cmds := make(chan match.Command, 4)
	runner.SetCommands(cmds)
	runner.AddObserver(c)

	c.running = true
	c.cmds = cmds

	go func() {
		result, err := runner.Run(context.Background())
		if err != nil {
			c.log.Error("match aborted", zap.Error(err))
		}
		if result != nil {
			if runID, err := c.st.Save(cfg.Subleague, cfg.Robot.Driver, cfg.TimeStep, cfg.Seed, result); err != nil {
				c.log.Error("storing run failed", zap.Error(err))
			} else {
				c.log.Info("match finished",
					zap.String("run", runID),
					zap.Int("score", result.Score),
					zap.Float64("cleaned", result.CleanedPercent))
			}
		}
		c.mu.Lock()
		c.running = false
		c.cmds = nil
		c.status.Running = false
		c.mu.Unlock()
	}()

	return nil
}

// OnTick records the latest status and paces the runner to real time.
func (c *matchController) OnTick(tk match.Tick) {
	c.mu.Lock()
	c.status = dashboard.Status{
		Snapshot: tk.Arena,
		Team:     c.team,
		X:        tk.Pose.X,
		Y:        tk.Pose.Y,
		Yaw:      tk.Pose.Yaw,
		Running:  true,
	}
	dt := c.cfg.TimeStep
	c.mu.Unlock()
	time.Sleep(time.Duration(dt * float64(time.Second)))
}

// SetTeam names the team on the scoreboard. The name survives match restarts.
func (c *matchController) SetTeam(name string) {
	c.mu.Lock()
	c.team = name
	c.status.Team = name
	c.mu.Unlock()
}

func (c *matchController) Relocate() { c.send(match.CmdRelocate) }

func (c *matchController) End() { c.send(match.CmdEnd) }

func (c *matchController) send(cmd match.Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmds == nil {
		return
	}
	select {
	case c.cmds <- cmd:
	default:
	}
}

func (c *matchController) Status() dashboard.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}
