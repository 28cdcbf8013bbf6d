// Package match runs one cleaning match: a fixed-step loop feeding the
// driver, the kinematic world, the physics plugins, and the arena scorer.
package match

import (
	"context"

	"github.com/san-kum/sweepsim/internal/arena"
	"github.com/san-kum/sweepsim/internal/config"
	"github.com/san-kum/sweepsim/internal/host"
	"github.com/san-kum/sweepsim/internal/robot"
	"github.com/san-kum/sweepsim/internal/spatial"
	"github.com/san-kum/sweepsim/internal/world"
)

// Disturbance defaults: enough drift per tick that an unconstrained body
// visibly sinks and tilts within a second.
const (
	defaultSag    = 0.002
	defaultWobble = 0.01
)

type Runner struct {
	cfg       *config.Config
	world     *world.World
	arena     *arena.Arena
	driver    robot.Driver
	plugins   []host.Plugin
	metrics   []Metric
	observers []Observer
	commands  <-chan Command
}

func NewRunner(cfg *config.Config, driver robot.Driver) *Runner {
	w := world.New(cfg.Seed)
	w.SetDisturbance(world.Disturbance{Sag: defaultSag, Wobble: defaultWobble})
	return &Runner{
		cfg:    cfg,
		world:  w,
		arena:  arena.New(cfg),
		driver: driver,
	}
}

func (r *Runner) AddPlugin(p host.Plugin) { r.plugins = append(r.plugins, p) }

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) SetCommands(ch <-chan Command) { r.commands = ch }

func (r *Runner) World() *world.World { return r.world }
func (r *Runner) Arena() *arena.Arena { return r.arena }

// Run plays the match to its end (timer, battery, end command, or context
// cancellation) and returns the result. Plugins get Init before the first
// step and Cleanup after the last, including on cancellation.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	dt := r.cfg.TimeStep
	steps := int(r.cfg.RunTimeLimit/dt) + 1
	result := &Result{
		Poses:   make([]Pose, 0, steps),
		Times:   make([]float64, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	for _, p := range r.plugins {
		p.Init(r.world)
	}
	defer func() {
		for _, p := range r.plugins {
			p.Cleanup(r.world)
		}
	}()

	spawn := r.cfg.Robot.Translation
	r.world.AddBody(r.cfg.Robot.Name, spatial.Vec3{X: spawn[0], Y: spawn[1], Z: spawn[2]})
	r.arena.Start()

	t := 0.0
	for r.arena.Running() {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		r.handleCommands()

		body, present := r.world.BodyByName(r.cfg.Robot.Name)
		var pose Pose
		if present {
			pos := r.world.Position(body)
			yaw := spatial.Yaw(r.world.Rotation(body), spatial.RowMajorZUp)
			pose = Pose{X: pos.X, Y: pos.Y, Yaw: yaw}

			sensors := robot.SenseWalls(pos.X, pos.Y, yaw, r.cfg.Ground.SizeMeters/2)
			sensors.Battery = r.arena.Battery()
			drive := r.driver.Drive(sensors, t)
			vx, vy, wz := robot.Velocities(drive, yaw)
			r.world.SetLinearVelocity(body, spatial.Vec3{X: vx, Y: vy})
			r.world.SetAngularVelocity(body, spatial.Vec3{Z: wz})
		}

		r.world.Step(dt)

		for _, p := range r.plugins {
			if err := p.Step(r.world); err != nil {
				result.Errors = append(result.Errors, err)
			}
		}

		if present {
			pos := r.world.Position(body)
			pose.X, pose.Y = pos.X, pos.Y
			pose.Yaw = spatial.Yaw(r.world.Rotation(body), spatial.RowMajorZUp)
			if !r.arena.Update(pos.X, pos.Y, dt) {
				r.world.RemoveBody(body)
			}
		}

		t += dt
		result.StepsTaken++
		result.Poses = append(result.Poses, pose)
		result.Times = append(result.Times, t)

		tk := Tick{Pose: pose, Time: t, Arena: r.arena.Snapshot()}
		for _, m := range r.metrics {
			m.Observe(tk)
		}
		for _, o := range r.observers {
			o.OnTick(tk)
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	s := r.arena.Snapshot()
	result.Score = s.Score
	result.CleanedPercent = s.CleanedPercent
	result.ScoreLog = s.ScoreLog
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (r *Runner) handleCommands() {
	if r.commands == nil {
		return
	}
	for {
		select {
		case cmd, ok := <-r.commands:
			if !ok {
				r.commands = nil
				return
			}
			switch cmd {
			case CmdRelocate:
				r.relocate()
			case CmdEnd:
				r.arena.End()
			}
		default:
			return
		}
	}
}

func (r *Runner) relocate() {
	body, ok := r.world.BodyByName(r.cfg.Robot.Name)
	if !ok {
		return
	}
	pos := r.world.Position(body)
	nx, ny, ok := r.arena.Relocate(pos.X, pos.Y)
	if !ok {
		return
	}
	r.world.SetPosition(body, spatial.Vec3{X: nx, Y: ny, Z: r.cfg.Robot.GroundHeight})
	r.world.ResetPhysics(body)
}
