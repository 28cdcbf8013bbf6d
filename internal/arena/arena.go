// Package arena scores a cleaning match: coverage grid, room stats, battery
// (U19), boost pads (U14/FS), relocation penalties, and the run timer.
package arena

import (
	"math"

	"github.com/san-kum/sweepsim/internal/config"
)

type ScoreEvent struct {
	Source string `json:"source"`
	Points int    `json:"points"`
}

// Snapshot is a point-in-time view of the match, consumed by the dashboard,
// the TUI, and metrics.
type Snapshot struct {
	Subleague      string       `json:"subleague"`
	Score          int          `json:"points"`
	CleanedPercent float64      `json:"percent"`
	Remaining      float64      `json:"remainingSeconds"`
	GameOver       bool         `json:"gameOver"`
	Battery        float64      `json:"battery"`
	HasBattery     bool         `json:"hasBattery"`
	CurrentRoom    int          `json:"currentRoom"`
	RoomPercents   []float64    `json:"roomPcts"`
	ScoreLog       []ScoreEvent `json:"scoreLog"`
}

type Arena struct {
	cfg       *config.Config
	grid      *Grid
	rooms     *RoomGrid
	battery   float64
	usedBoost []bool
	scoreLog  []ScoreEvent
	elapsed   float64
	running   bool
	lastX     float64
	lastY     float64
}

func New(cfg *config.Config) *Arena {
	a := &Arena{
		cfg:  cfg,
		grid: NewGrid(cfg.Ground.SizePixels, cfg.Ground.CellSize, cfg.Ground.SizeMeters),
	}
	if len(cfg.Rooms) > 0 && (cfg.Subleague == "U14" || cfg.Subleague == "FS") {
		polys := make([]Polygon, len(cfg.Rooms))
		for i, p := range cfg.Rooms {
			polys[i] = Polygon(p)
		}
		a.rooms = NewRoomGrid(a.grid, polys)
	}
	a.Start()
	return a
}

// Start resets the match state so a new run begins clean.
func (a *Arena) Start() {
	a.grid.Reset()
	if a.rooms != nil {
		a.rooms.Reset()
	}
	a.battery = 100.0
	a.usedBoost = make([]bool, len(a.cfg.Boost.Positions))
	a.scoreLog = nil
	a.elapsed = 0
	a.running = true
}

func (a *Arena) Running() bool { return a.running }

func (a *Arena) End() { a.running = false }

// Update advances the match by dt with the robot at (x, y). It returns false
// once the robot should be removed: timer expired or battery empty.
func (a *Arena) Update(x, y, dt float64) bool {
	if !a.running {
		return false
	}
	a.lastX, a.lastY = x, y
	a.elapsed += dt

	var marked func(ix, iy int)
	if a.rooms != nil {
		marked = a.rooms.MarkCleaned
	}
	a.grid.Clean(x, y, a.cfg.Ground.CleanRadius, marked)

	switch a.cfg.Subleague {
	case "U19":
		a.updateBattery(x, y, dt)
	default:
		a.updateBoost(x, y)
	}

	if a.elapsed >= a.cfg.RunTimeLimit || (a.cfg.Subleague == "U19" && a.battery <= 0) {
		a.running = false
		return false
	}
	return true
}

func (a *Arena) updateBattery(x, y, dt float64) {
	a.battery = math.Max(0, a.battery-a.cfg.Battery.DrainRate*dt)
	for _, pad := range a.cfg.Battery.Positions {
		if math.Hypot(x-pad[0], y-pad[1]) <= a.cfg.Battery.ChargeRadius {
			a.battery = 100.0
			break
		}
	}
}

func (a *Arena) updateBoost(x, y float64) {
	for i, pad := range a.cfg.Boost.Positions {
		if a.usedBoost[i] {
			continue
		}
		if math.Hypot(x-pad[0], y-pad[1]) <= a.cfg.Boost.Radius {
			a.usedBoost[i] = true
			a.scoreLog = append(a.scoreLog, ScoreEvent{Source: "boost", Points: a.cfg.Boost.Points})
		}
	}
}

func (a *Arena) Relocate(x, y float64) (nx, ny float64, ok bool) {
	if len(a.cfg.Relocate.Positions) == 0 {
		return 0, 0, false
	}
	best := a.cfg.Relocate.Positions[0]
	bestDist := math.Hypot(x-best[0], y-best[1])
	for _, pad := range a.cfg.Relocate.Positions[1:] {
		if d := math.Hypot(x-pad[0], y-pad[1]); d < bestDist {
			best, bestDist = pad, d
		}
	}
	a.scoreLog = append(a.scoreLog, ScoreEvent{Source: "relocate", Points: -a.cfg.Relocate.Penalty})
	return best[0], best[1], true
}

func (a *Arena) Score() int {
	score := a.cfg.Scoring.BaseScore + int(a.grid.CleanedRatio()*100*float64(a.cfg.Scoring.PointsPerPercent))
	for _, e := range a.scoreLog {
		score += e.Points
	}
	return score
}

func (a *Arena) CleanedPercent() float64 { return a.grid.CleanedRatio() * 100 }

func (a *Arena) Battery() float64 { return a.battery }

func (a *Arena) Remaining() float64 {
	return math.Max(0, a.cfg.RunTimeLimit-a.elapsed)
}

func (a *Arena) Grid() *Grid { return a.grid }

func (a *Arena) Snapshot() Snapshot {
	s := Snapshot{
		Subleague:      a.cfg.Subleague,
		Score:          a.Score(),
		CleanedPercent: a.CleanedPercent(),
		Remaining:      a.Remaining(),
		GameOver:       !a.running,
		CurrentRoom:    -1,
		ScoreLog:       append([]ScoreEvent(nil), a.scoreLog...),
	}
	if a.cfg.Subleague == "U19" {
		s.Battery = a.battery
		s.HasBattery = true
	}
	if a.rooms != nil {
		s.RoomPercents = a.rooms.Percents()
		ix, iy := a.grid.WorldToCell(a.lastX, a.lastY)
		s.CurrentRoom = a.rooms.RoomAt(ix, iy)
	}
	return s
}
