package match

import "github.com/san-kum/sweepsim/internal/arena"

type Pose struct {
	X, Y, Yaw float64
}

// Tick is what metrics and observers see once per simulation step.
type Tick struct {
	Pose  Pose
	Time  float64
	Arena arena.Snapshot
}

type Metric interface {
	Name() string
	Observe(tk Tick)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tk Tick)
}

// Command is an operator request injected into a running match.
type Command int

const (
	CmdRelocate Command = iota
	CmdEnd
)

type Result struct {
	Poses          []Pose
	Times          []float64
	Score          int
	CleanedPercent float64
	ScoreLog       []arena.ScoreEvent
	Metrics        map[string]float64
	StepsTaken     int
	Errors         []error
}
