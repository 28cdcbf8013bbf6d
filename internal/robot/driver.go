// Package robot provides differential-drive kinematics and the on-board
// drivers that steer the vacuum during a match.
package robot

import (
	"math"
	"math/rand"
)

// Create-class drive geometry.
const (
	WheelRadius = 0.031
	AxleLength  = 0.271756
	MaxSpeed    = 25.0
	HalfSpeed   = 12.5

	distanceLow = 0.5
)

type Sensors struct {
	DistanceFrontLeft  float64
	DistanceFrontRight float64
	DistanceLeft       float64
	DistanceRight      float64
	BumperLeft         bool
	BumperRight        bool
	Battery            float64
}

// Drive is a pair of wheel speeds in rad/s.
type Drive struct {
	Left  float64
	Right float64
}

type Driver interface {
	Drive(s Sensors, t float64) Drive
}

// Velocities converts wheel speeds to planar body velocities at the given
// heading.
func Velocities(d Drive, yaw float64) (vx, vy, wz float64) {
	v := (d.Left + d.Right) / 2 * WheelRadius
	wz = (d.Right - d.Left) * WheelRadius / AxleLength
	return v * math.Cos(yaw), v * math.Sin(yaw), wz
}

// None keeps the robot stationary.
type None struct{}

func NewNone() *None { return &None{} }

func (*None) Drive(s Sensors, t float64) Drive { return Drive{} }

// BumpAndTurn drives forward until a wall gets close, then backs off and
// turns a random amount. Maneuvers hold for a fixed number of ticks, so the
// driver is a small counter machine rather than a planner.
type BumpAndTurn struct {
	rng      *rand.Rand
	current  Drive
	duration int
	rotation bool
}

func NewBumpAndTurn(seed int64) *BumpAndTurn {
	return &BumpAndTurn{rng: rand.New(rand.NewSource(seed))}
}

func (b *BumpAndTurn) Drive(s Sensors, t float64) Drive {
	if b.duration > 0 {
		b.duration--
		return b.current
	}

	switch {
	case s.BumperLeft || s.BumperRight:
		b.set(Drive{-MaxSpeed, MaxSpeed}, 50)
	case b.rotation && (s.DistanceFrontLeft < distanceLow || s.DistanceFrontRight < distanceLow):
		if b.rng.Intn(2) == 0 {
			b.set(Drive{MaxSpeed, -MaxSpeed}, 15)
		} else {
			b.set(Drive{-MaxSpeed, MaxSpeed}, 15)
		}
		b.rotation = false
	case s.DistanceFrontLeft < distanceLow && s.DistanceFrontRight < distanceLow:
		b.set(Drive{-MaxSpeed, -MaxSpeed}, 30)
		b.rotation = true
	case s.DistanceLeft < distanceLow:
		b.set(Drive{HalfSpeed, -MaxSpeed}, 20)
	case s.DistanceRight < distanceLow:
		b.set(Drive{-MaxSpeed, HalfSpeed}, 20)
	default:
		b.current = Drive{MaxSpeed, MaxSpeed}
	}
	return b.current
}

func (b *BumpAndTurn) set(d Drive, ticks int) {
	b.current = d
	b.duration = ticks
}
