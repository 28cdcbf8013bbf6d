package robot

import (
	"math"
	"testing"
)

func openField() Sensors {
	return Sensors{
		DistanceFrontLeft:  10,
		DistanceFrontRight: 10,
		DistanceLeft:       10,
		DistanceRight:      10,
	}
}

func TestVelocitiesStraight(t *testing.T) {
	vx, vy, wz := Velocities(Drive{MaxSpeed, MaxSpeed}, 0)
	if math.Abs(vx-MaxSpeed*WheelRadius) > 1e-12 {
		t.Errorf("vx = %v", vx)
	}
	if vy != 0 || wz != 0 {
		t.Errorf("straight drive should not turn: vy=%v wz=%v", vy, wz)
	}
}

func TestVelocitiesSpinInPlace(t *testing.T) {
	vx, vy, wz := Velocities(Drive{-MaxSpeed, MaxSpeed}, 1.0)
	if math.Abs(vx) > 1e-12 || math.Abs(vy) > 1e-12 {
		t.Errorf("spin should not translate: vx=%v vy=%v", vx, vy)
	}
	want := 2 * MaxSpeed * WheelRadius / AxleLength
	if math.Abs(wz-want) > 1e-12 {
		t.Errorf("wz = %v, want %v", wz, want)
	}
}

func TestVelocitiesHeading(t *testing.T) {
	yaw := math.Pi / 2
	vx, vy, _ := Velocities(Drive{MaxSpeed, MaxSpeed}, yaw)
	if math.Abs(vx) > 1e-12 {
		t.Errorf("heading +y, vx should vanish: %v", vx)
	}
	if vy <= 0 {
		t.Errorf("heading +y, vy should be positive: %v", vy)
	}
}

func TestNoneDriverIdle(t *testing.T) {
	d := NewNone()
	if got := d.Drive(openField(), 0); got != (Drive{}) {
		t.Errorf("none driver moved: %+v", got)
	}
}

func TestBumpAndTurnForwardInOpenField(t *testing.T) {
	d := NewBumpAndTurn(1)
	got := d.Drive(openField(), 0)
	if got.Left != MaxSpeed || got.Right != MaxSpeed {
		t.Errorf("expected full speed ahead, got %+v", got)
	}
}

func TestBumpAndTurnReversesAtWall(t *testing.T) {
	d := NewBumpAndTurn(1)
	s := openField()
	s.DistanceFrontLeft = 0.1
	s.DistanceFrontRight = 0.1

	got := d.Drive(s, 0)
	if got.Left != -MaxSpeed || got.Right != -MaxSpeed {
		t.Errorf("expected reverse, got %+v", got)
	}

	// The maneuver holds for its duration even if sensors clear.
	next := d.Drive(openField(), 0.016)
	if next != got {
		t.Errorf("maneuver interrupted: %+v", next)
	}
}

func TestBumpAndTurnSpinsAfterReverse(t *testing.T) {
	d := NewBumpAndTurn(1)
	s := openField()
	s.DistanceFrontLeft = 0.1
	s.DistanceFrontRight = 0.1

	d.Drive(s, 0)
	for i := 0; i < 30; i++ {
		d.Drive(s, 0)
	}
	got := d.Drive(s, 0)
	if got.Left != -got.Right {
		t.Errorf("expected spin after reverse, got %+v", got)
	}
}

func TestBumpAndTurnBumperOverridesAll(t *testing.T) {
	d := NewBumpAndTurn(1)
	s := openField()
	s.BumperLeft = true
	got := d.Drive(s, 0)
	if got.Left != -MaxSpeed || got.Right != MaxSpeed {
		t.Errorf("expected bumper maneuver, got %+v", got)
	}
}

func TestSenseWallsCenter(t *testing.T) {
	s := SenseWalls(0, 0, 0, 10)
	if s.DistanceLeft <= 9 || s.DistanceRight <= 9 {
		t.Errorf("side distances from center: %+v", s)
	}
	if s.BumperLeft || s.BumperRight {
		t.Error("no bumper contact at center")
	}
}

func TestSenseWallsNearWall(t *testing.T) {
	s := SenseWalls(9.8, 0, 0, 10)
	if s.DistanceFrontLeft > 0.3 {
		t.Errorf("front sensor should read the wall: %v", s.DistanceFrontLeft)
	}

	s = SenseWalls(9.96, 0, 0, 10)
	if !s.BumperLeft {
		t.Error("bumper should trigger against the wall")
	}
}

func TestRayToSquareOutside(t *testing.T) {
	if d := rayToSquare(11, 0, 0, 10); d != 0 {
		t.Errorf("outside the square should read 0, got %v", d)
	}
}
