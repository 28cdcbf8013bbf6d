package robot

import "math"

// Sensor ray offsets from the heading, radians.
const (
	frontLeftOffset  = 0.3
	frontRightOffset = -0.3
	sideOffset       = math.Pi / 2

	bumperRange = 0.05
)

// SenseWalls fills distance sensors and bumpers against the square arena
// boundary [-half, half]^2. Rays are cast from (x, y) at offsets around yaw.
func SenseWalls(x, y, yaw, half float64) Sensors {
	return Sensors{
		DistanceFrontLeft:  rayToSquare(x, y, yaw+frontLeftOffset, half),
		DistanceFrontRight: rayToSquare(x, y, yaw+frontRightOffset, half),
		DistanceLeft:       rayToSquare(x, y, yaw+sideOffset, half),
		DistanceRight:      rayToSquare(x, y, yaw-sideOffset, half),
		BumperLeft:         half-math.Abs(x) < bumperRange || half-math.Abs(y) < bumperRange,
		BumperRight:        half-math.Abs(x) < bumperRange || half-math.Abs(y) < bumperRange,
	}
}

// rayToSquare returns the distance from (x, y) along direction theta to the
// boundary of the axis-aligned square of half-extent half. Points outside
// the square read as zero.
func rayToSquare(x, y, theta, half float64) float64 {
	if math.Abs(x) >= half || math.Abs(y) >= half {
		return 0
	}
	dx, dy := math.Cos(theta), math.Sin(theta)
	t := math.Inf(1)
	if dx > 0 {
		t = math.Min(t, (half-x)/dx)
	} else if dx < 0 {
		t = math.Min(t, (-half-x)/dx)
	}
	if dy > 0 {
		t = math.Min(t, (half-y)/dy)
	} else if dy < 0 {
		t = math.Min(t, (-half-y)/dy)
	}
	if math.IsInf(t, 1) {
		return 0
	}
	return t
}
