package spatial

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Mat3 is a 3x3 rotation matrix stored row-major:
// [0 1 2; 3 4 5; 6 7 8].
type Mat3 [9]float64

func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// RotationAboutZ builds a pure yaw rotation about the vertical axis.
func RotationAboutZ(yaw float64) Mat3 {
	c, s := math.Cos(yaw), math.Sin(yaw)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// YawConvention names which matrix elements encode the planar rotation
// component: Cos indexes cos(yaw) and Sin indexes sin(yaw). Different
// engines lay their rotation matrices out differently, so the extraction
// takes the layout as a parameter instead of assuming one.
type YawConvention struct {
	Cos int
	Sin int
}

// RowMajorZUp is the convention for a row-major matrix rotating about +Z:
// m[0] = cos(yaw), m[3] = sin(yaw).
var RowMajorZUp = YawConvention{Cos: 0, Sin: 3}

// ColumnMajorZUp reads the same rotation from a column-major layout.
var ColumnMajorZUp = YawConvention{Cos: 0, Sin: 1}

// Yaw extracts the rotation about the vertical axis from m under the given
// convention. Closed form; any roll/pitch component is ignored.
func Yaw(m Mat3, conv YawConvention) float64 {
	return math.Atan2(m[conv.Sin], m[conv.Cos])
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[i*3+k] * o[k*3+j]
			}
			r[i*3+j] = sum
		}
	}
	return r
}

// RotationAboutX and RotationAboutY exist so tests and the demo world can
// inject roll/pitch perturbations.
func RotationAboutX(roll float64) Mat3 {
	c, s := math.Cos(roll), math.Sin(roll)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

func RotationAboutY(pitch float64) Mat3 {
	c, s := math.Cos(pitch), math.Sin(pitch)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}
