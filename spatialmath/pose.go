package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Pose combines a 3D position in millimeters with an orientation in degrees.
// A Pose does not carry its Euler order; every conversion to or from a
// Transform names the order explicitly.
type Pose struct {
	Position    r3.Vector
	Orientation EulerAngles
}

// Components returns the pose as an ordered 6-vector
// [x y z alpha beta gamma].
func (p Pose) Components() [6]float64 {
	return [6]float64{
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Orientation.Alpha, p.Orientation.Beta, p.Orientation.Gamma,
	}
}

// PoseFromComponents is the inverse of Components.
func PoseFromComponents(c [6]float64) Pose {
	return Pose{
		Position:    r3.Vector{X: c[0], Y: c[1], Z: c[2]},
		Orientation: EulerAngles{Alpha: c[3], Beta: c[4], Gamma: c[5]},
	}
}

// PoseDistance returns the Euclidean distance between the positions of two
// poses, ignoring orientation.
func PoseDistance(a, b Pose) float64 {
	return a.Position.Sub(b.Position).Norm()
}

// TargetLength returns the norm of the pose's position vector.
func TargetLength(p Pose) float64 {
	return p.Position.Norm()
}

// PoseAlmostEqual reports whether every component of the two poses agrees
// within tol.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	ca, cb := a.Components(), b.Components()
	for i := range ca {
		if math.Abs(ca[i]-cb[i]) > tol {
			return false
		}
	}
	return true
}
