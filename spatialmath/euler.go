// Package spatialmath defines the pose and rigid-transform math used by the
// head-tracking compensation pipeline. Positions are in millimeters and
// orientations are Euler angles in degrees.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	radToDeg = 180 / math.Pi
	degToRad = math.Pi / 180
)

// Pitch values whose cosine falls below this are treated as singular.
const gimbalEpsilon = 1e-7

// EulerOrder identifies the axis convention of a set of Euler angles. Both
// supported orders reduce to a Rz*Ry*Rx product; they differ in which of the
// three angles drives which axis, so mixing orders between encode and decode
// silently produces wrong poses.
type EulerOrder int

const (
	// OrderStaticXYZ rotates about the fixed x, y and z axes in that order.
	// The first angle drives x.
	OrderStaticXYZ EulerOrder = iota
	// OrderRotatingZYX rotates about the moving z, y and x axes in that
	// order. The first angle drives z.
	OrderRotatingZYX
)

// EulerAngles holds the three rotation angles of a pose, in degrees. Which
// axis each angle belongs to depends on the EulerOrder in use.
type EulerAngles struct {
	Alpha, Beta, Gamma float64
}

// rotationMatrix builds the homogeneous rotation for the given angles under
// the given order. Both orders compose as Rz*Ry*Rx with the angle roles
// assigned per order.
func rotationMatrix(o EulerAngles, order EulerOrder) mgl64.Mat4 {
	a := o.Alpha * degToRad
	b := o.Beta * degToRad
	g := o.Gamma * degToRad

	var x, y, z float64
	switch order {
	case OrderRotatingZYX:
		z, y, x = a, b, g
	default: // OrderStaticXYZ
		x, y, z = a, b, g
	}
	return mgl64.HomogRotate3DZ(z).Mul4(mgl64.HomogRotate3DY(y).Mul4(mgl64.HomogRotate3DX(x)))
}

// eulerFromRotation decomposes the rotation block of m back into Euler angles
// under the given order. At gimbal lock (pitch within gimbalEpsilon of ±90°)
// the decomposition is not unique; the z angle is fixed to zero and the whole
// residual rotation is assigned to the x angle.
func eulerFromRotation(m mgl64.Mat4, order EulerOrder) EulerAngles {
	// m's rotation block is Rz(z)*Ry(y)*Rx(x).
	cy := math.Hypot(m.At(0, 0), m.At(1, 0))

	var x, y, z float64
	y = math.Atan2(-m.At(2, 0), cy)
	if cy > gimbalEpsilon {
		z = math.Atan2(m.At(1, 0), m.At(0, 0))
		x = math.Atan2(m.At(2, 1), m.At(2, 2))
	} else if m.At(2, 0) < 0 { // pitch +90°
		z = 0
		x = math.Atan2(m.At(0, 1), m.At(1, 1))
	} else { // pitch -90°
		z = 0
		x = math.Atan2(-m.At(0, 1), m.At(1, 1))
	}

	switch order {
	case OrderRotatingZYX:
		return EulerAngles{Alpha: z * radToDeg, Beta: y * radToDeg, Gamma: x * radToDeg}
	default:
		return EulerAngles{Alpha: x * radToDeg, Beta: y * radToDeg, Gamma: z * radToDeg}
	}
}
