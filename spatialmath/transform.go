package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Transform is a rigid transformation in 3D: a 4x4 homogeneous matrix whose
// rotation block is orthonormal and whose bottom row is [0 0 0 1].
type Transform struct {
	mat mgl64.Mat4
}

// NewTransform returns the identity transform.
func NewTransform() *Transform {
	return &Transform{mgl64.Ident4()}
}

// NewTransformFromMatrix wraps an existing homogeneous matrix.
func NewTransformFromMatrix(m mgl64.Mat4) *Transform {
	return &Transform{m}
}

// NewTransformFromPose encodes a pose as translation composed with rotation
// under the given Euler order.
func NewTransformFromPose(p Pose, order EulerOrder) *Transform {
	r := rotationMatrix(p.Orientation, order)
	t := mgl64.Translate3D(p.Position.X, p.Position.Y, p.Position.Z)
	return &Transform{t.Mul4(r)}
}

// PoseIn decodes the transform back into a pose under the given Euler order.
// This inverts NewTransformFromPose for the same order except at gimbal lock,
// where the z angle is fixed to zero (see eulerFromRotation).
func (m *Transform) PoseIn(order EulerOrder) Pose {
	return Pose{
		Position:    m.Translation(),
		Orientation: eulerFromRotation(m.mat, order),
	}
}

// Matrix returns the underlying homogeneous matrix.
func (m *Transform) Matrix() mgl64.Mat4 {
	return m.mat
}

// Rotation returns the top-left 3x3 rotation block.
func (m *Transform) Rotation() mgl64.Mat3 {
	return m.mat.Mat3()
}

// Translation returns the translation column.
func (m *Transform) Translation() r3.Vector {
	v := m.mat.Col(3)
	return r3.Vector{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Compose returns m * other, applying other first.
func (m *Transform) Compose(other *Transform) *Transform {
	return &Transform{m.mat.Mul4(other.mat)}
}

// Invert returns the inverse transform, or an error when the matrix is
// singular.
func (m *Transform) Invert() (*Transform, error) {
	if math.Abs(m.mat.Det()) < 1e-12 {
		return nil, errors.New("transform is not invertible")
	}
	return &Transform{m.mat.Inv()}, nil
}

// RigidityError measures how far the transform is from a rigid one: the
// largest absolute deviation of R*Rᵀ from identity, of the rotation
// determinant from one, and of the bottom row from [0 0 0 1].
func (m *Transform) RigidityError() float64 {
	r := m.mat.Mat3()
	rrt := r.Mul3(r.Transpose())

	worst := math.Abs(r.Det() - 1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if d := math.Abs(rrt.At(i, j) - want); d > worst {
				worst = d
			}
		}
	}
	for j := 0; j < 4; j++ {
		want := 0.0
		if j == 3 {
			want = 1
		}
		if d := math.Abs(m.mat.At(3, j) - want); d > worst {
			worst = d
		}
	}
	return worst
}
