package tracking

import (
	"github.com/golang/geo/r3"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

// EstimateHeadCenter estimates the physical head-center point: the midpoint
// of the two ear landmarks carried into the head's current frame. It requires
// the head registration fiducials.
func (tp *TrackerProcessing) EstimateHeadCenter(head spatialmath.Pose) (r3.Vector, error) {
	if !tp.fiducials.Complete() {
		return r3.Vector{}, ErrCalibrationRequired
	}
	m := spatialmath.NewTransformFromPose(head, spatialmath.OrderRotatingZYX)
	left := m.Compose(tp.fiducials.EarLeft).Translation()
	right := m.Compose(tp.fiducials.EarRight).Translation()
	return left.Add(right).Mul(0.5), nil
}
