package tracking

import (
	"github.com/cnsrobotics/neuronav/spatialmath"
)

// Compensate computes the robot target pose that keeps the end effector
// fixed relative to the head's current frame, by composing the head's
// transform with the recorded robot-to-head offset. The result is decoded
// under the static-XYZ order; the encode/decode order asymmetry is part of
// the compensation law.
func (tp *TrackerProcessing) Compensate(head spatialmath.Pose) (spatialmath.Pose, error) {
	if tp.robotToHead == nil {
		return spatialmath.Pose{}, ErrNoTargetOffset
	}
	m := spatialmath.NewTransformFromPose(head, spatialmath.OrderRotatingZYX)
	return m.Compose(tp.robotToHead).PoseIn(spatialmath.OrderStaticXYZ), nil
}
