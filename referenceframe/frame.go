// Package referenceframe converts raw tracker-frame samples into the robot
// frame and holds the registration state shared by the tracking pipeline.
package referenceframe

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

// Tolerance for the rigidity check on registration matrices. Registration
// matrices come from a least-squares fit, so they are close to rigid but not
// exact.
const calibrationRigidityTol = 1e-6

// TrackerSample is one tick's worth of marker poses from the position
// tracker, one slot per tracked role.
type TrackerSample struct {
	// Probe is the handheld pointer marker.
	Probe spatialmath.Pose
	// Reference is the marker fixed to the patient's head.
	Reference spatialmath.Pose
	// Object is the marker fixed to the tool held by the robot.
	Object spatialmath.Pose
}

// Fiducials are the probe-to-head transforms captured at the three anatomical
// landmarks during head registration.
type Fiducials struct {
	EarLeft  *spatialmath.Transform
	EarRight *spatialmath.Transform
	Nasion   *spatialmath.Transform
}

// Complete reports whether all three landmarks have been registered.
func (f *Fiducials) Complete() bool {
	return f != nil && f.EarLeft != nil && f.EarRight != nil && f.Nasion != nil
}

// ValidateCalibration rejects a registration matrix that is not a rigid
// transform. A bad registration cannot be corrected downstream, so callers
// should treat this as a session-level fault.
func ValidateCalibration(t *spatialmath.Transform) error {
	if t == nil {
		return errors.New("calibration matrix is nil")
	}
	var errs error
	if t.RigidityError() > calibrationRigidityTol {
		errs = multierr.Append(errs, errors.Errorf(
			"rotation block is not orthonormal (rigidity error %.3g)", t.RigidityError()))
	}
	if _, err := t.Invert(); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "calibration matrix"))
	}
	return errs
}

// Converter maps tracker-frame poses into the robot frame using the fixed
// tracker-to-robot registration matrix.
type Converter struct {
	trackerToRobot *spatialmath.Transform
}

// NewConverter returns an uncalibrated converter.
func NewConverter() *Converter {
	return &Converter{}
}

// SetCalibration installs the tracker-to-robot matrix after validating it.
func (c *Converter) SetCalibration(t *spatialmath.Transform) error {
	if err := ValidateCalibration(t); err != nil {
		return err
	}
	c.trackerToRobot = t
	return nil
}

// Calibrated reports whether the tracker-to-robot matrix has been set.
func (c *Converter) Calibrated() bool {
	return c.trackerToRobot != nil
}

// ToRobotFrame converts each marker pose of the sample independently into the
// robot frame. Markers are encoded under the rotating-ZYX order and decoded
// under static-XYZ; the order change matches the compensation math and must
// not be "fixed". Before calibration the sample is returned unchanged so the
// pipeline can run in tracker frame.
func (c *Converter) ToRobotFrame(sample TrackerSample) TrackerSample {
	if c.trackerToRobot == nil {
		return sample
	}
	return TrackerSample{
		Probe:     c.poseToRobot(sample.Probe),
		Reference: c.poseToRobot(sample.Reference),
		Object:    c.poseToRobot(sample.Object),
	}
}

func (c *Converter) poseToRobot(p spatialmath.Pose) spatialmath.Pose {
	m := spatialmath.NewTransformFromPose(p, spatialmath.OrderRotatingZYX)
	return c.trackerToRobot.Compose(m).PoseIn(spatialmath.OrderStaticXYZ)
}
