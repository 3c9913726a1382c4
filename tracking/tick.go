package tracking

import (
	"github.com/golang/geo/r3"

	"github.com/cnsrobotics/neuronav/referenceframe"
	"github.com/cnsrobotics/neuronav/spatialmath"
)

// TickStatus classifies the outcome of one processing tick.
type TickStatus int

const (
	// TickNotReady means the tick produced no usable target: insufficient
	// history, the motion gate blocked, or a registration is missing. The
	// robot must hold its current pose.
	TickNotReady TickStatus = iota
	// TickMove means the robot should move directly to Target.
	TickMove
	// TickArc means the displacement is large; the robot should follow Arc.
	TickArc
)

// TickResult is everything one tick of the pipeline produced. Fields past
// Status's guarantees are zero-valued: Target and Arc are only meaningful for
// TickMove/TickArc.
type TickResult struct {
	// Sample is the tracker sample converted into the robot frame (or passed
	// through before calibration).
	Sample referenceframe.TrackerSample
	// Head is the filtered head pose the decisions below were made against.
	Head spatialmath.Pose
	// MotionAllowed is the motion gate's verdict for this tick.
	MotionAllowed bool
	// HeadCenter is the estimated physical head-center point.
	HeadCenter r3.Vector
	// Target is the compensated robot target pose.
	Target spatialmath.Pose
	// Arc is set instead of a direct move when Status is TickArc.
	Arc *ArcMotion
	// Status tells the caller what to do with this tick.
	Status TickStatus
}

// Tick runs one pass of the pipeline over a raw tracker sample: frame
// conversion, pose filtering (suppressed during warm-up), motion gating,
// head-center estimation, compensation, and arc planning when the resulting
// displacement exceeds the configured threshold. currentRobot is the robot's
// pose at the start of the tick.
//
// A TickNotReady result with a nil error is a defined "hold position" state,
// not a failure. A non-nil error (missing fiducials, missing target offset,
// degenerate geometry) fails this tick's compensation only; all windows stay
// consistent for the next tick.
func (tp *TrackerProcessing) Tick(
	sample referenceframe.TrackerSample,
	currentRobot spatialmath.Pose,
) (TickResult, error) {
	res := TickResult{Status: TickNotReady}

	res.Sample = tp.converter.ToRobotFrame(sample)
	res.Head = res.Sample.Reference
	if !tp.cfg.DisablePoseFilter {
		res.Head = tp.FilterPose(res.Sample.Reference)
	}

	res.MotionAllowed = tp.gate.Observe(res.Head)
	if !res.MotionAllowed {
		return res, nil
	}

	center, err := tp.EstimateHeadCenter(res.Head)
	if err != nil {
		return res, err
	}
	res.HeadCenter = center

	target, err := tp.Compensate(res.Head)
	if err != nil {
		return res, err
	}
	res.Target = target

	if spatialmath.PoseDistance(currentRobot, target) > tp.cfg.ArcThresholdDistance {
		arc, err := tp.PlanArcMotion(currentRobot, center, target)
		if err != nil {
			return res, err
		}
		res.Arc = arc
		res.Status = TickArc
		return res, nil
	}
	res.Status = TickMove
	return res, nil
}
