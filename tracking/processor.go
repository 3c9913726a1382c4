package tracking

import (
	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/cnsrobotics/neuronav/control"
	"github.com/cnsrobotics/neuronav/referenceframe"
	"github.com/cnsrobotics/neuronav/spatialmath"
)

// kalmanWarmupWindow is how many ticks of pose-filter output are discarded in
// favor of the raw pose while the filter state settles.
const kalmanWarmupWindow = 20

// State is the registration progress of a tracking session.
type State int

const (
	// StateUncalibrated means the tracker-to-robot matrix is not set yet.
	StateUncalibrated State = iota
	// StateCalibratedNoFiducials means frame conversion works but head
	// registration has not happened, so compensation is unavailable.
	StateCalibratedNoFiducials
	// StateReady means the full pipeline can run.
	StateReady
)

// TrackerProcessing owns all per-session tracking state: the frame converter,
// the pose filter and its warm-up window, the motion gate and the recorded
// robot-to-head offset. It is tick-driven and not safe for concurrent use;
// the navigation loop must finish one Tick before starting the next.
type TrackerProcessing struct {
	cfg       Config
	logger    golog.Logger
	sessionID uuid.UUID

	converter  *referenceframe.Converter
	fiducials  *referenceframe.Fiducials
	poseFilter *control.PoseFilter
	warmup     [][3]float64
	gate       *motionGate

	robotToHead *spatialmath.Transform
}

// NewTrackerProcessing validates the config and returns a fresh processing
// instance in the Uncalibrated state.
func NewTrackerProcessing(cfg Config, logger golog.Logger) (*TrackerProcessing, error) {
	return newTrackerProcessing(cfg, logger, clock.New())
}

func newTrackerProcessing(cfg Config, logger golog.Logger, clk clock.Clock) (*TrackerProcessing, error) {
	if err := cfg.Validate(""); err != nil {
		return nil, err
	}
	tp := &TrackerProcessing{
		cfg:        cfg,
		logger:     logger,
		sessionID:  uuid.New(),
		converter:  referenceframe.NewConverter(),
		poseFilter: control.NewPoseFilter(cfg.CovarianceProcess, cfg.CovarianceMeasure),
		gate:       newMotionGate(cfg.HeadVelocityThreshold, clk, logger),
	}
	logger.Infow("tracking session started", "session", tp.sessionID)
	return tp, nil
}

// SessionID identifies this tracking session in logs.
func (tp *TrackerProcessing) SessionID() uuid.UUID {
	return tp.sessionID
}

// State returns the session's registration progress.
func (tp *TrackerProcessing) State() State {
	switch {
	case !tp.converter.Calibrated():
		return StateUncalibrated
	case !tp.fiducials.Complete():
		return StateCalibratedNoFiducials
	default:
		return StateReady
	}
}

// SetTrackerToRobot installs the tracker-to-robot registration matrix. The
// matrix is validated once here and read-only afterwards; an invalid matrix
// is a session-level fault.
func (tp *TrackerProcessing) SetTrackerToRobot(t *spatialmath.Transform) error {
	if err := tp.converter.SetCalibration(t); err != nil {
		return errors.Wrap(err, "tracker-to-robot registration")
	}
	tp.logger.Info("tracker-to-robot registration set")
	return nil
}

// SetFiducials installs the head registration landmarks. All three must be
// present.
func (tp *TrackerProcessing) SetFiducials(f *referenceframe.Fiducials) error {
	if !f.Complete() {
		return errors.New("head registration requires all three fiducials")
	}
	tp.fiducials = f
	tp.logger.Info("head registration fiducials set")
	return nil
}

// RecordTargetOffset stores the robot-to-head offset for the current target:
// the transform that, composed onto the head's frame, reproduces the robot
// pose. The compensator replays it against every later head pose.
func (tp *TrackerProcessing) RecordTargetOffset(head, robot spatialmath.Pose) error {
	headT := spatialmath.NewTransformFromPose(head, spatialmath.OrderRotatingZYX)
	inv, err := headT.Invert()
	if err != nil {
		return errors.Wrap(err, "head pose")
	}
	tp.robotToHead = inv.Compose(spatialmath.NewTransformFromPose(robot, spatialmath.OrderRotatingZYX))
	return nil
}

// Reset discards all per-session state while keeping configuration and
// registrations, e.g. after the robot is re-homed mid-session.
func (tp *TrackerProcessing) Reset() {
	tp.poseFilter = control.NewPoseFilter(tp.cfg.CovarianceProcess, tp.cfg.CovarianceMeasure)
	tp.warmup = tp.warmup[:0]
	tp.gate.reset()
	tp.sessionID = uuid.New()
	tp.logger.Infow("tracking session reset", "session", tp.sessionID)
}

// FilterPose runs the six axis filters over the pose. During warm-up the raw
// pose is returned instead so startup transients never reach the robot.
func (tp *TrackerProcessing) FilterPose(p spatialmath.Pose) spatialmath.Pose {
	filtered := tp.poseFilter.Update(p)
	tp.warmup = append(tp.warmup, [3]float64{
		filtered.Position.X, filtered.Position.Y, filtered.Position.Z,
	})
	if len(tp.warmup) < kalmanWarmupWindow {
		tp.logger.Debug("initializing pose filter")
		return p
	}
	tp.warmup = tp.warmup[:copy(tp.warmup, tp.warmup[1:])]
	return filtered
}
