package tracking

import (
	"context"

	"github.com/cnsrobotics/neuronav/referenceframe"
	"github.com/cnsrobotics/neuronav/spatialmath"
)

// TrackerSource supplies one raw tracker sample per navigation tick. It is
// implemented by the tracker acquisition layer; the pipeline never talks to
// hardware itself.
type TrackerSource interface {
	Read(ctx context.Context) (referenceframe.TrackerSample, error)
}

// RobotController consumes the targets the pipeline produces. It is
// implemented by the robot transport layer.
type RobotController interface {
	CurrentPose(ctx context.Context) (spatialmath.Pose, error)
	MoveTo(ctx context.Context, target spatialmath.Pose) error
	MoveArc(ctx context.Context, arc ArcMotion) error
}
