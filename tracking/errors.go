package tracking

import "github.com/pkg/errors"

var (
	// ErrCalibrationRequired is returned by operations that need the head
	// registration fiducials before they have been set. It fails the tick's
	// compensation, not the session.
	ErrCalibrationRequired = errors.New("head registration fiducials not set")

	// ErrDegenerateGeometry is returned when a direction cannot be derived
	// because two points coincide, e.g. the robot sitting exactly on the
	// estimated head center.
	ErrDegenerateGeometry = errors.New("degenerate geometry: cannot derive a direction from coincident points")

	// ErrNoTargetOffset is returned by the compensator before a robot-to-head
	// offset has been recorded.
	ErrNoTargetOffset = errors.New("robot-to-head target offset not recorded")
)
