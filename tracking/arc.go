package tracking

import (
	"github.com/golang/geo/r3"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

// ArcMotion is the waypoint set for a large repositioning that swings the
// end effector around the head instead of straight through it.
type ArcMotion struct {
	// MoveOut backs the tool away from the head, orientation unchanged,
	// before any lateral motion.
	MoveOut spatialmath.Pose
	// MiddleArc is the traverse midpoint bowed outward from the head center.
	MiddleArc r3.Vector
	// FinalArc is the approach point just outside the target.
	FinalArc spatialmath.Pose
}

// versor returns the direction from init to final scaled to the configured
// offset length.
func (tp *TrackerProcessing) versor(init, final r3.Vector) (r3.Vector, error) {
	d := final.Sub(init)
	n := d.Norm()
	if n == 0 {
		return r3.Vector{}, ErrDegenerateGeometry
	}
	return d.Mul(tp.cfg.VersorScaleFactor / n), nil
}

// PlanArcMotion synthesizes the move-out point and arc waypoints between the
// robot's current pose and its target, bowing the path outward relative to
// the head center. The outward offsets assume the head is locally spherical
// around that center.
func (tp *TrackerProcessing) PlanArcMotion(
	current spatialmath.Pose,
	headCenter r3.Vector,
	target spatialmath.Pose,
) (*ArcMotion, error) {
	moveOutDir, err := tp.versor(headCenter, current.Position)
	if err != nil {
		return nil, err
	}
	moveOut := spatialmath.Pose{
		Position:    current.Position.Add(moveOutDir),
		Orientation: current.Orientation,
	}

	mid := current.Position.Add(target.Position).Mul(0.5)
	midDir, err := tp.versor(headCenter, mid)
	if err != nil {
		return nil, err
	}
	middleArc := mid.Add(midDir.Mul(2))

	finalDir, err := tp.versor(headCenter, target.Position)
	if err != nil {
		return nil, err
	}
	finalArc := spatialmath.Pose{
		Position:    target.Position.Add(finalDir),
		Orientation: target.Orientation,
	}

	return &ArcMotion{MoveOut: moveOut, MiddleArc: middleArc, FinalArc: finalArc}, nil
}
