// Package main runs the head-tracking compensation pipeline against a
// synthetic tracker feed and a logging robot controller. It is a wiring
// demonstration, not a driver for real hardware.
package main

import (
	"context"
	"math"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/cnsrobotics/neuronav/referenceframe"
	"github.com/cnsrobotics/neuronav/spatialmath"
	"github.com/cnsrobotics/neuronav/tracking"
)

// swayingHead simulates a patient head slowly swaying a few millimeters.
type swayingHead struct {
	tick int
}

func (s *swayingHead) Read(_ context.Context) (referenceframe.TrackerSample, error) {
	s.tick++
	t := float64(s.tick) * 0.05
	head := spatialmath.Pose{
		Position:    r3.Vector{X: 3 * math.Sin(t), Y: 2 * math.Sin(t/2), Z: 0},
		Orientation: spatialmath.EulerAngles{Alpha: math.Sin(t / 3)},
	}
	return referenceframe.TrackerSample{
		Probe:     spatialmath.Pose{Position: r3.Vector{X: 50, Y: 50, Z: 50}},
		Reference: head,
		Object:    spatialmath.Pose{Position: r3.Vector{Z: 120}},
	}, nil
}

// loggingRobot stands in for the robot transport layer.
type loggingRobot struct {
	logger golog.Logger
	pose   spatialmath.Pose
}

func (r *loggingRobot) CurrentPose(_ context.Context) (spatialmath.Pose, error) {
	return r.pose, nil
}

func (r *loggingRobot) MoveTo(_ context.Context, target spatialmath.Pose) error {
	r.logger.Infow("move", "target", target.Position)
	r.pose = target
	return nil
}

func (r *loggingRobot) MoveArc(_ context.Context, arc tracking.ArcMotion) error {
	r.logger.Infow("arc move",
		"move_out", arc.MoveOut.Position,
		"middle", arc.MiddleArc,
		"final", arc.FinalArc.Position,
	)
	r.pose = arc.FinalArc
	return nil
}

func main() {
	logger := golog.NewDevelopmentLogger("compensation")
	ctx := context.Background()

	tp, err := tracking.NewTrackerProcessing(tracking.DefaultConfig(), logger)
	if err != nil {
		logger.Fatal(err)
	}
	if err := tp.SetTrackerToRobot(spatialmath.NewTransform()); err != nil {
		logger.Fatal(err)
	}
	fiducials := &referenceframe.Fiducials{
		EarLeft: spatialmath.NewTransformFromPose(
			spatialmath.Pose{Position: r3.Vector{X: -70}}, spatialmath.OrderRotatingZYX),
		EarRight: spatialmath.NewTransformFromPose(
			spatialmath.Pose{Position: r3.Vector{X: 70}}, spatialmath.OrderRotatingZYX),
		Nasion: spatialmath.NewTransformFromPose(
			spatialmath.Pose{Position: r3.Vector{Y: 90}}, spatialmath.OrderRotatingZYX),
	}
	if err := tp.SetFiducials(fiducials); err != nil {
		logger.Fatal(err)
	}

	var source tracking.TrackerSource = &swayingHead{}
	robot := &loggingRobot{logger: logger, pose: spatialmath.Pose{Position: r3.Vector{Z: 150}}}
	if err := tp.RecordTargetOffset(spatialmath.Pose{}, spatialmath.Pose{Position: r3.Vector{Z: 120}}); err != nil {
		logger.Fatal(err)
	}

	var controller tracking.RobotController = robot
	for i := 0; i < 200; i++ {
		sample, err := source.Read(ctx)
		if err != nil {
			logger.Fatal(err)
		}
		current, err := controller.CurrentPose(ctx)
		if err != nil {
			logger.Fatal(err)
		}

		res, err := tp.Tick(sample, current)
		if err != nil {
			logger.Warnw("tick compensation failed", "error", err)
			continue
		}
		switch res.Status {
		case tracking.TickMove:
			if err := controller.MoveTo(ctx, res.Target); err != nil {
				logger.Fatal(err)
			}
		case tracking.TickArc:
			if err := controller.MoveArc(ctx, *res.Arc); err != nil {
				logger.Fatal(err)
			}
		case tracking.TickNotReady:
			logger.Debug("holding position")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
