package tracking

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

func TestGateNeedsHistory(t *testing.T) {
	mock := clock.NewMock()
	g := newMotionGate(20, mock, golog.NewTestLogger(t))

	still := spatialmath.Pose{Position: r3.Vector{X: 1, Y: 2, Z: 3}}
	for i := 0; i < headPoseWindow-1; i++ {
		mock.Add(100 * time.Millisecond)
		test.That(t, g.Observe(still), test.ShouldBeFalse)
	}
	mock.Add(100 * time.Millisecond)
	test.That(t, g.Observe(still), test.ShouldBeTrue)
	test.That(t, g.VelocityStd(), test.ShouldEqual, 0)
}

func TestGateDeterministic(t *testing.T) {
	run := func() []bool {
		mock := clock.NewMock()
		g := newMotionGate(20, mock, golog.NewTestLogger(t))
		var out []bool
		for i := 0; i < 50; i++ {
			mock.Add(100 * time.Millisecond)
			p := spatialmath.Pose{Position: r3.Vector{X: float64(i % 3)}}
			out = append(out, g.Observe(p))
		}
		return out
	}
	test.That(t, run(), test.ShouldResemble, run())
}

func TestGateBlocksFastMotion(t *testing.T) {
	mock := clock.NewMock()
	g := newMotionGate(20, mock, golog.NewTestLogger(t))

	// Accelerating head: velocity estimates spread wider and wider, so once
	// the velocity window fills the deviation blows past the threshold.
	var allowed bool
	for i := 0; i < headPoseWindow+velocityWindow+5; i++ {
		mock.Add(100 * time.Millisecond)
		allowed = g.Observe(spatialmath.Pose{Position: r3.Vector{X: float64(i * i)}})
	}
	test.That(t, allowed, test.ShouldBeFalse)
	test.That(t, g.VelocityStd(), test.ShouldBeGreaterThan, 20.0)
}

func TestGatePermissiveUntilDeviationWindowFills(t *testing.T) {
	mock := clock.NewMock()
	g := newMotionGate(20, mock, golog.NewTestLogger(t))

	// Until 30 velocity estimates exist the running deviation is still zero,
	// so the gate stays open even for violent motion.
	for i := 0; i < headPoseWindow+velocityWindow-2; i++ {
		mock.Add(100 * time.Millisecond)
		allowed := g.Observe(spatialmath.Pose{Position: r3.Vector{X: float64(i * i * i)}})
		test.That(t, allowed, test.ShouldEqual, i >= headPoseWindow-1)
	}
}

func TestGateZeroTimeSpan(t *testing.T) {
	mock := clock.NewMock()
	g := newMotionGate(20, mock, golog.NewTestLogger(t))

	// A window spanning no time cannot yield a velocity; not ready.
	for i := 0; i < headPoseWindow+2; i++ {
		test.That(t, g.Observe(spatialmath.Pose{}), test.ShouldBeFalse)
	}
}

func TestGateDisplacement(t *testing.T) {
	mock := clock.NewMock()
	g := newMotionGate(20, mock, golog.NewTestLogger(t))

	for i := 0; i < headPoseWindow; i++ {
		mock.Add(time.Second)
		g.Observe(spatialmath.Pose{Position: r3.Vector{X: float64(i) * 9}})
	}
	// First-half mean x is 18, second-half mean is 63.
	d := g.LastDisplacement()
	test.That(t, d[0], test.ShouldAlmostEqual, 45)
	test.That(t, d[1], test.ShouldAlmostEqual, 0)
}

func TestGateReset(t *testing.T) {
	mock := clock.NewMock()
	g := newMotionGate(20, mock, golog.NewTestLogger(t))
	for i := 0; i < headPoseWindow; i++ {
		mock.Add(100 * time.Millisecond)
		g.Observe(spatialmath.Pose{})
	}
	g.reset()
	mock.Add(100 * time.Millisecond)
	test.That(t, g.Observe(spatialmath.Pose{}), test.ShouldBeFalse)
	test.That(t, g.VelocityStd(), test.ShouldEqual, 0)
}
