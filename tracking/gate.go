package tracking

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/montanaflynn/stats"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

const (
	// headPoseWindow is how many pose/timestamp pairs feed one velocity
	// estimate.
	headPoseWindow = 10
	// velocityWindow is how many velocity estimates feed the running
	// standard deviation.
	velocityWindow = 30
)

// motionGate decides, from a trailing window of head poses, whether the head
// is moving slowly enough for compensation to proceed. Two smoothing stages
// back the decision: a mean-of-halves velocity estimate over the pose window,
// then a standard deviation over a longer velocity window, so neither sample
// noise nor short transients flip the gate.
type motionGate struct {
	clock     clock.Clock
	logger    golog.Logger
	threshold float64

	poses      [][6]float64
	stamps     []time.Time
	velocities [][6]float64

	velocityStd      float64
	lastDisplacement [6]float64
}

func newMotionGate(threshold float64, clk clock.Clock, logger golog.Logger) *motionGate {
	return &motionGate{
		clock:     clk,
		logger:    logger,
		threshold: threshold,
	}
}

// Observe appends the current head pose to the trailing window and reports
// whether compensation may proceed. It returns false until enough history has
// accumulated to estimate a velocity at all.
func (g *motionGate) Observe(head spatialmath.Pose) bool {
	g.poses = append(g.poses, head.Components())
	g.stamps = append(g.stamps, g.clock.Now())
	if len(g.poses) < headPoseWindow {
		return false
	}

	velocity, displacement, ok := estimateHeadVelocity(g.poses, g.stamps)
	g.evictOldestPose()
	if !ok {
		return false
	}
	g.lastDisplacement = displacement

	g.velocities = append(g.velocities, velocity)
	if len(g.velocities) >= velocityWindow {
		flat := make([]float64, 0, len(g.velocities)*6)
		for _, v := range g.velocities {
			flat = append(flat, v[:]...)
		}
		if std, err := stats.StandardDeviation(flat); err == nil {
			g.velocityStd = std
		}
		g.velocities = g.velocities[:copy(g.velocities, g.velocities[1:])]
	}

	if g.velocityStd > g.threshold {
		g.logger.Debugw("head velocity threshold activated", "std", g.velocityStd)
		return false
	}
	return true
}

// VelocityStd returns the current running standard deviation of the head
// velocity estimates. It stays zero until the velocity window fills.
func (g *motionGate) VelocityStd() float64 {
	return g.velocityStd
}

// LastDisplacement returns the head displacement over the most recent pose
// window.
func (g *motionGate) LastDisplacement() [6]float64 {
	return g.lastDisplacement
}

func (g *motionGate) reset() {
	g.poses = g.poses[:0]
	g.stamps = g.stamps[:0]
	g.velocities = g.velocities[:0]
	g.velocityStd = 0
	g.lastDisplacement = [6]float64{}
}

func (g *motionGate) evictOldestPose() {
	g.poses = g.poses[:copy(g.poses, g.poses[1:])]
	g.stamps = g.stamps[:copy(g.stamps, g.stamps[1:])]
}

// estimateHeadVelocity splits the window in half by index, averages each
// half per component, and divides the difference by the window's time span.
// ok is false when the window spans no time.
func estimateHeadVelocity(poses [][6]float64, stamps []time.Time) (velocity, displacement [6]float64, ok bool) {
	half := len(poses) / 2
	var first, second [6]float64
	for i, p := range poses {
		for j := range p {
			if i < half {
				first[j] += p[j]
			} else {
				second[j] += p[j]
			}
		}
	}
	for j := range first {
		first[j] /= float64(half)
		second[j] /= float64(len(poses) - half)
		displacement[j] = second[j] - first[j]
	}

	dt := stamps[len(stamps)-1].Sub(stamps[0]).Seconds()
	if dt <= 0 {
		return velocity, displacement, false
	}
	for j := range displacement {
		velocity[j] = displacement[j] / dt
	}
	return velocity, displacement, true
}
