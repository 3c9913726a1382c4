package control

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

func TestAxisFilterConvergence(t *testing.T) {
	af := NewAxisFilter(DefaultCovarianceProcess, DefaultCovarianceMeasure)
	const target = 5.0
	var got float64
	for i := 0; i < 2000; i++ {
		got = af.Update(target)
	}
	test.That(t, got, test.ShouldAlmostEqual, target, 0.01)
	test.That(t, af.Value(), test.ShouldEqual, got)

	// Once settled the estimate stays settled.
	for i := 0; i < 100; i++ {
		test.That(t, math.Abs(af.Update(target)-target), test.ShouldBeLessThan, 0.01)
	}
}

func TestAxisFilterSmoothsNoise(t *testing.T) {
	af := NewAxisFilter(DefaultCovarianceProcess, DefaultCovarianceMeasure)
	const center = 10.0

	// Deterministic zero-mean jitter around the center.
	noise := func(i int) float64 {
		return 0.5 * math.Sin(float64(i)*2.39996)
	}
	for i := 0; i < 500; i++ {
		af.Update(center + noise(i))
	}

	var inVar, outVar float64
	const n = 500
	for i := 0; i < n; i++ {
		in := center + noise(500+i)
		out := af.Update(in)
		inVar += (in - center) * (in - center)
		outVar += (out - center) * (out - center)
	}
	test.That(t, outVar/n, test.ShouldBeLessThan, inVar/n)
}

func TestPoseFilterIndependentAxes(t *testing.T) {
	pf := NewPoseFilter(DefaultCovarianceProcess, DefaultCovarianceMeasure)
	in := spatialmath.Pose{
		Position:    r3.Vector{X: 1, Y: -2, Z: 3},
		Orientation: spatialmath.EulerAngles{Alpha: 10, Beta: 0, Gamma: -20},
	}
	var out spatialmath.Pose
	for i := 0; i < 2000; i++ {
		out = pf.Update(in)
	}
	test.That(t, spatialmath.PoseAlmostEqual(out, in, 0.01), test.ShouldBeTrue)
	// An axis fed only zeros stays at zero.
	test.That(t, out.Orientation.Beta, test.ShouldAlmostEqual, 0, 1e-9)
}
