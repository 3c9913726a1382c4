package referenceframe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

func TestPassThroughWhenUncalibrated(t *testing.T) {
	c := NewConverter()
	test.That(t, c.Calibrated(), test.ShouldBeFalse)
	sample := TrackerSample{
		Probe:     spatialmath.Pose{Position: r3.Vector{X: 10}},
		Reference: spatialmath.Pose{Orientation: spatialmath.EulerAngles{Alpha: 45}},
		Object:    spatialmath.Pose{Position: r3.Vector{X: 5, Y: 5}},
	}
	test.That(t, c.ToRobotFrame(sample), test.ShouldResemble, sample)
}

func TestIdentityCalibration(t *testing.T) {
	c := NewConverter()
	test.That(t, c.SetCalibration(spatialmath.NewTransform()), test.ShouldBeNil)
	test.That(t, c.Calibrated(), test.ShouldBeTrue)

	// Zero orientations are immune to the order change on decode, so identity
	// calibration hands the positions back unchanged.
	sample := TrackerSample{
		Probe:  spatialmath.Pose{Position: r3.Vector{X: 10}},
		Object: spatialmath.Pose{Position: r3.Vector{X: 5, Y: 5}},
	}
	got := c.ToRobotFrame(sample)
	test.That(t, spatialmath.PoseAlmostEqual(got.Probe, sample.Probe, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.PoseAlmostEqual(got.Reference, sample.Reference, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.PoseAlmostEqual(got.Object, sample.Object, 1e-9), test.ShouldBeTrue)
}

func TestOrientedCalibrationTranslates(t *testing.T) {
	c := NewConverter()
	cal := spatialmath.NewTransformFromPose(
		spatialmath.Pose{Position: r3.Vector{X: 100, Y: -50, Z: 25}},
		spatialmath.OrderRotatingZYX,
	)
	test.That(t, c.SetCalibration(cal), test.ShouldBeNil)

	got := c.ToRobotFrame(TrackerSample{Probe: spatialmath.Pose{Position: r3.Vector{X: 1, Y: 2, Z: 3}}})
	test.That(t, got.Probe.Position.X, test.ShouldAlmostEqual, 101)
	test.That(t, got.Probe.Position.Y, test.ShouldAlmostEqual, -48)
	test.That(t, got.Probe.Position.Z, test.ShouldAlmostEqual, 28)
}

func TestOrderChangeOnDecode(t *testing.T) {
	c := NewConverter()
	test.That(t, c.SetCalibration(spatialmath.NewTransform()), test.ShouldBeNil)

	// With identity calibration a rotated marker comes back with its angles
	// relabeled: rzyx(a,b,g) reads back as sxyz(g,b,a).
	in := spatialmath.Pose{Orientation: spatialmath.EulerAngles{Alpha: 30, Beta: 20, Gamma: 10}}
	got := c.ToRobotFrame(TrackerSample{Reference: in}).Reference
	want := spatialmath.EulerAngles{Alpha: 10, Beta: 20, Gamma: 30}
	test.That(t, spatialmath.PoseAlmostEqual(got, spatialmath.Pose{Orientation: want}, 1e-6), test.ShouldBeTrue)
}

func TestValidateCalibration(t *testing.T) {
	test.That(t, ValidateCalibration(nil), test.ShouldNotBeNil)
	test.That(t, ValidateCalibration(spatialmath.NewTransform()), test.ShouldBeNil)

	scaled := mgl64.Ident4()
	scaled.Set(1, 1, 3)
	err := ValidateCalibration(spatialmath.NewTransformFromMatrix(scaled))
	test.That(t, err, test.ShouldNotBeNil)

	c := NewConverter()
	test.That(t, c.SetCalibration(spatialmath.NewTransformFromMatrix(scaled)), test.ShouldNotBeNil)
	test.That(t, c.Calibrated(), test.ShouldBeFalse)
}

func TestFiducialsComplete(t *testing.T) {
	var f *Fiducials
	test.That(t, f.Complete(), test.ShouldBeFalse)
	f = &Fiducials{EarLeft: spatialmath.NewTransform(), EarRight: spatialmath.NewTransform()}
	test.That(t, f.Complete(), test.ShouldBeFalse)
	f.Nasion = spatialmath.NewTransform()
	test.That(t, f.Complete(), test.ShouldBeTrue)
}
