// Package control implements the signal filters applied to tracker poses
// before they drive robot motion.
package control

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cnsrobotics/neuronav/spatialmath"
)

// Default noise tuning for the tracker stabilizers. These were chosen against
// the coupled measurement model below; retuning one without the other shifts
// the filter lag.
const (
	DefaultCovarianceProcess = 0.001
	DefaultCovarianceMeasure = 0.1
)

// AxisFilter is a discrete constant-velocity Kalman filter over a single pose
// axis. The state is [value, rate]; the transition advances value by rate and
// keeps rate. The measurement row is [1 1], observing value+rate combined
// rather than value alone. That coupling is deliberate and the noise defaults
// assume it.
type AxisFilter struct {
	x *mat.VecDense // state [value, rate]
	p *mat.Dense    // state covariance
	f *mat.Dense    // transition
	h *mat.Dense    // measurement row
	q *mat.Dense    // process noise
	r float64       // measurement noise
}

// NewAxisFilter returns a filter with zero initial state and the given noise
// covariances.
func NewAxisFilter(covProcess, covMeasure float64) *AxisFilter {
	return &AxisFilter{
		x: mat.NewVecDense(2, nil),
		p: mat.NewDense(2, 2, nil),
		f: mat.NewDense(2, 2, []float64{1, 1, 0, 1}),
		h: mat.NewDense(1, 2, []float64{1, 1}),
		q: mat.NewDense(2, 2, []float64{covProcess, 0, 0, covProcess}),
		r: covMeasure,
	}
}

// Update runs one predict/correct cycle against the measurement and returns
// the corrected value estimate.
func (af *AxisFilter) Update(measurement float64) float64 {
	// Predict: x = F x, P = F P Fᵀ + Q.
	var fx mat.VecDense
	fx.MulVec(af.f, af.x)
	af.x.CopyVec(&fx)

	var fp, fpft mat.Dense
	fp.Mul(af.f, af.p)
	fpft.Mul(&fp, af.f.T())
	af.p.Add(&fpft, af.q)

	// Correct: K = P Hᵀ (H P Hᵀ + R)⁻¹, x += K (z - H x), P = (I - K H) P.
	var pht mat.Dense
	pht.Mul(af.p, af.h.T())
	var hpht mat.Dense
	hpht.Mul(af.h, &pht)
	s := hpht.At(0, 0) + af.r

	k := mat.NewVecDense(2, []float64{pht.At(0, 0) / s, pht.At(1, 0) / s})
	innovation := measurement - (af.h.At(0, 0)*af.x.AtVec(0) + af.h.At(0, 1)*af.x.AtVec(1))
	af.x.AddScaledVec(af.x, innovation, k)

	var kh mat.Dense
	kh.Mul(k, af.h)
	ikh := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	ikh.Sub(ikh, &kh)
	var np mat.Dense
	np.Mul(ikh, af.p)
	af.p.Copy(&np)

	return af.x.AtVec(0)
}

// Value returns the current value estimate without advancing the filter.
func (af *AxisFilter) Value() float64 {
	return af.x.AtVec(0)
}

// PoseFilter damps tracker jitter by running six independent axis filters,
// one per pose component. There is no cross-axis coupling.
type PoseFilter struct {
	axes [6]*AxisFilter
}

// NewPoseFilter returns a pose filter with the given noise covariances shared
// by all six axes.
func NewPoseFilter(covProcess, covMeasure float64) *PoseFilter {
	pf := &PoseFilter{}
	for i := range pf.axes {
		pf.axes[i] = NewAxisFilter(covProcess, covMeasure)
	}
	return pf
}

// Update filters each component of the pose independently and returns the
// filtered pose.
func (pf *PoseFilter) Update(p spatialmath.Pose) spatialmath.Pose {
	in := p.Components()
	var out [6]float64
	for i, af := range pf.axes {
		out[i] = af.Update(in[i])
	}
	return spatialmath.PoseFromComponents(out)
}
