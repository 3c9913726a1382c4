// Package tracking implements the per-tick head-tracking compensation
// pipeline: frame conversion, pose filtering, motion gating, head-center
// estimation, motion compensation and arc planning, owned by a single
// TrackerProcessing instance driven by the navigation loop.
package tracking

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/cnsrobotics/neuronav/control"
)

// Config tunes the tracking pipeline.
type Config struct {
	// VersorScaleFactor is how far, in millimeters, arc waypoints are pushed
	// away from the head center.
	VersorScaleFactor float64 `json:"versor_scale_factor"`
	// HeadVelocityThreshold is the cutoff on the velocity standard deviation
	// above which compensation is blocked, in mm/s.
	HeadVelocityThreshold float64 `json:"head_velocity_threshold"`
	// ArcThresholdDistance is the displacement, in millimeters, beyond which
	// a repositioning is routed through an arc instead of a direct move.
	ArcThresholdDistance float64 `json:"arc_threshold_distance"`
	// CovarianceProcess and CovarianceMeasure tune the pose filter.
	CovarianceProcess float64 `json:"covariance_process"`
	CovarianceMeasure float64 `json:"covariance_measure"`
	// DisablePoseFilter feeds raw poses to the motion gate instead of
	// filtered ones, e.g. when the tracker does its own smoothing.
	DisablePoseFilter bool `json:"disable_pose_filter,omitempty"`
}

// DefaultConfig returns the tuning used with the reference hardware.
func DefaultConfig() Config {
	return Config{
		VersorScaleFactor:     50,
		HeadVelocityThreshold: 20,
		ArcThresholdDistance:  80,
		CovarianceProcess:     control.DefaultCovarianceProcess,
		CovarianceMeasure:     control.DefaultCovarianceMeasure,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if cfg.VersorScaleFactor <= 0 {
		return utils.NewConfigValidationError(path, errors.New("versor_scale_factor must be positive"))
	}
	if cfg.HeadVelocityThreshold <= 0 {
		return utils.NewConfigValidationError(path, errors.New("head_velocity_threshold must be positive"))
	}
	if cfg.ArcThresholdDistance <= 0 {
		return utils.NewConfigValidationError(path, errors.New("arc_threshold_distance must be positive"))
	}
	if cfg.CovarianceProcess <= 0 || cfg.CovarianceMeasure <= 0 {
		return utils.NewConfigValidationError(path, errors.New("filter covariances must be positive"))
	}
	return nil
}
