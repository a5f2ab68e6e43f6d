package posture

import (
	"sort"

	"github.com/vuhamthieu/posture-dashboard/pkg/models"
)

const verdictReasonNeckAngle = "bad_posture_neck_angle"

// detect evaluates one user's reading window. Pure, no I/O. The caller's
// ordering is not trusted; readings are stably re-sorted by timestamp so
// identical-timestamp inputs stay deterministic.
func (p *Posture) detect(readings []models.Reading) models.Verdict {
	cfg := p.Tunables.Detector

	if len(readings) < cfg.MinSamples {
		return models.Verdict{}
	}

	sorted := make([]models.Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.Before(sorted[b].CreatedAt)
	})

	valid := make([]models.Reading, 0, len(sorted))
	for _, r := range sorted {
		if r.Confidence >= cfg.ConfidenceFloor {
			valid = append(valid, r)
		}
	}

	if len(valid) < cfg.MinSamples {
		return models.Verdict{SampleCount: len(valid)}
	}

	badByLabel := 0
	badByAngle := 0
	for _, r := range valid {
		if r.Label != models.PostureGood {
			badByLabel++
		}
		// missing angles count in the denominator only
		if angle := r.Metrics.NeckAngle; angle != nil && *angle >= cfg.AngleThreshold {
			badByAngle++
		}
	}

	badRatio := float64(badByLabel) / float64(len(valid))
	angleRatio := float64(badByAngle) / float64(len(valid))

	// longest run of consecutive bad readings, bad by label OR by angle
	maxContinuousBad := 0
	streak := 0
	for _, r := range valid {
		bad := r.Label != models.PostureGood
		if angle := r.Metrics.NeckAngle; angle != nil && *angle >= cfg.AngleThreshold {
			bad = true
		}
		if bad {
			streak++
			if streak > maxContinuousBad {
				maxContinuousBad = streak
			}
		} else {
			streak = 0
		}
	}

	// coarse estimate: assumes uniform sampling, ignores actual gaps
	estimatedBadSeconds := max(badByLabel, badByAngle) * cfg.SampleIntervalSeconds

	verdict := models.Verdict{
		BadRatio:            badRatio,
		AngleRatio:          angleRatio,
		MaxContinuousBad:    maxContinuousBad,
		EstimatedBadSeconds: estimatedBadSeconds,
		SampleCount:         len(valid),
	}

	verdict.IsBad = badRatio >= cfg.BadRatioGate &&
		maxContinuousBad >= cfg.StreakGate &&
		estimatedBadSeconds >= cfg.DurationGateSeconds

	if verdict.IsBad {
		verdict.Reason = verdictReasonNeckAngle
	}

	return verdict
}

type IDetectorImpl struct {
	posture *Posture
}

func (id *IDetectorImpl) Detect(readings []models.Reading) models.Verdict {
	return id.posture.detect(readings)
}

func (p *Posture) GetIDetector() IDetector {
	return &IDetectorImpl{posture: p}
}
