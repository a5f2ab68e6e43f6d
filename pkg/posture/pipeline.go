package posture

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
	"github.com/vuhamthieu/posture-dashboard/pkg/models"
)

// runOnce is the stateless batch job behind the scheduled trigger: pull the
// reading window across all users, detect per user, dispatch bad verdicts.
// One user's failure never stops the rest of the batch; re-invocation after
// a partial failure is safe because the dispatch cooldown holds.
func (p *Posture) runOnce() (models.BatchReport, error) {
	cfg := p.Tunables.Pipeline

	logger := common.GetLoggerWith(
		common.LoggerNamePostureCore,
		zap.String(common.LoggerFieldPostureCategory, common.LoggerCategoryPipeline),
	)

	windowFrom := time.Now().Add(-cfg.Lookback)

	var readings []models.Reading
	err := p.Db.Conn.
		Where("created_at >= ? AND user_id <> ''", windowFrom).
		Order("created_at asc").
		Find(&readings).Error
	if err != nil {
		return models.BatchReport{}, err
	}

	if len(readings) == 0 {
		logger.Info("No readings in window")
		return models.BatchReport{}, nil
	}

	byUser := common.GroupBy(readings, func(r models.Reading) string {
		return r.UserID
	})

	userIDs := make([]string, 0, len(byUser))
	for userID := range byUser {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	report := models.BatchReport{UsersSeen: len(userIDs)}

	for _, userID := range userIDs {
		verdict := p.Detector.Detect(byUser[userID])
		if !verdict.IsBad {
			continue
		}

		logger.Info("Bad posture detected",
			zap.String("user_id", userID),
			zap.Reflect("verdict", verdict))

		outcome, err := p.Dispatcher.Dispatch(userID, verdict)
		if err != nil {
			logger.Warn("Dispatch failed",
				zap.String("user_id", userID),
				zap.Error(err))
			report.Failed++
			continue
		}

		if outcome.Sent {
			report.Dispatched++
		} else {
			report.Skipped++
		}
	}

	logger.Info("Batch run finished", zap.Reflect("report", report))
	return report, nil
}

type IPipelineImpl struct {
	posture *Posture
}

func (ip *IPipelineImpl) RunOnce() (models.BatchReport, error) {
	return ip.posture.runOnce()
}

func (p *Posture) GetIPipeline() IPipeline {
	return &IPipelineImpl{posture: p}
}
