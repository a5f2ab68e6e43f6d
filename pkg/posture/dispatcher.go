package posture

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
	"github.com/vuhamthieu/posture-dashboard/pkg/models"
)

const detectorRevision = "v2"

const (
	SkipReasonCooldown = "cooldown"
	SkipReasonNoTokens = "no_tokens"
)

type pushMessage struct {
	Level models.Severity
	Title string
	Body  string
}

// buildPushMessage picks the message tier. Order matters: the duration tier
// is checked before the ratio tier, first match wins.
func buildPushMessage(verdict models.Verdict, cfg DispatcherConfig) pushMessage {
	if verdict.EstimatedBadSeconds >= cfg.SevereSeconds {
		return pushMessage{
			Level: models.SeveritySevere,
			Title: "Severe posture alert",
			Body:  "You have been bending your neck for a long time. Take a break and fix your posture now.",
		}
	}

	if verdict.BadRatio >= cfg.ModerateBadRatio {
		return pushMessage{
			Level: models.SeverityModerate,
			Title: "Posture warning",
			Body:  "Your posture has been bad for the last few minutes. Sit up straight.",
		}
	}

	return pushMessage{
		Level: models.SeverityMild,
		Title: "Posture reminder",
		Body:  "Remember to keep a good posture to avoid neck strain.",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (p *Posture) dispatch(userID string, verdict models.Verdict) (models.DispatchOutcome, error) {
	cfg := p.Tunables.Dispatcher
	db := p.Db

	logger := common.GetLoggerWith(
		common.LoggerNamePostureCore,
		zap.String(common.LoggerFieldPostureCategory, common.LoggerCategoryDispatcher),
		zap.String("user_id", userID),
	)

	lock := p.dispatchLocks.Get(userID)
	lock.Lock()
	defer lock.Unlock()

	// cooldown: at most one posture warning per user per window
	cooldownFrom := time.Now().Add(-cfg.Cooldown)
	var recent []models.Notification
	err := db.Conn.
		Where("user_id = ? AND type = ? AND created_at >= ?",
			userID, models.NotificationTypePostureWarning, cooldownFrom).
		Limit(1).
		Find(&recent).Error
	if err != nil {
		return models.DispatchOutcome{}, fmt.Errorf("cooldown query: %w", err)
	}
	if len(recent) > 0 {
		logger.Info("Skipped dispatch, cooldown active")
		return models.DispatchOutcome{SkipReason: SkipReasonCooldown}, nil
	}

	var tokens []models.PushToken
	err = db.Conn.
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&tokens).Error
	if err != nil {
		return models.DispatchOutcome{}, fmt.Errorf("token query: %w", err)
	}
	if len(tokens) == 0 {
		logger.Info("Skipped dispatch, no active push tokens")
		return models.DispatchOutcome{SkipReason: SkipReasonNoTokens}, nil
	}

	message := buildPushMessage(verdict, cfg)

	tokenStrings := common.Mapper(tokens, func(t models.PushToken) string {
		return t.Token
	})

	tokenFailures := 0
	ctx, cancel := context.WithTimeout(context.Background(), cfg.PushTimeout)
	defer cancel()

	results, err := p.Push.SendMulticast(ctx, tokenStrings, message.Title, message.Body)
	if err != nil {
		// unreachable gateway degrades to a logged error; the audit
		// row is still written so the cooldown holds
		logger.Warn("Push gateway send failed", zap.Error(err))
		tokenFailures = len(tokenStrings)
	} else {
		for _, result := range results {
			if !result.Success {
				tokenFailures++
			}
		}
	}

	notification := models.Notification{
		UserID:   userID,
		Title:    message.Title,
		Body:     message.Body,
		Type:     models.NotificationTypePostureWarning,
		Severity: message.Level,
		Meta: models.NotificationMeta{
			Detector:            detectorRevision,
			Level:               message.Level,
			Reason:              verdict.Reason,
			BadRatio:            round2(verdict.BadRatio),
			AngleRatio:          round2(verdict.AngleRatio),
			MaxContinuousBad:    verdict.MaxContinuousBad,
			EstimatedBadSeconds: verdict.EstimatedBadSeconds,
			SampleCount:         verdict.SampleCount,
		},
	}

	if err := db.Conn.Create(&notification).Error; err != nil {
		return models.DispatchOutcome{}, fmt.Errorf("audit write: %w", err)
	}

	logger.Info("Notification dispatched",
		zap.String("severity", string(message.Level)),
		zap.Int("tokens", len(tokenStrings)),
		zap.Int("token_failures", tokenFailures))

	return models.DispatchOutcome{
		Sent:          true,
		Notification:  &notification,
		TokenFailures: tokenFailures,
	}, nil
}

type IDispatcherImpl struct {
	posture *Posture
}

func (id *IDispatcherImpl) Dispatch(userID string, verdict models.Verdict) (models.DispatchOutcome, error) {
	return id.posture.dispatch(userID, verdict)
}

func (p *Posture) GetIDispatcher() IDispatcher {
	return &IDispatcherImpl{posture: p}
}
