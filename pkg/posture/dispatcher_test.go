package posture

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
	"github.com/vuhamthieu/posture-dashboard/pkg/models"
	"github.com/vuhamthieu/posture-dashboard/pkg/push"
	_ "github.com/vuhamthieu/posture-dashboard/pkg/testing"
)

func badVerdict() models.Verdict {
	return models.Verdict{
		IsBad:               true,
		Reason:              "bad_posture_neck_angle",
		BadRatio:            0.75,
		AngleRatio:          0.5,
		MaxContinuousBad:    5,
		EstimatedBadSeconds: 100,
		SampleCount:         12,
	}
}

func seedToken(t *testing.T, p *Posture, userID, token string, active bool) {
	t.Helper()
	err := p.Db.Conn.Create(&models.PushToken{
		UserID:   userID,
		Token:    token,
		IsActive: active,
	}).Error
	require.NoError(t, err)
}

func TestDispatchSendsAndAudits(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, postureObj, _, _, _, mockGateway := GetMockPostureWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	seedToken(t, postureObj, userID, "token-a", true)
	seedToken(t, postureObj, userID, "token-b", true)
	seedToken(t, postureObj, userID, "token-inactive", false)

	mockGateway.
		EXPECT().
		SendMulticast(gomock.Any(), gomock.Len(2), gomock.Any(), gomock.Any()).
		Return([]push.Result{
			{Token: "token-a", Success: true},
			{Token: "token-b", Success: true},
		}, nil).
		Times(1)

	outcome, err := postureObj.Dispatcher.Dispatch(userID, badVerdict())
	assert.NoError(t, err)
	assert.True(t, outcome.Sent)
	assert.Equal(t, 0, outcome.TokenFailures)
	require.NotNil(t, outcome.Notification)
	assert.Equal(t, models.SeverityModerate, outcome.Notification.Severity)

	var saved []models.Notification
	err = postureObj.Db.Conn.Where("user_id = ?", userID).Find(&saved).Error
	assert.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, models.NotificationTypePostureWarning, saved[0].Type)
	assert.Equal(t, "v2", saved[0].Meta.Detector)
	assert.InDelta(t, 0.75, saved[0].Meta.BadRatio, 0.001)
	assert.Equal(t, 5, saved[0].Meta.MaxContinuousBad)
	assert.Equal(t, 12, saved[0].Meta.SampleCount)
}

func TestDispatchCooldownIsIdempotent(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, postureObj, _, _, _, mockGateway := GetMockPostureWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	seedToken(t, postureObj, userID, "token-a", true)

	// only the first dispatch inside the window reaches the gateway
	mockGateway.
		EXPECT().
		SendMulticast(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]push.Result{{Token: "token-a", Success: true}}, nil).
		Times(1)

	first, err := postureObj.Dispatcher.Dispatch(userID, badVerdict())
	assert.NoError(t, err)
	assert.True(t, first.Sent)

	second, err := postureObj.Dispatcher.Dispatch(userID, badVerdict())
	assert.NoError(t, err)
	assert.False(t, second.Sent)
	assert.Equal(t, SkipReasonCooldown, second.SkipReason)

	var count int64
	err = postureObj.Db.Conn.Model(&models.Notification{}).
		Where("user_id = ?", userID).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDispatchNoActiveTokensSkips(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, postureObj, _, _, _, _ := GetMockPostureWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	seedToken(t, postureObj, userID, "token-dead", false)

	outcome, err := postureObj.Dispatcher.Dispatch(userID, badVerdict())
	assert.NoError(t, err)
	assert.False(t, outcome.Sent)
	assert.Equal(t, SkipReasonNoTokens, outcome.SkipReason)

	var count int64
	err = postureObj.Db.Conn.Model(&models.Notification{}).
		Where("user_id = ?", userID).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDispatchGatewayFailureStillAudits(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, postureObj, _, _, _, mockGateway := GetMockPostureWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	seedToken(t, postureObj, userID, "token-a", true)

	mockGateway.
		EXPECT().
		SendMulticast(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("gateway unreachable")).
		Times(1)

	outcome, err := postureObj.Dispatcher.Dispatch(userID, badVerdict())
	assert.NoError(t, err)
	assert.True(t, outcome.Sent)
	assert.Equal(t, 1, outcome.TokenFailures)

	var count int64
	err = postureObj.Db.Conn.Model(&models.Notification{}).
		Where("user_id = ?", userID).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	logs := ParseLogs(buf)
	found := false
	for _, log := range logs {
		lobj := log.(map[string]any)
		if lobj["category"] == "dispatcher" &&
			lobj["logger"] == "posture_core" &&
			lobj["msg"] == "Push gateway send failed" &&
			lobj["user_id"] == userID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDispatchPartialTokenFailure(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, postureObj, _, _, _, mockGateway := GetMockPostureWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	seedToken(t, postureObj, userID, "token-a", true)
	seedToken(t, postureObj, userID, "token-b", true)

	mockGateway.
		EXPECT().
		SendMulticast(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]push.Result{
			{Token: "token-a", Success: true},
			{Token: "token-b", Success: false, Error: "invalid token"},
		}, nil).
		Times(1)

	outcome, err := postureObj.Dispatcher.Dispatch(userID, badVerdict())
	assert.NoError(t, err)
	assert.True(t, outcome.Sent)
	assert.Equal(t, 1, outcome.TokenFailures)
}

func TestBuildPushMessageSeverityOrder(t *testing.T) {
	cfg := DefaultDispatcherConfig()

	// duration tier wins over the ratio tier
	message := buildPushMessage(models.Verdict{EstimatedBadSeconds: 300, BadRatio: 0.9}, cfg)
	assert.Equal(t, models.SeveritySevere, message.Level)

	message = buildPushMessage(models.Verdict{EstimatedBadSeconds: 100, BadRatio: 0.9}, cfg)
	assert.Equal(t, models.SeverityModerate, message.Level)

	message = buildPushMessage(models.Verdict{EstimatedBadSeconds: 100, BadRatio: 0.5}, cfg)
	assert.Equal(t, models.SeverityMild, message.Level)
}
