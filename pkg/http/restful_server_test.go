package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	pushmocks "github.com/vuhamthieu/posture-dashboard/pkg/push/mocks"
	_ "github.com/vuhamthieu/posture-dashboard/pkg/testing"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
	"github.com/vuhamthieu/posture-dashboard/pkg/db"
	"github.com/vuhamthieu/posture-dashboard/pkg/models"
	"github.com/vuhamthieu/posture-dashboard/pkg/posture"
)

const testCronSecret = "cron-secret-for-tests"

func setupTestServer(t *testing.T) (*RestfulServer, *pushmocks.MockGateway) {
	ctrl := gomock.NewController(t)
	mockGateway := pushmocks.NewMockGateway(ctrl)

	core := posture.Posture{
		Db:       *db.GetInstance(db.UseMemorySqliteDialector()),
		Push:     mockGateway,
		Tunables: posture.DefaultTunables(),
	}
	core.WithServices(posture.ServiceOpts{
		Detector:   core.GetIDetector(),
		Dispatcher: core.GetIDispatcher(),
		Broker:     core.GetIBroker(),
		Pipeline:   core.GetIPipeline(),
	})

	rs := &RestfulServer{
		Server:     gin.Default(),
		Core:       &core,
		CronSecret: testCronSecret,
		// no limiter store by default; tests that need one assign it
	}

	rs.Setup()

	return rs, mockGateway
}

func postJSON(rs *RestfulServer, path string, payload any) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPostReading(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	userID := uuid.NewString()

	w := postJSON(rs, fmt.Sprintf("/users/%s/readings", userID), map[string]any{
		"label":      "slouching",
		"confidence": 0.92,
		"neck_angle": 21.5,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var saved models.Reading
	err := rs.Core.Db.Conn.Where("user_id = ?", userID).First(&saved).Error
	require.NoError(t, err)
	assert.Equal(t, models.PostureSlouching, saved.Label)
	assert.Equal(t, 0.92, saved.Confidence)
	require.NotNil(t, saved.Metrics.NeckAngle)
	assert.Equal(t, 21.5, *saved.Metrics.NeckAngle)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestPostReadingValidation(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	userID := uuid.NewString()

	// unknown label
	w := postJSON(rs, fmt.Sprintf("/users/%s/readings", userID), map[string]any{
		"label":      "upside_down",
		"confidence": 0.9,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// confidence out of range
	w = postJSON(rs, fmt.Sprintf("/users/%s/readings", userID), map[string]any{
		"label":      "good",
		"confidence": 1.5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPairUnpairFlow(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	deviceID := uuid.NewString()
	userID := uuid.NewString()

	w := postJSON(rs, fmt.Sprintf("/devices/%s/pair", deviceID), map[string]any{
		"user_id": userID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// the implicit config push is already visible to the device poll
	req := httptest.NewRequest("GET", fmt.Sprintf("/devices/%s/commands", deviceID), nil)
	w = httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var commands []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &commands))
	require.Len(t, commands, 1)
	assert.Equal(t, "UPDATE_CONFIG", commands[0]["command"])
	assert.Equal(t, "PENDING", commands[0]["status"])

	w = postJSON(rs, fmt.Sprintf("/devices/%s/unpair", deviceID), map[string]any{
		"user_id": userID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var device models.Device
	require.NoError(t, rs.Core.Db.Conn.First(&device, "device_id = ?", deviceID).Error)
	assert.Nil(t, device.UserID)
}

func TestPairForeignDeviceRejected(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	deviceID := uuid.NewString()
	ownerB := uuid.NewString()

	w := postJSON(rs, fmt.Sprintf("/devices/%s/pair", deviceID), map[string]any{
		"user_id": ownerB,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(rs, fmt.Sprintf("/devices/%s/pair", deviceID), map[string]any{
		"user_id": uuid.NewString(),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var device models.Device
	require.NoError(t, rs.Core.Db.Conn.First(&device, "device_id = ?", deviceID).Error)
	require.NotNil(t, device.UserID)
	assert.Equal(t, ownerB, *device.UserID)
}

func TestEnqueueAndDriveCommand(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	deviceID := uuid.NewString()
	userID := uuid.NewString()

	w := postJSON(rs, fmt.Sprintf("/devices/%s/pair", deviceID), map[string]any{
		"user_id": userID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// a stranger cannot enqueue
	w = postJSON(rs, fmt.Sprintf("/devices/%s/commands", deviceID), map[string]any{
		"user_id": uuid.NewString(),
		"command": "RESTART",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postJSON(rs, fmt.Sprintf("/devices/%s/commands", deviceID), map[string]any{
		"user_id": userID,
		"command": "UPDATE_CODE",
		"payload": `{"ref":"main"}`,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Command
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// device drives it to a terminal state
	w = postJSON(rs, fmt.Sprintf("/devices/%s/commands/%s/status", deviceID, created.ID), map[string]any{
		"status": "EXECUTING",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(rs, fmt.Sprintf("/devices/%s/commands/%s/status", deviceID, created.ID), map[string]any{
		"status": "DONE",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// terminal rows leave the in-flight view; the pair-time config push
	// is still pending
	req := httptest.NewRequest("GET", fmt.Sprintf("/devices/%s/commands", deviceID), nil)
	recorder := httptest.NewRecorder()
	rs.Server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var commands []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &commands))
	require.Len(t, commands, 1)
	assert.Equal(t, "UPDATE_CONFIG", commands[0]["command"])
}

func TestCommandStatusValidation(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	deviceID := uuid.NewString()

	w := postJSON(rs, fmt.Sprintf("/devices/%s/commands/%s/status", deviceID, uuid.NewString()), map[string]any{
		"status": "PENDING",
	})
	// PENDING is never a reportable state
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(rs, fmt.Sprintf("/devices/%s/commands/%s/status", deviceID, uuid.NewString()), map[string]any{
		"status": "EXECUTING",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveDeviceConfig(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)
	deviceID := uuid.NewString()
	userID := uuid.NewString()

	w := postJSON(rs, fmt.Sprintf("/devices/%s/pair", deviceID), map[string]any{
		"user_id": userID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(rs, fmt.Sprintf("/devices/%s/config", deviceID), map[string]any{
		"user_id":        userID,
		"neck_threshold": 35.0,
		"alert_language": "vi",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var device models.Device
	require.NoError(t, rs.Core.Db.Conn.First(&device, "device_id = ?", deviceID).Error)
	assert.Equal(t, 35.0, device.Settings["neck_threshold"])
	assert.Equal(t, "vi", device.Settings["alert_language"])
}

func TestCronEndpointAuth(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/cron/posture", nil)
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/cron/posture", nil)
	req.Header.Set("Authorization", "Bearer "+testCronSecret)
	w = httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestReadingLimiter(t *testing.T) {
	var logBuf bytes.Buffer
	common.SetTestCaptureLogger(&logBuf, zapcore.InfoLevel)

	rs, _ := setupTestServer(t)
	rs.RateLimiterStore = posture.NewRateLimiterStore(100, 100)
	userID := uuid.NewString()

	w := postJSON(rs, fmt.Sprintf("/users/%s/limiter", userID), map[string]any{
		"rate":  1.0,
		"burst": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	logged := logBuf.String()
	assert.Contains(t, logged, "Limiter updated")
	assert.Contains(t, logged, common.LoggerNameRestfulServer)
	assert.Contains(t, logged, userID)

	payload := map[string]any{"label": "good", "confidence": 0.9}
	w = postJSON(rs, fmt.Sprintf("/users/%s/readings", userID), payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(rs, fmt.Sprintf("/users/%s/readings", userID), payload)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
