package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
	"github.com/vuhamthieu/posture-dashboard/pkg/models"
	"github.com/vuhamthieu/posture-dashboard/pkg/posture"
)

// writeCoreError maps the core error kinds to status codes so the dashboard
// can render "access denied" differently from "bad input".
func writeCoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, posture.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, posture.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, posture.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type ReadingRequest struct {
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	NeckAngle  *float64  `json:"neck_angle"`
	Timestamp  time.Time `json:"timestamp"`
}

var readingRequestSchema = z.Struct(z.Shape{
	"Label": z.String().OneOf([]string{
		string(models.PostureGood),
		string(models.PostureSlouching),
		string(models.PostureLeaning),
		string(models.PostureTilting),
		string(models.PostureUnknown),
	}).Required(),
	"Confidence": z.Float64().GTE(0).LTE(1).Required(),
	"NeckAngle":  z.Ptr(z.Float64()),
	"Timestamp":  z.Time(),
})

func (rs *RestfulServer) PostReading(c *gin.Context) {
	userID := c.Param("user_id")

	if !rs.CheckLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req ReadingRequest
	if err := readingRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	createdAt := req.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	reading := models.Reading{
		UserID:     userID,
		Label:      models.PostureLabel(req.Label),
		Confidence: req.Confidence,
		Metrics:    models.ReadingMetrics{NeckAngle: req.NeckAngle},
		CreatedAt:  createdAt,
	}

	if err := rs.Core.Db.Conn.Create(&reading).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": reading.ID})
}

type PairRequest struct {
	UserID string `json:"user_id"`
}

var pairRequestSchema = z.Struct(z.Shape{
	"UserID": z.String().Required(),
})

func (rs *RestfulServer) PairDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req PairRequest
	if err := pairRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Core.Broker.Pair(deviceID, req.UserID); err != nil {
		writeCoreError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) UnpairDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req PairRequest
	if err := pairRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Core.Broker.Unpair(deviceID, req.UserID); err != nil {
		writeCoreError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type DeviceConfigRequest struct {
	UserID        string  `json:"user_id"`
	NeckThreshold float64 `json:"neck_threshold"`
	AlertLanguage string  `json:"alert_language"`
	OledIconStyle string  `json:"oled_icon_style"`
}

var deviceConfigRequestSchema = z.Struct(z.Shape{
	"UserID":        z.String().Required(),
	"NeckThreshold": z.Float64().Required(),
	"AlertLanguage": z.String(),
	"OledIconStyle": z.String(),
})

func (rs *RestfulServer) SaveDeviceConfig(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req DeviceConfigRequest
	if err := deviceConfigRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	settings := models.DeviceSettings{
		"neck_threshold": req.NeckThreshold,
	}
	if req.AlertLanguage != "" {
		settings["alert_language"] = req.AlertLanguage
	}
	if req.OledIconStyle != "" {
		settings["oled_icon_style"] = req.OledIconStyle
	}

	if err := rs.Core.Broker.SaveSettings(deviceID, req.UserID, settings); err != nil {
		writeCoreError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type EnqueueCommandRequest struct {
	UserID  string `json:"user_id"`
	Command string `json:"command"`
	Payload string `json:"payload"`
}

var enqueueCommandRequestSchema = z.Struct(z.Shape{
	"UserID": z.String().Required(),
	"Command": z.String().OneOf([]string{
		string(models.CommandUpdateCode),
		string(models.CommandRestart),
		string(models.CommandUpdateConfig),
	}).Required(),
	"Payload": z.String(),
})

func (rs *RestfulServer) EnqueueCommand(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req EnqueueCommandRequest
	if err := enqueueCommandRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	command, err := rs.Core.Broker.Enqueue(deviceID, models.CommandType(req.Command), req.Payload, req.UserID)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, command)
}

type commandView struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Status    string    `json:"status"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// ListPendingCommands is the device poll path: in-flight commands only,
// newest first.
func (rs *RestfulServer) ListPendingCommands(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	commands, err := rs.Core.Broker.ListPending(deviceID)
	if err != nil {
		writeCoreError(c, err)
		return
	}

	views := common.Mapper(commands, func(cmd models.Command) commandView {
		return commandView{
			ID:        cmd.ID,
			Command:   string(cmd.Command),
			Status:    string(cmd.Status),
			Payload:   cmd.Payload,
			CreatedAt: cmd.CreatedAt,
		}
	})

	c.JSON(http.StatusOK, views)
}

type CommandStatusRequest struct {
	Status string `json:"status"`
}

var commandStatusRequestSchema = z.Struct(z.Shape{
	"Status": z.String().OneOf([]string{
		string(models.CommandStatusExecuting),
		string(models.CommandStatusDone),
		string(models.CommandStatusFailed),
	}).Required(),
})

func (rs *RestfulServer) ReportCommandStatus(c *gin.Context) {
	deviceID := c.Param("device_id")
	commandID := c.Param("command_id")

	var req CommandStatusRequest
	if err := commandStatusRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Core.Broker.ReportStatus(deviceID, commandID, models.CommandStatus(req.Status)); err != nil {
		writeCoreError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RunPostureBatch is the scheduled trigger: run one detection window across
// all users. Safe to re-invoke after a partial failure, the dispatch
// cooldown keeps it idempotent.
func (rs *RestfulServer) RunPostureBatch(c *gin.Context) {
	if rs.CronSecret != "" {
		auth := c.GetHeader("Authorization")
		if strings.TrimPrefix(auth, "Bearer ") != rs.CronSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid cron secret"})
			return
		}
	}

	report, err := rs.Core.Pipeline.RunOnce()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "report": report})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	key := c.Param("user_id")
	if key == "" {
		key = c.Param("device_id")
	}

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(key, req.Rate, req.Burst)

	common.GetLoggerWith(common.LoggerNameRestfulServer).Info("Limiter updated",
		zap.String("key", key),
		zap.Float64("rate", req.Rate),
		zap.Int("burst", req.Burst))

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
