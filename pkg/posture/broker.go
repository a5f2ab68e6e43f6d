package posture

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
	"github.com/vuhamthieu/posture-dashboard/pkg/models"
)

func validCommandType(command models.CommandType) bool {
	switch command {
	case models.CommandUpdateCode, models.CommandRestart, models.CommandUpdateConfig:
		return true
	}
	return false
}

func (p *Posture) brokerLogger(deviceID string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNamePostureCore,
		zap.String(common.LoggerFieldPostureCategory, common.LoggerCategoryBroker),
		zap.String("device_id", deviceID),
	)
}

func (p *Posture) getDevice(deviceID string) (*models.Device, error) {
	var device models.Device
	err := p.Db.Conn.First(&device, "device_id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: device %s", ErrNotFound, deviceID)
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (p *Posture) requireOwner(deviceID string, userID string) (*models.Device, error) {
	device, err := p.getDevice(deviceID)
	if err != nil {
		return nil, err
	}
	if device.UserID == nil || *device.UserID != userID {
		return nil, fmt.Errorf("%w: device %s belongs to another account", ErrAccessDenied, deviceID)
	}
	return device, nil
}

// insertCommand appends a PENDING row to the mailbox. This is the only
// transition the service performs itself; everything past PENDING is driven
// by the polling device.
func (p *Posture) insertCommand(deviceID string, command models.CommandType, payload string) (*models.Command, error) {
	row := models.Command{
		ID:       uuid.NewString(),
		DeviceID: deviceID,
		Command:  command,
		Status:   models.CommandStatusPending,
		Payload:  payload,
	}

	if err := p.Db.Conn.Create(&row).Error; err != nil {
		return nil, err
	}

	p.brokerLogger(deviceID).Info("Command enqueued", zap.Reflect("command", row))
	return &row, nil
}

func (p *Posture) enqueue(deviceID string, command models.CommandType, payload string, userID string) (*models.Command, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device id is required", ErrValidation)
	}
	if !validCommandType(command) {
		return nil, fmt.Errorf("%w: unknown command %q", ErrValidation, command)
	}

	if _, err := p.requireOwner(deviceID, userID); err != nil {
		return nil, err
	}

	// duplicates of an already-PENDING command are allowed; the device
	// treats each row independently
	return p.insertCommand(deviceID, command, payload)
}

func (p *Posture) listPending(deviceID string) ([]models.Command, error) {
	var commands []models.Command
	err := p.Db.Conn.
		Where("device_id = ? AND status IN ?", deviceID,
			[]models.CommandStatus{models.CommandStatusPending, models.CommandStatusExecuting}).
		Order("created_at desc").
		Find(&commands).Error
	return commands, err
}

// legalTransitions is the command state machine. Terminal states have no
// outgoing edges.
var legalTransitions = map[models.CommandStatus][]models.CommandStatus{
	models.CommandStatusPending:   {models.CommandStatusExecuting},
	models.CommandStatusExecuting: {models.CommandStatusDone, models.CommandStatusFailed},
}

// reportStatus applies a transition on behalf of the polling device. The
// dashboard itself never calls this.
func (p *Posture) reportStatus(deviceID string, commandID string, status models.CommandStatus) error {
	var row models.Command
	err := p.Db.Conn.First(&row, "id = ? AND device_id = ?", commandID, deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: command %s", ErrNotFound, commandID)
	}
	if err != nil {
		return err
	}

	allowed := false
	for _, next := range legalTransitions[row.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: illegal transition %s -> %s", ErrValidation, row.Status, status)
	}

	if err := p.Db.Conn.Model(&row).Update("status", status).Error; err != nil {
		return err
	}

	p.brokerLogger(deviceID).Info("Command transitioned",
		zap.String("command_id", commandID),
		zap.String("status", string(status)))
	return nil
}

func (p *Posture) pair(deviceID string, userID string) error {
	if deviceID == "" || userID == "" {
		return fmt.Errorf("%w: device id and user id are required", ErrValidation)
	}

	logger := p.brokerLogger(deviceID)

	device, err := p.getDevice(deviceID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if device != nil && device.UserID != nil && *device.UserID != userID {
		// device row stays untouched on rejection
		return fmt.Errorf("%w: device %s belongs to another account", ErrAccessDenied, deviceID)
	}

	row := models.Device{
		DeviceID:  deviceID,
		UserID:    &userID,
		UpdatedAt: time.Now(),
	}
	err = p.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	logger.Info("Device paired", zap.String("user_id", userID))

	// the device learns about the ownership change on its next poll
	_, err = p.insertCommand(deviceID, models.CommandUpdateConfig, "")
	return err
}

func (p *Posture) unpair(deviceID string, userID string) error {
	if _, err := p.requireOwner(deviceID, userID); err != nil {
		return err
	}

	err := p.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Updates(map[string]any{"user_id": nil, "updated_at": time.Now()}).Error
	if err != nil {
		return err
	}

	p.brokerLogger(deviceID).Info("Device unpaired", zap.String("user_id", userID))

	_, err = p.insertCommand(deviceID, models.CommandUpdateConfig, "")
	return err
}

func (p *Posture) saveSettings(deviceID string, userID string, settings models.DeviceSettings) error {
	if _, err := p.requireOwner(deviceID, userID); err != nil {
		return err
	}

	err := p.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Updates(models.Device{Settings: settings, UpdatedAt: time.Now()}).Error
	if err != nil {
		return err
	}

	p.brokerLogger(deviceID).Info("Device settings saved", zap.Reflect("settings", settings))

	_, err = p.insertCommand(deviceID, models.CommandUpdateConfig, "")
	return err
}

type IBrokerImpl struct {
	posture *Posture
}

func (ib *IBrokerImpl) Enqueue(deviceID string, command models.CommandType, payload string, userID string) (*models.Command, error) {
	return ib.posture.enqueue(deviceID, command, payload, userID)
}

func (ib *IBrokerImpl) ListPending(deviceID string) ([]models.Command, error) {
	return ib.posture.listPending(deviceID)
}

func (ib *IBrokerImpl) ReportStatus(deviceID string, commandID string, status models.CommandStatus) error {
	return ib.posture.reportStatus(deviceID, commandID, status)
}

func (ib *IBrokerImpl) Pair(deviceID string, userID string) error {
	return ib.posture.pair(deviceID, userID)
}

func (ib *IBrokerImpl) Unpair(deviceID string, userID string) error {
	return ib.posture.unpair(deviceID, userID)
}

func (ib *IBrokerImpl) SaveSettings(deviceID string, userID string, settings models.DeviceSettings) error {
	return ib.posture.saveSettings(deviceID, userID, settings)
}

func (p *Posture) GetIBroker() IBroker {
	return &IBrokerImpl{posture: p}
}
