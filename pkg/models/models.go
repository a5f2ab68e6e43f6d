package models

import "time"

type PostureLabel string

const (
	PostureGood      PostureLabel = "good"
	PostureSlouching PostureLabel = "slouching"
	PostureLeaning   PostureLabel = "leaning"
	PostureTilting   PostureLabel = "tilting"
	PostureUnknown   PostureLabel = "unknown"
)

// ReadingMetrics is the free-form metrics blob attached to a reading.
// NeckAngle is optional; readings produced by older device firmware omit it.
type ReadingMetrics struct {
	NeckAngle *float64 `json:"neck_angle,omitempty"`
}

type Reading struct {
	ID         uint         `gorm:"primaryKey"`
	UserID     string       `gorm:"index"`
	Label      PostureLabel `gorm:"type:varchar(20);check:label IN ('good','slouching','leaning','tilting','unknown')"`
	Confidence float64
	Metrics    ReadingMetrics `gorm:"serializer:json"`
	CreatedAt  time.Time      `gorm:"index"`
}

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

const NotificationTypePostureWarning = "posture_warning"

// NotificationMeta embeds the verdict that produced a notification, for audit.
type NotificationMeta struct {
	Detector            string   `json:"detector"`
	Level               Severity `json:"level"`
	Reason              string   `json:"reason"`
	BadRatio            float64  `json:"badRatio"`
	AngleRatio          float64  `json:"angleRatio"`
	MaxContinuousBad    int      `json:"maxContinuousBad"`
	EstimatedBadSeconds int      `json:"estimatedBadSeconds"`
	SampleCount         int      `json:"sampleCount"`
}

type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Title     string
	Body      string
	Type      string           `gorm:"index"`
	Severity  Severity         `gorm:"type:varchar(10)"`
	Meta      NotificationMeta `gorm:"serializer:json"`
	CreatedAt time.Time        `gorm:"index"`
}

// Verdict is the detector output for one window of readings. Never persisted
// as-is; the dispatcher embeds it into the notification audit row.
type Verdict struct {
	IsBad               bool
	Reason              string
	BadRatio            float64
	AngleRatio          float64
	MaxContinuousBad    int
	EstimatedBadSeconds int
	SampleCount         int
}

// DispatchOutcome reports what happened for one user: either a notification
// was sent and audited, or the dispatch was skipped with a reason. Skips are
// not errors.
type DispatchOutcome struct {
	Sent          bool
	SkipReason    string
	Notification  *Notification
	TokenFailures int
}

// BatchReport summarizes one batch run for the scheduled trigger.
type BatchReport struct {
	UsersSeen  int `json:"users_seen"`
	Dispatched int `json:"dispatched"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

type PushToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index;uniqueIndex:idx_user_token"`
	Token     string `gorm:"uniqueIndex:idx_user_token"`
	IsActive  bool   `gorm:"index"`
	CreatedAt time.Time
}

type DeviceSettings map[string]any

// Device is one remote posture sensor. UserID is nil while unpaired; at most
// one user owns a device at a time.
type Device struct {
	DeviceID       string         `gorm:"primaryKey"`
	UserID         *string        `gorm:"index"`
	Settings       DeviceSettings `gorm:"serializer:json"`
	CurrentVersion string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CommandType string

const (
	CommandUpdateCode   CommandType = "UPDATE_CODE"
	CommandRestart      CommandType = "RESTART"
	CommandUpdateConfig CommandType = "UPDATE_CONFIG"
)

type CommandStatus string

const (
	CommandStatusPending   CommandStatus = "PENDING"
	CommandStatusExecuting CommandStatus = "EXECUTING"
	CommandStatusDone      CommandStatus = "DONE"
	CommandStatusFailed    CommandStatus = "FAILED"
)

// Command is one row of the device mailbox. The service only ever inserts
// rows as PENDING; the polling device drives all later transitions.
type Command struct {
	ID        string        `gorm:"primaryKey"`
	DeviceID  string        `gorm:"index"`
	Command   CommandType   `gorm:"type:varchar(20);check:command IN ('UPDATE_CODE','RESTART','UPDATE_CONFIG')"`
	Status    CommandStatus `gorm:"type:varchar(12);index;check:status IN ('PENDING','EXECUTING','DONE','FAILED')"`
	Payload   string
	CreatedAt time.Time `gorm:"index"`
}
