package posture

import (
	"github.com/vuhamthieu/posture-dashboard/pkg/db"
	"github.com/vuhamthieu/posture-dashboard/pkg/models"
	"github.com/vuhamthieu/posture-dashboard/pkg/push"
)

type IDetector interface {
	Detect(readings []models.Reading) models.Verdict
}

type IDispatcher interface {
	Dispatch(userID string, verdict models.Verdict) (models.DispatchOutcome, error)
}

type IBroker interface {
	Enqueue(deviceID string, command models.CommandType, payload string, userID string) (*models.Command, error)
	ListPending(deviceID string) ([]models.Command, error)
	ReportStatus(deviceID string, commandID string, status models.CommandStatus) error
	Pair(deviceID string, userID string) error
	Unpair(deviceID string, userID string) error
	SaveSettings(deviceID string, userID string, settings models.DeviceSettings) error
}

type IPipeline interface {
	RunOnce() (models.BatchReport, error)
}

type Posture struct {
	Db       db.DB
	Push     push.Gateway
	Tunables Tunables

	Detector   IDetector
	Dispatcher IDispatcher
	Broker     IBroker
	Pipeline   IPipeline

	dispatchLocks KeyedMutex
}

type ServiceOpts struct {
	Detector   IDetector
	Dispatcher IDispatcher
	Broker     IBroker
	Pipeline   IPipeline
}

func (p *Posture) WithServices(opts ServiceOpts) *Posture {
	if opts.Detector != nil {
		p.Detector = opts.Detector
	}
	if opts.Dispatcher != nil {
		p.Dispatcher = opts.Dispatcher
	}
	if opts.Broker != nil {
		p.Broker = opts.Broker
	}
	if opts.Pipeline != nil {
		p.Pipeline = opts.Pipeline
	}
	return p
}
