package posture

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/vuhamthieu/posture-dashboard/pkg/db"
	"github.com/vuhamthieu/posture-dashboard/pkg/posture/mocks"
	pushmocks "github.com/vuhamthieu/posture-dashboard/pkg/push/mocks"
)

func GetMockPostureWithMemorySqliteDialector(t *testing.T, useMockDetector, useMockDispatcher, useMockBroker bool) (
	*gomock.Controller,
	*Posture,
	*mocks.MockIDetector,
	*mocks.MockIDispatcher,
	*mocks.MockIBroker,
	*pushmocks.MockGateway,
) {
	ctrl := gomock.NewController(t)

	mockDetector := mocks.NewMockIDetector(ctrl)
	mockDispatcher := mocks.NewMockIDispatcher(ctrl)
	mockBroker := mocks.NewMockIBroker(ctrl)
	mockGateway := pushmocks.NewMockGateway(ctrl)

	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	postureInstance := &Posture{
		Db:       *dbInstance,
		Push:     mockGateway,
		Tunables: DefaultTunables(),
	}

	detectorService := postureInstance.GetIDetector()
	if useMockDetector {
		detectorService = mockDetector
	}

	dispatcherService := postureInstance.GetIDispatcher()
	if useMockDispatcher {
		dispatcherService = mockDispatcher
	}

	brokerService := postureInstance.GetIBroker()
	if useMockBroker {
		brokerService = mockBroker
	}

	postureInstance.WithServices(ServiceOpts{
		Detector:   detectorService,
		Dispatcher: dispatcherService,
		Broker:     brokerService,
		Pipeline:   postureInstance.GetIPipeline(),
	})

	return ctrl, postureInstance, mockDetector, mockDispatcher, mockBroker, mockGateway
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
