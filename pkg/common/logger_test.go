package common

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "github.com/vuhamthieu/posture-dashboard/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestLoggerWithNameAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLoggerWith(LoggerNamePostureCore, zap.String(LoggerFieldPostureCategory, LoggerCategoryDetector))
	logger.Info("categorized message")

	logOutput := buf.String()
	if !strings.Contains(logOutput, "categorized message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, LoggerCategoryDetector) {
		t.Errorf("expected log output to carry category field, got: %s", logOutput)
	}
}
