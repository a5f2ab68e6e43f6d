package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyPostureDBType  string = "POSTURE_DB_TYPE"
	EnvKeyPostureDbPath  string = "POSTURE_DB_PATH"
	EnvKeyPostureLogPath string = "POSTURE_LOG_PATH"

	EnvKeyPostureHttpHostPort string = "POSTURE_HTTP_HOST_PORT"

	EnvKeyPostureDefaultRate  string = "POSTURE_DEFAULT_RATE"
	EnvKeyPostureDefaultBurst string = "POSTURE_DEFAULT_BURST"

	EnvKeyPostureCronSecret string = "POSTURE_CRON_SECRET"

	EnvKeyPushEndpoint string = "PUSH_GATEWAY_ENDPOINT"
	EnvKeyPushAPIKey   string = "PUSH_GATEWAY_API_KEY"

	// detector/dispatcher/pipeline tunables, optional overrides of the defaults
	EnvKeyDetectorConfidenceFloor string = "DETECTOR_CONFIDENCE_FLOOR"
	EnvKeyDetectorAngleThreshold  string = "DETECTOR_ANGLE_THRESHOLD"
	EnvKeyDetectorBadRatioGate    string = "DETECTOR_BAD_RATIO_GATE"
	EnvKeyDetectorStreakGate      string = "DETECTOR_STREAK_GATE"
	EnvKeyDetectorDurationGateSec string = "DETECTOR_DURATION_GATE_SEC"
	EnvKeyDetectorSampleInterval  string = "DETECTOR_SAMPLE_INTERVAL_SEC"
	EnvKeyDispatchCooldownMinutes string = "DISPATCH_COOLDOWN_MINUTES"
	EnvKeyPipelineWindowMinutes   string = "PIPELINE_WINDOW_MINUTES"

	LoggerNamePostureCore      string = "posture_core"
	LoggerNameRestfulServer    string = "restful_server"
	LoggerNamePushGateway      string = "push_gateway"
	LoggerFieldPostureCategory string = "category"
	LoggerCategoryDetector     string = "detector"
	LoggerCategoryDispatcher   string = "dispatcher"
	LoggerCategoryBroker       string = "broker"
	LoggerCategoryPipeline     string = "pipeline"
)
