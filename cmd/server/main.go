package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
	"github.com/vuhamthieu/posture-dashboard/pkg/db"
	postureHttp "github.com/vuhamthieu/posture-dashboard/pkg/http"
	"github.com/vuhamthieu/posture-dashboard/pkg/posture"
	"github.com/vuhamthieu/posture-dashboard/pkg/push"
)

func envFloat(key string, target *float64) {
	if raw, found := os.LookupEnv(key); found {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("Invalid %s, should be a float64 value", key)
		}
		*target = val
	}
}

func envInt(key string, target *int) {
	if raw, found := os.LookupEnv(key); found {
		val, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid %s, should be an int value", key)
		}
		*target = val
	}
}

func loadTunables() posture.Tunables {
	tunables := posture.DefaultTunables()

	envFloat(common.EnvKeyDetectorConfidenceFloor, &tunables.Detector.ConfidenceFloor)
	envFloat(common.EnvKeyDetectorAngleThreshold, &tunables.Detector.AngleThreshold)
	envFloat(common.EnvKeyDetectorBadRatioGate, &tunables.Detector.BadRatioGate)
	envInt(common.EnvKeyDetectorStreakGate, &tunables.Detector.StreakGate)
	envInt(common.EnvKeyDetectorDurationGateSec, &tunables.Detector.DurationGateSeconds)
	envInt(common.EnvKeyDetectorSampleInterval, &tunables.Detector.SampleIntervalSeconds)

	var cooldownMinutes int
	if raw, found := os.LookupEnv(common.EnvKeyDispatchCooldownMinutes); found {
		val, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid %s, should be an int value", common.EnvKeyDispatchCooldownMinutes)
		}
		cooldownMinutes = val
		tunables.Dispatcher.Cooldown = time.Duration(cooldownMinutes) * time.Minute
	}

	if raw, found := os.LookupEnv(common.EnvKeyPipelineWindowMinutes); found {
		val, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid %s, should be an int value", common.EnvKeyPipelineWindowMinutes)
		}
		tunables.Pipeline.Lookback = time.Duration(val) * time.Minute
	}

	return tunables
}

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	postureDbType := os.Getenv(common.EnvKeyPostureDBType)
	switch postureDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown POSTURE_DB_TYPE: " + postureDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyPostureHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyPostureDefaultRate), 64); err != nil {
		log.Fatal("Invalid POSTURE_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyPostureDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid POSTURE_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	pushClient := push.Init(push.Config{
		Endpoint: os.Getenv(common.EnvKeyPushEndpoint),
		APIKey:   os.Getenv(common.EnvKeyPushAPIKey),
	})

	core := posture.Posture{
		Db:       *dbInstance,
		Push:     pushClient,
		Tunables: loadTunables(),
	}
	core.WithServices(posture.ServiceOpts{
		Detector:   core.GetIDetector(),
		Dispatcher: core.GetIDispatcher(),
		Broker:     core.GetIBroker(),
		Pipeline:   core.GetIPipeline(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &postureHttp.RestfulServer{
		Server:           gin.Default(),
		Core:             &core,
		RateLimiterStore: posture.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
		CronSecret:       os.Getenv(common.EnvKeyPostureCronSecret),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.Float64("default_rate", defaultRate),
		zap.Int64("default_burst", defaultBurst))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
