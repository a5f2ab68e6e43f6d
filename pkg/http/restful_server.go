package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vuhamthieu/posture-dashboard/pkg/posture"
)

type RestfulServer struct {
	Server           *gin.Engine
	Core             *posture.Posture
	RateLimiterStore *posture.RateLimiterStore

	// CronSecret guards the scheduled trigger endpoint. Empty disables
	// the guard (local development only).
	CronSecret string
}

func (rs *RestfulServer) GetLimiter(key string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(key)
	}
}

func (rs *RestfulServer) CheckLimiter(key string) bool {
	limiter := rs.GetLimiter(key)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(key string, keyRate float64, keyBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(key, rate.Limit(keyRate), keyBurst)
}

func (rs *RestfulServer) Setup() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	rs.Server.Use(cors.New(corsConfig))

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/cron/posture", rs.RunPostureBatch)

	users := rs.Server.Group("/users/:user_id")
	{
		users.POST("/readings", rs.PostReading)
		users.POST("/limiter", rs.PostLimiter)
	}

	devices := rs.Server.Group("/devices/:device_id")
	{
		devices.POST("/pair", rs.PairDevice)
		devices.POST("/unpair", rs.UnpairDevice)
		devices.POST("/config", rs.SaveDeviceConfig)
		devices.POST("/commands", rs.EnqueueCommand)
		devices.GET("/commands", rs.ListPendingCommands)
		devices.POST("/commands/:command_id/status", rs.ReportCommandStatus)
		devices.POST("/limiter", rs.PostLimiter)
	}
}
