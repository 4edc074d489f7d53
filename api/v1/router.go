package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"devinv/api/v1/devices"
	"devinv/api/v1/health"
	"devinv/api/v1/middleware"
	"devinv/internal/config"
	"devinv/internal/device"
	"devinv/internal/httpx"
)

// SetupRouter sets up the API routes
func SetupRouter(r *gin.Engine, gdb *gorm.DB, cfg *config.Config, svc *device.Service, logger *logrus.Entry) {
	httpLogger := logger.WithField("component", "http")
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(httpLogger))
	r.Use(middleware.Recovery(httpLogger))

	// Readiness endpoints, answerable with the store down
	r.GET("/", rootHandler)

	pingTimeout := time.Duration(cfg.MySQL.PingTimeoutSec) * time.Second
	healthHandler := health.NewHandler(gdb, pingTimeout)
	r.GET("/health", healthHandler.Check)

	api := r.Group(cfg.APIPrefix)
	{
		devicesHandler := devices.NewHandler(svc)
		devicesGroup := api.Group("/devices")
		{
			devicesGroup.GET("", devicesHandler.List)
			devicesGroup.POST("", devicesHandler.Create)
			devicesGroup.GET("/:id", devicesHandler.Get)
			devicesGroup.PUT("/:id", devicesHandler.Update)
			devicesGroup.DELETE("/:id", devicesHandler.Delete)
			devicesGroup.GET("/:id/status", devicesHandler.Status)
		}
	}
}

// rootHandler is a basic readiness endpoint for container orchestration
func rootHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"service": "devinv",
		"message": "OK",
	})
}
