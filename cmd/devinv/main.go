package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	v1 "devinv/api/v1"
	"devinv/internal/cache"
	"devinv/internal/config"
	"devinv/internal/db"
	"devinv/internal/device"
	"devinv/internal/probe"
)

func main() {
	configPath := flag.String("config", "", "path to INI config file (optional, env vars override)")
	flag.Parse()

	// 1. Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromINI(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger := logrus.New()
	if level, perr := logrus.ParseLevel(cfg.LogLevel); perr == nil {
		logger.SetLevel(level)
	}
	log := logrus.NewEntry(logger)
	log.Info("✓ Configuration loaded")

	// 2. Open the store handle. The process comes up even when the store
	// is down; requests degrade per-operation instead.
	gdb, err := db.Init(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize MySQL: %v", err)
	}
	defer db.Close(gdb)

	pingTimeout := time.Duration(cfg.MySQL.PingTimeoutSec) * time.Second
	if err := db.Ping(context.Background(), gdb, pingTimeout); err != nil {
		log.Warnf("Database unavailable at startup: %v. Continuing without DB.", err)
	} else if cfg.Migrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Info("✓ Database migrated")
	}

	// 3. Redis status cache (optional; init failure only disables it)
	var statusCache *cache.StatusCache
	if cfg.Redis.Enabled {
		statusCache, err = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.StatusTTLSec)*time.Second, log)
		if err != nil {
			log.Warnf("Status cache disabled: %v", err)
			statusCache = nil
		} else {
			defer statusCache.Close()
			log.Info("✓ Redis connected")
		}
	}

	// 4. Device service
	svc := device.NewService(&device.ServiceConfig{
		Repo:         device.NewRepository(gdb),
		Pinger:       probe.NewICMPPinger(log),
		Cache:        statusCache,
		Logger:       log,
		ProbeTimeout: time.Duration(cfg.Probe.TimeoutSec) * time.Second,
		PingTimeout:  pingTimeout,
	})

	// 5. HTTP server
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	v1.SetupRouter(r, gdb, cfg, svc, log)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("✓ Server starting on %s (API prefix %s)", cfg.HTTPAddr, cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
}
