package main

import (
	"github.com/elec-connect/smart-attendance-system-sub001/internal/app"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/bootstrap"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/config"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := app.NewLogger(cfg)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.ContextLogger(logger))

	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	err = bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.App.Port,
			ReadTimeout:  cfg.App.ReadTimeout,
			WriteTimeout: cfg.App.WriteTimeout,
			IdleTimeout:  cfg.App.IdleTimeout,
		},
		bootstrap.NewStdoutAuditLogger(logger),
	)
	if err != nil {
		logger.Error("http server stopped with error", zap.Error(err))
	}
}
