package main

import (
	"github.com/elec-connect/smart-attendance-system-sub001/internal/app"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/config"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"

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

	if err := app.RunConsumer(cfg); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
