package app

import (
	"database/sql"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/config"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisMaxRetries = 5

// Infrastructure holds the shared connections of one process.
type Infrastructure struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

// Connect opens the database and, when REDIS_ADDR is set, Redis.
func Connect(cfg *config.Config) (*Infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	deps := &Infrastructure{GormDB: gormDB, SQLDB: sqlDB}

	if cfg.Redis.Addr == "" {
		zap.L().Warn("REDIS_ADDR not set, caching and idempotency keys are disabled")
		return deps, nil
	}
	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, redisMaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	deps.Redis = rdb
	return deps, nil
}

func (i *Infrastructure) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// BuildApp connects the infrastructure and registers every module on router.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	deps, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := registerModules(router, cfg, deps); err != nil {
		deps.Close()
		return nil, err
	}
	return deps.Close, nil
}

// NewLogger returns a JSON production logger in production and a console
// development logger elsewhere.
func NewLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger.With(zap.String("env", cfg.App.Env))
}
