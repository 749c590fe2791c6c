package app

import (
	"net/http"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/attendance"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/auth"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/auth/token"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/config"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/export"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/payroll"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac/infra"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// newNotifier publishes through the outbox when Kafka is configured and
// writes notifications inline otherwise.
func newNotifier(cfg *config.Config, deps *Infrastructure, svc notification.Service) notification.Notifier {
	if cfg.Kafka.Broker == "" {
		zap.L().Info("KAFKA_BROKER not set, notifications are written inline")
		return notification.NewDirectNotifier(svc)
	}
	return notification.NewOutboxNotifier(kafka.NewOutboxRepository(deps.SQLDB), cfg.Kafka.NotificationTopic)
}

func registerModules(router *gin.Engine, cfg *config.Config, deps *Infrastructure) error {
	db, gormDB, rdb := deps.SQLDB, deps.GormDB, deps.Redis

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(rbac.ModelText, rbac.DefaultPolicies())
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authMiddleware := middleware.AuthMiddleware(tokens)

	// --- Services ---
	notificationService := notification.NewService(notificationRepo, employeeRepo)
	notifier := newNotifier(cfg, deps, notificationService)

	authService := auth.NewService(employeeRepo, tokens)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, notifier, cfg.App.Location)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, notifier, cfg.Export.CompanyName)
	exportService := export.NewService(attendanceService, cfg.Export.CompanyName)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandler(payrollService)
	notificationHandler := notification.NewHandler(notificationService)
	exportHandler := export.NewHandler(exportService)
	rbacHandler := rbac.NewHandler(rbacService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMiddleware)
		employee.RegisterRoutes(api, employeeHandler, rbacService, authMiddleware)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, authMiddleware)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, authMiddleware, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService, authMiddleware)
		export.RegisterRoutes(api, exportHandler, rbacService, authMiddleware)
		rbac.RegisterRoutes(api, rbacHandler, authMiddleware)
	}

	return nil
}
