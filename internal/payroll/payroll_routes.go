package payroll

import (
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlerFunc,
	rdb *redis.Client,
) {
	payroll := r.Group("/payroll")
	payroll.Use(auth)
	{
		payroll.GET("/configs",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead),
			handler.ListSalaryConfigs,
		)
		payroll.POST("/configs",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionUpdate),
			handler.CreateSalaryConfig,
		)
		payroll.GET("/configs/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead),
			handler.GetSalaryConfig,
		)
		payroll.PUT("/configs/:employeeId",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionUpdate),
			handler.UpdateSalaryConfig,
		)

		payroll.POST("/calculate",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.CalculateSalary,
		)
		payroll.POST("/calculate-month",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.CalculateMonth,
		)

		payroll.GET("/months",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			handler.ListPayMonths,
		)
		payroll.PUT("/months",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionCreate),
			handler.UpsertPayMonth,
		)

		payroll.GET("/payments",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			handler.ListPayments,
		)
		payroll.GET("/payments/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			handler.GetPayment,
		)
		payroll.GET("/payments/:id/payslip",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			handler.DownloadPayslip,
		)
		payroll.POST("/payments/:id/mark-paid",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionUpdate),
			handler.MarkPaymentPaid,
		)
	}
}
