package attendance

import (
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	auth gin.HandlerFunc,
) {
	attendance := r.Group("/attendance")
	attendance.Use(auth)
	{
		attendance.POST("/mark",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			handler.MarkAttendance,
		)

		attendance.POST("/check-in",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			handler.CheckIn,
		)

		attendance.POST("/facial-check-in",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			handler.FacialCheckIn,
		)

		attendance.POST("/check-out",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			handler.CheckOut,
		)

		attendance.POST("/full",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate),
			handler.HandleFullAttendance,
		)

		attendance.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate),
			handler.UpdateAttendance,
		)

		attendance.GET("/:id/corrections",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionUpdate),
			handler.ListCorrections,
		)

		attendance.DELETE("/reset/:employeeId",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionDelete),
			handler.ResetTodayAttendance,
		)

		attendance.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			handler.GetAllAttendance,
		)

		attendance.GET("/today",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			handler.CheckTodayStatus,
		)

		attendance.GET("/stats",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendanceStats, rbac.ActionRead),
			handler.GetAttendanceStats,
		)
	}
}
