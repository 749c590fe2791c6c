package notification

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
	notifications := r.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead),
			handler.List,
		)

		notifications.GET("/unread-count",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead),
			handler.UnreadCount,
		)

		notifications.PUT("/read-all",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate),
			handler.MarkAllAsRead,
		)

		notifications.PUT("/:id/read",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate),
			handler.MarkAsRead,
		)
	}
}
