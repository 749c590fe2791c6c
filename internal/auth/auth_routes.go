package auth

import (
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		group.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.Refresh)
		group.POST("/logout", handler.Logout)
		group.GET("/me", auth, middleware.RateLimitByUser(2, 5), handler.Me)
	}
}
