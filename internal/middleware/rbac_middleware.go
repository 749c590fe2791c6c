package middleware

import (
	"fmt"
	"net/http"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/rbac"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is the slice of rbac.Service the middleware needs.
type RBACService interface {
	Authorize(req rbac.EnforceRequest) (rbac.Decision, error)
}

// RBACAuthorize evaluates (role, resource, action) once. A denial is answered
// with 403 <RESOURCE>_DENIED before the handler runs; an allow stores the
// granted row scope for the handler.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
			c.Abort()
			return
		}

		decision, err := service.Authorize(rbac.EnforceRequest{
			Role:     actor.Role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac authorize failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		if !decision.Allowed {
			response.Error(c, http.StatusForbidden, apperror.DeniedCode(resource),
				fmt.Sprintf("Role %s is not allowed to %s %s", actor.Role, action, resource),
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}

		c.Set(ContextScope, domain.ScopeFor(decision.Scope, actor))
		c.Next()
	}
}
