package middleware

import (
	"net/http"
	"strings"

	autherrors "github.com/elec-connect/smart-attendance-system-sub001/internal/auth/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextActor = "actor"
	ContextScope = "access_scope"
)

// TokenParser is satisfied by token.Manager.
type TokenParser interface {
	Parse(tokenString, tokenType string) (domain.Actor, error)
}

func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		actor, err := parser.Parse(tokenString, "access")
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !domain.IsKnownRole(actor.Role) {
			abortWithError(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set(ContextActor, actor)
		c.Set("user_id", actor.IDString())
		c.Set("employee_code", actor.EmployeeCode)
		c.Set("role", actor.Role)
		c.Set("department", actor.Department)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, actor.IDString())
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", actor.IDString()),
			zap.String("role", actor.Role),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActor returns the authenticated actor set by AuthMiddleware.
func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

// GetScope returns the row scope granted by RBACAuthorize. Without one the
// caller sees nothing.
func GetScope(c *gin.Context) domain.Scope {
	if v, ok := c.Get(ContextScope); ok {
		if s, ok := v.(domain.Scope); ok {
			return s
		}
	}
	return domain.Scope{Kind: domain.ScopeNone}
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status == http.StatusInternalServerError {
		httpErr = apperror.ToHTTP(autherrors.ErrInvalidToken)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
	c.Abort()
}
