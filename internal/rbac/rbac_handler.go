package rbac

import (
	"net/http"
	"strings"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enforce lets a client check what its own role may do. Admins may check
// another role by passing it in the body.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	callerRole := c.GetString("role")
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)
	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" || callerRole != "admin" {
		req.Role = callerRole
	}

	d, err := h.service.Authorize(req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{
		Role:     req.Role,
		Resource: req.Resource,
		Action:   req.Action,
		Allowed:  d.Allowed,
		Scope:    d.Scope,
	}, nil)
}
