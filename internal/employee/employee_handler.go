package employee

import (
	"net/http"
	"strings"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	h.logger.Debug("http create employee", zap.Int64("actor_id", actor.ID))

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Employee created", resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter EmployeeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := pageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	targetID := c.Param("id")
	h.logger.Debug("http get employee by id", zap.String("employee_id", targetID))

	resp, err := h.service.GetByID(c.Request.Context(), middleware.GetScope(c), targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http update employee", zap.String("employee_id", id))

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id := c.Param("id")
	actor, _ := middleware.GetActor(c)
	h.logger.Debug("http deactivate employee", zap.String("employee_id", id))

	if err := h.service.Deactivate(c.Request.Context(), actor, middleware.GetScope(c), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Employee deactivated", gin.H{"deactivated": true})
}

// PermanentDelete runs step one without a confirmation token and step two
// with one.
func (h *Handler) PermanentDelete(c *gin.Context) {
	id := c.Param("id")
	actor, _ := middleware.GetActor(c)

	var req HardDeleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	token := strings.TrimSpace(req.ConfirmationToken)
	if token == "" {
		resp, err := h.service.RequestHardDelete(c.Request.Context(), actor, id)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.SuccessWithMessage(c, http.StatusOK, "Confirm permanent deletion with the returned token", resp)
		return
	}

	resp, err := h.service.ConfirmHardDelete(c.Request.Context(), actor, id, token)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Employee permanently deleted", resp)
}

func pageParams(c *gin.Context) (int, int) {
	var q struct {
		Page     int `form:"page"`
		PageSize int `form:"pageSize"`
	}
	_ = c.ShouldBindQuery(&q)
	if q.PageSize == 0 {
		q.PageSize = 50
	}
	return q.Page, q.PageSize
}
