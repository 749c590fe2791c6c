package attendance

import (
	"errors"
	"net/http"
	"strconv"

	attendanceerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/attendance/errors"
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
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var complete *AlreadyCompleteError
	if errors.As(err, &complete) {
		e := attendanceerrors.ErrAlreadyComplete
		response.ErrorWithData(c, e.HTTPStatus, e.Code, e.Message, complete.Record)
		return
	}

	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

type markFunc func(*gin.Context, MarkAttendanceRequest) (MarkAttendanceResponse, error)

func (h *Handler) mark(c *gin.Context, fn markFunc) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := fn(c, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp.Message, resp)
}

func (h *Handler) MarkAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	h.mark(c, func(c *gin.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
		return h.service.MarkAttendance(c.Request.Context(), actor, req)
	})
}

func (h *Handler) CheckIn(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	h.mark(c, func(c *gin.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
		return h.service.CheckIn(c.Request.Context(), actor, req)
	})
}

func (h *Handler) FacialCheckIn(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	h.mark(c, func(c *gin.Context, req MarkAttendanceRequest) (MarkAttendanceResponse, error) {
		return h.service.FacialCheckIn(c.Request.Context(), actor, req)
	})
}

func (h *Handler) CheckOut(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req struct {
		EmployeeID EmployeeRef `json:"employeeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), actor, string(req.EmployeeID))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp.Message, resp)
}

func (h *Handler) HandleFullAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req FullAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.HandleFullAttendance(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Attendance recorded", resp)
}

func (h *Handler) UpdateAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeServiceError(c, attendanceerrors.ErrInvalidAttendanceID)
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateAttendance(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Attendance updated", resp)
}

func (h *Handler) ResetTodayAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	ref := c.Param("employeeId")
	h.logger.Info("http reset today attendance", zap.String("employee", ref), zap.Int64("actor_id", actor.ID))

	if err := h.service.ResetTodayAttendance(c.Request.Context(), actor, ref); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Today's attendance reset", gin.H{"reset": true})
}

func (h *Handler) GetAllAttendance(c *gin.Context) {
	var filter AttendanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAllAttendance(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckTodayStatus(c *gin.Context) {
	resp, err := h.service.CheckTodayStatus(c.Request.Context(), middleware.GetScope(c), c.Query("employeeId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAttendanceStats(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	resp, err := h.service.GetAttendanceStats(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListCorrections(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeServiceError(c, attendanceerrors.ErrInvalidAttendanceID)
		return
	}

	resp, err := h.service.ListCorrections(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
