package notification

import (
	"net/http"
	"strconv"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	notificationerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/notification/errors"
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
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func visibilityOf(actor domain.Actor) Visibility {
	return Visibility{UserID: actor.ID, Role: actor.Role, Department: actor.Department}
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetUserNotifications(c.Request.Context(), visibilityOf(actor), q.Limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	n, err := h.service.UnreadCount(c.Request.Context(), visibilityOf(actor))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, UnreadCountResponse{Unread: n}, nil)
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, notificationerrors.ErrInvalidNotificationID)
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), actor.IDString(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	n, err := h.service.MarkAllAsRead(c.Request.Context(), visibilityOf(actor))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, MarkAllResponse{Updated: n}, nil)
}
