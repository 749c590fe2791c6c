package auth

import (
	"net/http"
	"strings"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	service      Service
	secureCookie bool
	logger       *zap.Logger
}

func NewHandler(s Service, secureCookie bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, secureCookie: secureCookie, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// isWebClient reports whether tokens should also travel as cookies.
func isWebClient(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("X-Client-Type"), "web")
}

func (h *Handler) setCookies(c *gin.Context, resp LoginResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, resp.AccessToken, int(resp.ExpiresIn), "/", "", h.secureCookie, true)
	c.SetCookie(refreshCookie, resp.RefreshToken, 3600*24*7, "/", "", h.secureCookie, true)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		h.setCookies(c, resp)
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	var refreshToken string
	if isWebClient(c) {
		refreshToken, _ = c.Cookie(refreshCookie)
	}
	if refreshToken == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	resp, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		h.setCookies(c, resp)
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.Me(c.Request.Context(), actor.ID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, "", -1, "/", "", h.secureCookie, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.secureCookie, true)
	response.SuccessWithMessage(c, http.StatusOK, "Logged out", nil)
}
