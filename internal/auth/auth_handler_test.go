package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/auth"
	autherrors "github.com/elec-connect/smart-attendance-system-sub001/internal/auth/errors"
	authMock "github.com/elec-connect/smart-attendance-system-sub001/internal/auth/mock"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func toActor(e *employee.Employee) domain.Actor {
	return domain.Actor{ID: e.ID, EmployeeCode: e.EmployeeCode, Role: e.Role, Department: e.Department}
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false)
	router := setupAuthRouter()
	router.POST("/login", handler.Login)

	t.Run("web client gets cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "a@example.com", Password: "pw"})
		mockService.EXPECT().
			Login(gomock.Any(), "a@example.com", "pw").
			Return(auth.LoginResponse{
				User:      auth.AuthResponse{ID: 1, Email: "a@example.com"},
				TokenPair: auth.TokenPair{AccessToken: "acc", RefreshToken: "ref", ExpiresIn: 3600},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		names := map[string]string{}
		for _, c := range cookies {
			names[c.Name] = c.Value
		}
		assert.Equal(t, "acc", names["access_token"])
		assert.Equal(t, "ref", names["refresh_token"])
		assert.Contains(t, w.Body.String(), `"accessToken":"acc"`)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "a@example.com", Password: "bad"})
		mockService.EXPECT().
			Login(gomock.Any(), "a@example.com", "bad").
			Return(auth.LoginResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService, false)
	router := setupAuthRouter()
	router.GET("/me", func(c *gin.Context) {
		c.Set(middleware.ContextActor, domain.Actor{ID: 5, Role: domain.RoleEmployee})
		c.Next()
	}, handler.Me)

	mockService.EXPECT().Me(gomock.Any(), int64(5)).Return(auth.AuthResponse{ID: 5, Name: "E F"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"E F"`)
}
