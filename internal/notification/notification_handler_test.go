package notification_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"
	notificationerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/notification/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationService struct {
	notification.Service
	listFn    func(ctx context.Context, v notification.Visibility, limit int) ([]notification.NotificationResponse, error)
	markFn    func(ctx context.Context, userID string, id int64) error
	markAllFn func(ctx context.Context, v notification.Visibility) (int64, error)
	unreadFn  func(ctx context.Context, v notification.Visibility) (int64, error)
}

func (f *fakeNotificationService) GetUserNotifications(ctx context.Context, v notification.Visibility, limit int) ([]notification.NotificationResponse, error) {
	return f.listFn(ctx, v, limit)
}

func (f *fakeNotificationService) MarkAsRead(ctx context.Context, userID string, id int64) error {
	return f.markFn(ctx, userID, id)
}

func (f *fakeNotificationService) MarkAllAsRead(ctx context.Context, v notification.Visibility) (int64, error) {
	return f.markAllFn(ctx, v)
}

func (f *fakeNotificationService) UnreadCount(ctx context.Context, v notification.Visibility) (int64, error) {
	return f.unreadFn(ctx, v)
}

func setupRouter(svc notification.Service, actor domain.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := notification.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextActor, actor)
		c.Next()
	})
	r.GET("/notifications", h.List)
	r.GET("/notifications/unread-count", h.UnreadCount)
	r.PUT("/notifications/read-all", h.MarkAllAsRead)
	r.PUT("/notifications/:id/read", h.MarkAsRead)
	return r
}

func TestHandler_List(t *testing.T) {
	actor := domain.Actor{ID: 5, Role: domain.RoleManager, Department: "IT"}
	svc := &fakeNotificationService{
		listFn: func(_ context.Context, v notification.Visibility, limit int) ([]notification.NotificationResponse, error) {
			assert.Equal(t, notification.Visibility{UserID: 5, Role: domain.RoleManager, Department: "IT"}, v)
			assert.Equal(t, 10, limit)
			return []notification.NotificationResponse{{ID: 1, Title: "x"}}, nil
		},
	}

	w := httptest.NewRecorder()
	setupRouter(svc, actor).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?limit=10", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	setupRouter(svc, actor).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?limit=900", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MarkAsRead(t *testing.T) {
	actor := domain.Actor{ID: 5, Role: domain.RoleEmployee}
	svc := &fakeNotificationService{
		markFn: func(_ context.Context, userID string, id int64) error {
			assert.Equal(t, "5", userID)
			if id == 404 {
				return notificationerrors.ErrNotificationNotFound
			}
			return nil
		},
	}
	r := setupRouter(svc, actor)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/notifications/3/read", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/notifications/404/read", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/notifications/abc/read", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_UnreadCount(t *testing.T) {
	svc := &fakeNotificationService{
		unreadFn: func(context.Context, notification.Visibility) (int64, error) { return 4, nil },
	}

	w := httptest.NewRecorder()
	setupRouter(svc, domain.Actor{ID: 1, Role: domain.RoleAdmin}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/unread-count", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data notification.UnreadCountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(4), body.Data.Unread)
}
