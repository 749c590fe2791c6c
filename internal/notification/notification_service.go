package notification

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"
	notificationerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/notification/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// EmployeeResolver finds the employee behind an attendance identifier.
type EmployeeResolver interface {
	FindByRef(ctx context.Context, ref string) (*employee.Employee, error)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	CreateNotification(ctx context.Context, userID, title, message, typ string, metadata map[string]any) (NotificationResponse, error)
	CreateSystemNotification(ctx context.Context, title, message, typ string, metadata map[string]any) (NotificationResponse, error)
	AttendanceCreated(ctx context.Context, identifier, checkType string, at time.Time) (NotificationResponse, error)
	GetUserNotifications(ctx context.Context, v Visibility, limit int) ([]NotificationResponse, error)
	MarkAsRead(ctx context.Context, userID string, id int64) error
	MarkAllAsRead(ctx context.Context, v Visibility) (int64, error)
	UnreadCount(ctx context.Context, v Visibility) (int64, error)
}

type service struct {
	repo      Repository
	employees EmployeeResolver
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeResolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, employees: employees, logger: l}
}

func parseUserID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CreateNotification stores a notification for one user. A missing or
// malformed user id degrades to a system notification.
func (s *service) CreateNotification(ctx context.Context, userID, title, message, typ string, metadata map[string]any) (NotificationResponse, error) {
	id, ok := parseUserID(userID)
	if !ok {
		return s.CreateSystemNotification(ctx, title, message, typ, metadata)
	}

	n := Notification{
		UserID:   &id,
		Title:    title,
		Message:  message,
		Type:     typ,
		Priority: priorityFor(typ),
		Metadata: metadata,
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		return NotificationResponse{}, apperror.New(
			apperror.CodeInternalError,
			"failed to create notification",
			http.StatusInternalServerError,
		).WithCause(err)
	}
	return mapToResponse(n), nil
}

// CreateSystemNotification never fails: a storage error is logged and an
// unsaved notification with a time based id is returned instead.
func (s *service) CreateSystemNotification(ctx context.Context, title, message, typ string, metadata map[string]any) (NotificationResponse, error) {
	if typ == "" {
		typ = TypeSystem
	}
	n := Notification{
		IsSystem: true,
		Title:    title,
		Message:  message,
		Type:     typ,
		Priority: priorityFor(typ),
		Metadata: metadata,
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("system notification not persisted",
			zap.String("title", title),
			zap.Error(err),
		)
		now := time.Now()
		n.ID = now.UnixMilli()
		n.CreatedAt = now
	}
	return mapToResponse(n), nil
}

func (s *service) AttendanceCreated(ctx context.Context, identifier, checkType string, at time.Time) (NotificationResponse, error) {
	verb, typ := "checked in", TypeCheckIn
	if checkType == "check_out" || checkType == TypeCheckOut {
		verb, typ = "checked out", TypeCheckOut
	}
	clock := at.Format("15:04")

	empl, err := s.employees.FindByRef(ctx, identifier)
	if err != nil || empl == nil {
		contextutil.GetLogger(ctx, s.logger).Info("attendance notification for unresolved employee",
			zap.String("identifier", identifier),
			zap.Error(err),
		)
		return s.CreateSystemNotification(ctx,
			"Attendance recorded",
			fmt.Sprintf("Employee %s %s at %s", identifier, verb, clock),
			typ,
			map[string]any{"employee_identifier": identifier, "check_type": checkType, "time": clock},
		)
	}

	return s.CreateNotification(ctx,
		strconv.FormatInt(empl.ID, 10),
		"Attendance recorded",
		fmt.Sprintf("%s (%s) %s at %s", empl.FullName(), empl.EmployeeCode, verb, clock),
		typ,
		map[string]any{
			"employee_id":   empl.ID,
			"employee_code": empl.EmployeeCode,
			"check_type":    checkType,
			"time":          clock,
		},
	)
}

func (s *service) GetUserNotifications(ctx context.Context, v Visibility, limit int) ([]NotificationResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := s.repo.FindVisible(ctx, v, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) MarkAsRead(ctx context.Context, userID string, id int64) error {
	uid, ok := parseUserID(userID)
	if !ok {
		return notificationerrors.ErrInvalidUser
	}
	if id <= 0 {
		return notificationerrors.ErrInvalidNotificationID
	}
	affected, err := s.repo.MarkAsRead(ctx, uid, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, v Visibility) (int64, error) {
	if v.UserID <= 0 {
		return 0, notificationerrors.ErrInvalidUser
	}
	return s.repo.MarkAllAsRead(ctx, v)
}

func (s *service) UnreadCount(ctx context.Context, v Visibility) (int64, error) {
	return s.repo.CountUnread(ctx, v)
}
