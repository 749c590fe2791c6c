package notification

import (
	"context"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/domain"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindVisible(ctx context.Context, v Visibility, limit int) ([]Notification, error)
	MarkAsRead(ctx context.Context, userID, id int64) (int64, error)
	MarkAllAsRead(ctx context.Context, v Visibility) (int64, error)
	CountUnread(ctx context.Context, v Visibility) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// visible applies the role based read filter. Admins see everything,
// managers their department plus system rows, employees their own plus
// system rows, anyone else system rows only.
func visible(v Visibility) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch v.Role {
		case domain.RoleAdmin:
			return db
		case domain.RoleManager:
			return db.Where(
				"notifications.is_system = ? OR notifications.user_id IN (SELECT id FROM employees WHERE department = ?)",
				true, v.Department,
			)
		case domain.RoleEmployee:
			return db.Where("notifications.is_system = ? OR notifications.user_id = ?", true, v.UserID)
		default:
			return db.Where("notifications.is_system = ?", true)
		}
	}
}

// owned limits writes to the caller's rows plus system rows, whatever the
// role.
func owned(userID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notifications.user_id = ? OR notifications.is_system = ?", userID, true)
	}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindVisible(ctx context.Context, v Visibility, limit int) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Scopes(visible(v)).
		Order("notifications.created_at DESC, notifications.id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) MarkAsRead(ctx context.Context, userID, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("notifications.id = ?", id).
		Scopes(owned(userID)).
		Updates(map[string]any{"read_status": true, "read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAllAsRead(ctx context.Context, v Visibility) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("notifications.read_status = ?", false).
		Scopes(owned(v.UserID)).
		Updates(map[string]any{"read_status": true, "read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnread(ctx context.Context, v Visibility) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(visible(v)).
		Where("read_status = ?", false).
		Count(&n).Error
	return n, err
}
