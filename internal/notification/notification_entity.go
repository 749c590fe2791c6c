package notification

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification types emitted by the attendance and payroll engines.
const (
	TypeCheckIn           = "check_in"
	TypeCheckOut          = "check_out"
	TypeAttendanceUpdated = "attendance_updated"
	TypeAttendanceReset   = "attendance_reset"
	TypeSalaryCalculated  = "salary_calculated"
	TypeSystem            = "system"
)

type Notification struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     *int64            `gorm:"column:user_id;index"`
	IsSystem   bool              `gorm:"column:is_system;not null;default:false"`
	Title      string            `gorm:"column:title;type:varchar(255);not null"`
	Message    string            `gorm:"column:message;type:text;not null"`
	Type       string            `gorm:"column:type;type:varchar(50);not null"`
	Priority   string            `gorm:"column:priority;type:varchar(20);not null;default:medium"`
	ReadStatus bool              `gorm:"column:read_status;not null;default:false"`
	ReadAt     *time.Time        `gorm:"column:read_at"`
	Metadata   datatypes.JSONMap `gorm:"column:metadata;type:jsonb"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Visibility is who is reading and therefore which rows they may see.
type Visibility struct {
	UserID     int64
	Role       string
	Department string
}

func priorityFor(typ string) string {
	switch typ {
	case TypeAttendanceReset, TypeAttendanceUpdated:
		return PriorityHigh
	case TypeCheckIn, TypeCheckOut:
		return PriorityLow
	default:
		return PriorityMedium
	}
}
