package events

import "time"

const (
	NotificationRequestedTopic = "attendance.notifications.v1"
	NotificationRequestedType  = "notification_requested"
)

// Target of a requested notification.
const (
	NotificationKindUser       = "user"
	NotificationKindSystem     = "system"
	NotificationKindAttendance = "attendance"
)

// NotificationRequestedEvent asks the notification consumer to persist one
// notification. Kind selects which fields are meaningful: user uses UserID,
// attendance uses EmployeeIdentifier/CheckType/At, system uses neither.
type NotificationRequestedEvent struct {
	EventType          string         `json:"event_type"`
	RequestID          string         `json:"request_id,omitempty"`
	Kind               string         `json:"kind"`
	UserID             string         `json:"user_id,omitempty"`
	EmployeeIdentifier string         `json:"employee_identifier,omitempty"`
	CheckType          string         `json:"check_type,omitempty"`
	At                 time.Time      `json:"at,omitempty"`
	Title              string         `json:"title,omitempty"`
	Message            string         `json:"message,omitempty"`
	Type               string         `json:"type,omitempty"`
	Priority           string         `json:"priority,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	OccurredAt         time.Time      `json:"occurred_at"`
}

// AggregateID is the partition key: notifications for one recipient stay ordered.
func (e NotificationRequestedEvent) AggregateID() string {
	switch e.Kind {
	case NotificationKindUser:
		return "user:" + e.UserID
	case NotificationKindAttendance:
		return "employee:" + e.EmployeeIdentifier
	default:
		return "system"
	}
}
