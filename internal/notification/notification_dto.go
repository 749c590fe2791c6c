package notification

import "time"

type ListQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

type NotificationResponse struct {
	ID         int64          `json:"id"`
	UserID     *int64         `json:"userId"`
	IsSystem   bool           `json:"isSystem"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Type       string         `json:"type"`
	Priority   string         `json:"priority"`
	ReadStatus bool           `json:"readStatus"`
	ReadAt     *time.Time     `json:"readAt,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type MarkAllResponse struct {
	Updated int64 `json:"updated"`
}

func mapToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		UserID:     n.UserID,
		IsSystem:   n.IsSystem,
		Title:      n.Title,
		Message:    n.Message,
		Type:       n.Type,
		Priority:   n.Priority,
		ReadStatus: n.ReadStatus,
		ReadAt:     n.ReadAt,
		Metadata:   map[string]any(n.Metadata),
		CreatedAt:  n.CreatedAt,
	}
}

func mapToListResponse(rows []Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, mapToResponse(n))
	}
	return out
}
