package domain

import "time"

type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "INFO"
	SeveritySuccess NotificationSeverity = "SUCCESS"
	SeverityWarning NotificationSeverity = "WARNING"
)

type Notification struct {
	ID        int32                `json:"id"`
	UserID    int32                `json:"user_id"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Severity  NotificationSeverity `json:"severity"`
	ActionURL string               `json:"action_url,omitempty"`
	IsRead    bool                 `json:"is_read"`
	CreatedOn time.Time            `json:"created_on"`
}
