// internal/models/notification.go
package models

// Notification records the outcome of one HR alert for an application.
type Notification struct {
	ID            string `json:"id"`
	ApplicationID string `json:"applicationId"`
	Channel       string `json:"channel"` // "line", "sns", "ses", "none"
	Status        string `json:"status"`  // "sent", "failed", "disabled"
	Error         string `json:"error,omitempty"`
	SentAt        string `json:"sentAt"`
}

const (
	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
)
