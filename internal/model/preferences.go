package model

import "time"

// UserNotificationPreferences holds a user's contact endpoints and channel switches.
type UserNotificationPreferences struct {
	UserID           string    `json:"user_id"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	PushSubscription string    `json:"push_subscription,omitempty"`
	EmailEnabled     bool      `json:"email_enabled"`
	SMSEnabled       bool      `json:"sms_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DefaultPreferences returns the preferences assumed for a user who never saved any.
func DefaultPreferences(userID string) UserNotificationPreferences {
	return UserNotificationPreferences{UserID: userID}
}
