package dto

import "github.com/aliskhannn/farmkonnect-notifier/internal/model"

// PreferencesRequest is the JSON body of PUT /api/users/:user_id/preferences.
type PreferencesRequest struct {
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone" validate:"omitempty,e164"`
	PushSubscription string `json:"push_subscription" validate:"max=2048"`
	EmailEnabled     bool   `json:"email_enabled"`
	SMSEnabled       bool   `json:"sms_enabled"`
}

func (r PreferencesRequest) ToModel(userID string) model.UserNotificationPreferences {
	return model.UserNotificationPreferences{
		UserID:           userID,
		Email:            r.Email,
		Phone:            r.Phone,
		PushSubscription: r.PushSubscription,
		EmailEnabled:     r.EmailEnabled,
		SMSEnabled:       r.SMSEnabled,
	}
}
