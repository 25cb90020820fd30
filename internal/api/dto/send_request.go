package dto

import "github.com/aliskhannn/farmkonnect-notifier/internal/model"

// SendRequest is the JSON body of POST /api/notifications.
type SendRequest struct {
	RecipientID string   `json:"recipient_id" validate:"required"`
	Title       string   `json:"title" validate:"required_without=Message,max=200"`
	Message     string   `json:"message" validate:"required_without=Title,max=4000"`
	Severity    string   `json:"severity" validate:"required,oneof=info warning critical"`
	Category    string   `json:"category" validate:"max=64"`
	Channels    []string `json:"channels" validate:"omitempty,max=3,dive,required"`
}

func (r SendRequest) ToModel() model.NotificationRequest {
	var channels []model.Channel
	for _, ch := range r.Channels {
		channels = append(channels, model.Channel(ch))
	}

	return model.NotificationRequest{
		RecipientID: r.RecipientID,
		Title:       r.Title,
		Message:     r.Message,
		Severity:    model.Severity(r.Severity),
		Category:    r.Category,
		Channels:    channels,
	}
}
