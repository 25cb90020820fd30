// Package composer turns a notification request and the recipient's
// preferences into channel-specific payloads.
package composer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

// Envelope is a rendered payload addressed to one channel endpoint.
type Envelope struct {
	Channel  model.Channel
	Endpoint string
	Payload  model.Payload
}

// Skip records a channel that was selected but could not be addressed.
type Skip struct {
	Channel model.Channel
	Reason  string
}

// Composition is the output of Compose.
type Composition struct {
	Envelopes []Envelope
	Skipped   []Skip
}

var severityColors = map[model.Severity]string{
	model.SeverityInfo:     "#2563eb",
	model.SeverityWarning:  "#d97706",
	model.SeverityCritical: "#dc2626",
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="margin:0;font-family:Arial,sans-serif;background:#f4f4f5;">
<div style="max-width:600px;margin:0 auto;background:#ffffff;">
<div style="background:{{.Color}};color:#ffffff;padding:16px 24px;">
<span style="font-size:12px;text-transform:uppercase;letter-spacing:1px;">{{.Severity}}</span>
<h1 style="margin:4px 0 0;font-size:20px;">{{.Title}}</h1>
</div>
<div style="padding:24px;color:#18181b;font-size:14px;line-height:1.5;">{{.Message}}</div>
<div style="padding:12px 24px;color:#71717a;font-size:12px;">FarmKonnect notifications</div>
</div>
</body>
</html>`))

// SelectChannels applies the severity policy: push always, email for
// warning and critical when enabled, SMS for critical when enabled.
func SelectChannels(severity model.Severity, prefs model.UserNotificationPreferences) []model.Channel {
	channels := []model.Channel{model.ChannelPush}

	switch severity {
	case model.SeverityCritical:
		if prefs.EmailEnabled {
			channels = append(channels, model.ChannelEmail)
		}
		if prefs.SMSEnabled {
			channels = append(channels, model.ChannelSMS)
		}
	case model.SeverityWarning:
		if prefs.EmailEnabled {
			channels = append(channels, model.ChannelEmail)
		}
	}

	return channels
}

// Compose selects the target channels for req and renders a payload for
// each one. A channel without a usable endpoint is reported in Skipped.
func Compose(req model.NotificationRequest, prefs model.UserNotificationPreferences) (Composition, error) {
	channels := req.Channels
	if len(channels) == 0 {
		channels = SelectChannels(req.Severity, prefs)
	}

	var out Composition
	seen := make(map[model.Channel]bool, len(channels))

	for _, ch := range channels {
		if seen[ch] {
			continue
		}
		seen[ch] = true

		if !ch.Valid() {
			out.Skipped = append(out.Skipped, Skip{Channel: ch, Reason: "unknown channel"})
			continue
		}

		endpoint := Endpoint(ch, req.RecipientID, prefs)
		if endpoint == "" {
			out.Skipped = append(out.Skipped, Skip{Channel: ch, Reason: fmt.Sprintf("no %s endpoint configured", ch)})
			continue
		}

		payload, err := Render(ch, req)
		if err != nil {
			return Composition{}, fmt.Errorf("render %s payload: %w", ch, err)
		}

		out.Envelopes = append(out.Envelopes, Envelope{Channel: ch, Endpoint: endpoint, Payload: payload})
	}

	return out, nil
}

// Endpoint returns the address of recipientID on channel ch, or "" if none.
// Push falls back to the recipient ID, which addresses the websocket hub.
func Endpoint(ch model.Channel, recipientID string, prefs model.UserNotificationPreferences) string {
	switch ch {
	case model.ChannelEmail:
		return strings.TrimSpace(prefs.Email)
	case model.ChannelSMS:
		return strings.TrimSpace(prefs.Phone)
	case model.ChannelPush:
		if sub := strings.TrimSpace(prefs.PushSubscription); sub != "" {
			return sub
		}
		return recipientID
	}
	return ""
}

// Render builds the payload of req for channel ch.
func Render(ch model.Channel, req model.NotificationRequest) (model.Payload, error) {
	if ch != model.ChannelEmail {
		return model.Payload{
			Subject:     req.Title,
			Body:        PlainText(req.Title, req.Message),
			ContentType: model.ContentTypePlain,
			Severity:    req.Severity,
		}, nil
	}

	color, ok := severityColors[req.Severity]
	if !ok {
		color = severityColors[model.SeverityInfo]
	}

	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Title    string
		Message  string
		Severity string
		Color    template.CSS
	}{
		Title:    req.Title,
		Message:  req.Message,
		Severity: string(req.Severity),
		Color:    template.CSS(color),
	})
	if err != nil {
		return model.Payload{}, err
	}

	return model.Payload{
		Subject:     EmailSubject(req.Severity, req.Title),
		Body:        buf.String(),
		ContentType: model.ContentTypeHTML,
		Severity:    req.Severity,
	}, nil
}

// EmailSubject prefixes the title with the severity for warning and critical mail.
func EmailSubject(severity model.Severity, title string) string {
	if severity == model.SeverityInfo || severity == "" {
		return title
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(severity)), title)
}

// PlainText is the SMS and push rendering of a notification.
func PlainText(title, message string) string {
	if title == "" {
		return message
	}
	return title + ": " + message
}
