package notification

import (
	"context"
	"fmt"

	"github.com/RobbieBendick/curb-companion-backend/models"

	"firebase.google.com/go/v4/messaging"
)

// Pusher delivers a notification to one device.
type Pusher interface {
	Push(ctx context.Context, deviceToken string, n *models.Notification) error
}

// FCMPusher sends through Firebase Cloud Messaging.
type FCMPusher struct {
	Client *messaging.Client
}

func NewFCMPusher(client *messaging.Client) *FCMPusher {
	return &FCMPusher{Client: client}
}

// buildMessage renders n as a high-priority FCM message the mobile app routes on tap.
func buildMessage(deviceToken string, n *models.Notification) *messaging.Message {
	return &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title:    n.Title,
			Body:     n.Body,
			ImageURL: n.ImageURL,
		},
		Data: map[string]string{
			"type":           "notification",
			"notificationId": n.ID,
			"route":          n.Route,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_importance_channel",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{Title: n.Title, Body: n.Body},
					Sound: "default",
				},
			},
		},
	}
}

func (p *FCMPusher) Push(ctx context.Context, deviceToken string, n *models.Notification) error {
	if p.Client == nil {
		return fmt.Errorf("fcm: messaging client is not initialized")
	}
	if _, err := p.Client.Send(ctx, buildMessage(deviceToken, n)); err != nil {
		return fmt.Errorf("fcm: failed to send message: %w", err)
	}
	return nil
}
