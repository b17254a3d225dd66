// internal/infra/push/fcm_sender.go
package push

import (
	"context"
	"fmt"

	"attendance_notifier/internal/domain/notification"

	"firebase.google.com/go/v4/messaging"
)

// fcmClient is the subset of *messaging.Client used here.
type fcmClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSender delivers notifications through Firebase Cloud Messaging.
type FCMSender struct {
	client fcmClient
}

func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

// Send returns the FCM message name, e.g. "projects/p/messages/0:1500415314455276%31bd1c9631bd1c96".
func (s *FCMSender) Send(ctx context.Context, p notification.Payload) (string, error) {
	message := &messaging.Message{
		Token: p.Token,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
	}

	response, err := s.client.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}
	return response, nil
}
