// internal/infra/push/log_sender.go
package push

import (
	"context"

	"attendance_notifier/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogSender writes notifications to the log instead of delivering them.
// Used with PUSH_GATEWAY=log for local development.
type LogSender struct {
	logger *logrus.Entry
}

func NewLogSender(logger *logrus.Entry) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, p notification.Payload) (string, error) {
	id := "log-" + uuid.NewString()
	s.logger.WithFields(logrus.Fields{
		"message_id": id,
		"token":      p.Token,
		"title":      p.Title,
		"body":       p.Body,
	}).Info("Notification (not delivered)")
	return id, nil
}
