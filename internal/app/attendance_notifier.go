// internal/app/attendance_notifier.go
package app

import (
	"context"
	"errors"

	"attendance_notifier/internal/domain/attendance"
	"attendance_notifier/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

// WriteHandler is invoked once for every write on an attendance record.
type WriteHandler interface {
	OnWrite(ctx context.Context, params attendance.PathParams, before, after attendance.Snapshot)
}

type eventIDKey struct{}

// ContextWithEventID tags ctx with the trigger delivery ID so it shows up in the invocation logs.
func ContextWithEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, eventIDKey{}, eventID)
}

func eventIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey{}).(string)
	return id
}

// AttendanceNotifier sends the administrator a push notification for the
// newest check-in or check-out on an attendance record.
type AttendanceNotifier struct {
	tokens notification.TokenStore
	sender notification.Sender
	logger *logrus.Entry
}

func NewAttendanceNotifier(ts notification.TokenStore, s notification.Sender, logger *logrus.Entry) *AttendanceNotifier {
	return &AttendanceNotifier{
		tokens: ts,
		sender: s,
		logger: logger,
	}
}

// OnWrite handles one attendance write. Every failure is logged and absorbed;
// nothing is written back to the store and failed sends are not retried.
func (n *AttendanceNotifier) OnWrite(ctx context.Context, params attendance.PathParams, _ attendance.Snapshot, after attendance.Snapshot) {
	logCtx := n.logger.WithFields(logrus.Fields{
		"event_id":    eventIDFrom(ctx),
		"date":        params.Date,
		"employee_id": params.EmployeeID,
	})

	if !after.Exists {
		logCtx.Debug("Record deleted, nothing to notify")
		return
	}

	latest, ok := after.Record.LatestLog()
	if !ok {
		logCtx.Debug("Record has no logs, nothing to notify")
		return
	}

	label := latest.Label()
	displayName := after.Record.DisplayName()

	token, err := n.tokens.RecipientToken(ctx)
	if err != nil {
		if errors.Is(err, notification.ErrTokenNotFound) {
			logCtx.Debug("No recipient token registered, skipping notification")
		} else {
			logCtx.WithError(err).Error("Failed to read recipient token")
		}
		return
	}

	payload := notification.NewCheckPayload(displayName, label, latest.Time, token)
	logCtx = logCtx.WithField("title", payload.Title)

	messageID, err := n.sender.Send(ctx, payload)
	if err != nil {
		logCtx.WithError(err).Error("Error sending notification")
		return
	}
	logCtx.WithField("message_id", messageID).Info("Notification sent successfully")
}
