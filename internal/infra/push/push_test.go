package push

import (
	"context"
	"errors"
	"strings"
	"testing"

	"attendance_notifier/internal/domain/notification"

	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFCM struct {
	got *messaging.Message
	id  string
	err error
}

func (f *fakeFCM) Send(ctx context.Context, m *messaging.Message) (string, error) {
	f.got = m
	return f.id, f.err
}

func TestFCMSender_Send(t *testing.T) {
	client := &fakeFCM{id: "projects/p/messages/1"}
	s := &FCMSender{client: client}

	id, err := s.Send(context.Background(), notification.Payload{Title: "Alice Check-In", Body: "Time: 08:00", Token: "T1"})
	require.NoError(t, err)
	assert.Equal(t, "projects/p/messages/1", id)

	require.NotNil(t, client.got)
	assert.Equal(t, "T1", client.got.Token)
	require.NotNil(t, client.got.Notification)
	assert.Equal(t, "Alice Check-In", client.got.Notification.Title)
	assert.Equal(t, "Time: 08:00", client.got.Notification.Body)
	assert.Empty(t, client.got.Topic)
	assert.Nil(t, client.got.Data)
}

func TestFCMSender_SendError(t *testing.T) {
	cause := errors.New("unavailable")
	s := &FCMSender{client: &fakeFCM{err: cause}}

	_, err := s.Send(context.Background(), notification.Payload{Token: "T1"})
	assert.ErrorIs(t, err, cause)
}

func TestLogSender_Send(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	s := NewLogSender(logrus.NewEntry(logger))

	id, err := s.Send(context.Background(), notification.Payload{Title: "Bob Check-Out", Body: "Time: 17:00", Token: "T1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "log-"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, id, entry.Data["message_id"])
	assert.Equal(t, "Bob Check-Out", entry.Data["title"])
}
