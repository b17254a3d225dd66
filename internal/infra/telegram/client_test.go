package telegram

import (
	"context"
	"errors"
	"testing"

	"attendance_notifier/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type fakeBot struct {
	to   telebot.Recipient
	what interface{}
	err  error
}

func (f *fakeBot) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	f.to, f.what = to, what
	if f.err != nil {
		return nil, f.err
	}
	return &telebot.Message{ID: 321}, nil
}

func TestTelebotAdapter_Send(t *testing.T) {
	bot := &fakeBot{}
	a := &TelebotAdapter{bot: bot}

	id, err := a.Send(context.Background(), notification.Payload{Title: "Alice Check-In", Body: "Time: 08:00", Token: "-100123"})
	require.NoError(t, err)
	assert.Equal(t, "321", id)
	assert.Equal(t, "-100123", bot.to.Recipient())
	assert.Equal(t, "Alice Check-In\nTime: 08:00", bot.what)
}

func TestTelebotAdapter_InvalidChatID(t *testing.T) {
	bot := &fakeBot{}
	a := &TelebotAdapter{bot: bot}

	_, err := a.Send(context.Background(), notification.Payload{Token: "fcm-device-token"})
	assert.Error(t, err)
	assert.Nil(t, bot.to)
}

func TestTelebotAdapter_SendError(t *testing.T) {
	cause := errors.New("Forbidden: bot was blocked by the user")
	a := &TelebotAdapter{bot: &fakeBot{err: cause}}

	_, err := a.Send(context.Background(), notification.Payload{Token: "42"})
	assert.ErrorIs(t, err, cause)
}
