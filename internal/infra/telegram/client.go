// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"attendance_notifier/internal/domain/notification"

	"gopkg.in/telebot.v3"
)

// messageSender is the subset of *telebot.Bot used by the adapter.
type messageSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// TelebotAdapter implements notification.Sender on top of gopkg.in/telebot.v3.
// The recipient token is interpreted as a Telegram chat ID.
type TelebotAdapter struct {
	bot messageSender
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// NewOfflineBot creates a send-only bot. It neither polls nor calls getMe on startup.
func NewOfflineBot(token string) (*telebot.Bot, error) {
	return telebot.NewBot(telebot.Settings{Token: token, Offline: true})
}

// Send posts the payload as a plain text message and returns the Telegram message ID.
func (tba *TelebotAdapter) Send(_ context.Context, p notification.Payload) (string, error) {
	chatID, err := parseChatID(p.Token)
	if err != nil {
		return "", err
	}

	msg, err := tba.bot.Send(telebot.ChatID(chatID), formatText(p), &telebot.SendOptions{ParseMode: telebot.ModeDefault})
	if err != nil {
		return "", fmt.Errorf("error sending telegram message to chat %d: %w", chatID, err)
	}
	return strconv.Itoa(msg.ID), nil
}

func parseChatID(token string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("recipient token %q is not a telegram chat id: %w", token, err)
	}
	return id, nil
}

func formatText(p notification.Payload) string {
	return p.Title + "\n" + p.Body
}
