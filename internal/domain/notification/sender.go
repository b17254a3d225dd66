// internal/domain/notification/sender.go
package notification

import (
	"context"
	"errors"
)

// ErrTokenNotFound is returned when the recipient token record is missing
// or holds an empty token.
var ErrTokenNotFound = errors.New("recipient token not found")

// TokenStore reads the administrator's push destination.
type TokenStore interface {
	RecipientToken(ctx context.Context) (string, error)
}

// Sender delivers a payload through a push-messaging gateway.
// The returned string is the gateway's message identifier.
type Sender interface {
	Send(ctx context.Context, p Payload) (string, error)
}
