// internal/domain/notification/payload.go
package notification

import "fmt"

// Payload is a single push notification addressed to one device token.
type Payload struct {
	Title string
	Body  string
	Token string
}

// NewCheckPayload builds the check-in/check-out notification for an employee.
func NewCheckPayload(displayName, label, logTime, token string) Payload {
	return Payload{
		Title: fmt.Sprintf("%s %s", displayName, label),
		Body:  fmt.Sprintf("Time: %s", logTime),
		Token: token,
	}
}
